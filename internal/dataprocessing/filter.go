package dataprocessing

import (
	"fmt"

	apperrors "bikepulse/internal/errors"
	"bikepulse/pkg/contracts/domain"
)

// Filter returns a new table holding the records of table whose day lies in
// r, both ends included, in their original order. The input table is not
// modified. An empty result is not an error.
func Filter(table *domain.RentalTable, r domain.DateRange) (*domain.RentalTable, error) {
	if !r.Ordered() {
		return nil, apperrors.NewInvalidRangeError(
			fmt.Sprintf("start %s is after end %s", r.Start, r.End)).
			WithContext("start", r.Start.String()).
			WithContext("end", r.End.String())
	}

	if table == nil {
		return domain.NewRentalTable("", nil), nil
	}

	out := make([]domain.RentalRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		if r.Contains(rec.Day) {
			out = append(out, rec)
		}
	}
	return domain.NewRentalTable(table.Source, out), nil
}
