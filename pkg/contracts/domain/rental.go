package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-day layout used on the wire.
const DateLayout = "2006-01-02"

// Date is a calendar day stored as midnight UTC
type Date struct {
	time.Time
}

// NewDate builds a Date from its calendar components
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day, keeping t's wall-clock date
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String returns the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Before reports whether d is an earlier day than o
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is a later day than o
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// Equal reports whether d and o are the same day
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// MarshalJSON renders the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD"
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DateRange is an inclusive span of calendar days
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewDateRange creates a range from start to end inclusive
func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// Ordered reports whether Start is not after End
func (r DateRange) Ordered() bool {
	return !r.Start.After(r.End)
}

// Contains reports whether day falls inside the range, both ends included
func (r DateRange) Contains(day Date) bool {
	return !day.Before(r.Start) && !day.After(r.End)
}

// Within reports whether r lies entirely inside outer
func (r DateRange) Within(outer DateRange) bool {
	return outer.Contains(r.Start) && outer.Contains(r.End)
}

// Days returns the number of calendar days covered by the range
func (r DateRange) Days() int {
	if !r.Ordered() {
		return 0
	}
	return int(r.End.Sub(r.Start.Time).Hours()/24) + 1
}

// String renders the range as "start..end"
func (r DateRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// RentalRecord is one day of aggregated rental activity
type RentalRecord struct {
	Day         Date    `json:"day"`
	Casual      int64   `json:"casual"`
	Registered  int64   `json:"registered"`
	Total       int64   `json:"total"`
	Year        int     `json:"year"`
	Season      int     `json:"season"`
	Month       int     `json:"month"`
	Weather     int     `json:"weather"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// Consistent reports whether Total equals Casual plus Registered
func (r RentalRecord) Consistent() bool {
	return r.Total == r.Casual+r.Registered
}

// RentalTable is an ordered collection of daily records.
// Records keep file order; a loaded base table is shared read-only and must
// never be modified in place.
type RentalTable struct {
	Source  string         `json:"source"`
	Records []RentalRecord `json:"records"`
}

// NewRentalTable wraps records loaded from source
func NewRentalTable(source string, records []RentalRecord) *RentalTable {
	if records == nil {
		records = []RentalRecord{}
	}
	return &RentalTable{Source: source, Records: records}
}

// Len returns the number of records
func (t *RentalTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Bounds returns the earliest and latest day in the table.
// ok is false for an empty table.
func (t *RentalTable) Bounds() (r DateRange, ok bool) {
	if t.Len() == 0 {
		return DateRange{}, false
	}
	r = DateRange{Start: t.Records[0].Day, End: t.Records[0].Day}
	for _, rec := range t.Records[1:] {
		if rec.Day.Before(r.Start) {
			r.Start = rec.Day
		}
		if rec.Day.After(r.End) {
			r.End = rec.Day
		}
	}
	return r, true
}

// Info summarizes the table for the dataset endpoint
func (t *RentalTable) Info() DatasetInfo {
	bounds, _ := t.Bounds()
	info := DatasetInfo{Rows: t.Len(), Bounds: bounds}
	if t != nil {
		info.Source = t.Source
	}
	return info
}

// BinnedRecord is a record augmented with its temperature and humidity buckets
type BinnedRecord struct {
	RentalRecord
	TemperatureBucket string `json:"temperature_bucket"`
	HumidityBucket    string `json:"humidity_bucket"`
}
