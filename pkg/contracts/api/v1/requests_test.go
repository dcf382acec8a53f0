package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bikepulse/pkg/contracts/domain"
)

func TestNewSummaryResponse(t *testing.T) {
	rng := domain.DateRange{Start: domain.NewDate(2011, 1, 1), End: domain.NewDate(2011, 1, 3)}

	tests := []struct {
		name      string
		data      any
		wantCount int
	}{
		{"rows", []domain.DailyTotal{{}, {}, {}}, 3},
		{"empty rows", []domain.GroupTotal{}, 0},
		{"metrics", domain.HeadlineMetrics{Total: 60, Days: 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSummaryResponse("daily", rng, tt.data)
			assert.Equal(t, "success", resp.Status)
			assert.Equal(t, "daily", resp.Summary)
			assert.Equal(t, rng, resp.Range)
			assert.Equal(t, tt.wantCount, resp.Count)
		})
	}
}
