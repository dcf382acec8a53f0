package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikepulse/internal/errors"
	api "bikepulse/pkg/contracts/api/v1"
)

func TestValidator_ValidateStruct(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		input      interface{}
		wantFields []string
	}{
		{name: "empty dashboard request", input: api.DashboardRequest{}},
		{name: "valid dates", input: api.DashboardRequest{Start: "2011-01-01", End: "2012-12-31"}},
		{name: "bad start", input: api.DashboardRequest{Start: "2011-13-01"}, wantFields: []string{"start"}},
		{name: "both bad", input: api.DashboardRequest{Start: "yesterday", End: "01/02/2011"}, wantFields: []string{"start", "end"}},
		{name: "summary required", input: api.SummaryRequest{}, wantFields: []string{"summary"}},
		{name: "summary with bad end", input: api.SummaryRequest{DashboardRequest: api.DashboardRequest{End: "x"}, Summary: "daily"}, wantFields: []string{"end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var apiErr *apperrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, "VALIDATION_FAILED", apiErr.ErrorCode)

			details, ok := apiErr.Details.(apperrors.ValidationErrors)
			require.True(t, ok)
			var fields []string
			for _, fe := range details.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidator_Messages(t *testing.T) {
	err := NewValidator().ValidateStruct(api.DashboardRequest{Start: "2011/01/01"})

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	details := apiErr.Details.(apperrors.ValidationErrors)
	require.Len(t, details.Errors, 1)
	assert.Equal(t, "start must be a date in YYYY-MM-DD format", details.Errors[0].Message)
}

func TestValidator_NonStruct(t *testing.T) {
	err := NewValidator().ValidateStruct("not a struct")

	var apiErr *apperrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_REQUEST", apiErr.ErrorCode)
}
