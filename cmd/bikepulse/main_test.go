package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikepulse/internal/config"
	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/shared/testutil"
	"bikepulse/pkg/contracts"
	"bikepulse/pkg/contracts/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryCmd_Text(t *testing.T) {
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	out, err := execute(t, "summary", "--data", data, "--daily")
	require.NoError(t, err)

	assert.Contains(t, out, "Bike rentals 2011-01-01..2011-01-03")
	assert.Contains(t, out, "Daily rentals")
	assert.Contains(t, out, "Rentals by weather")

	var total string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Total") {
			total = strings.Fields(line)[1]
		}
	}
	assert.Equal(t, "60", total)
}

func TestSummaryCmd_SingleSummary(t *testing.T) {
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	out, err := execute(t, "summary", "--data", data, "--summary", "user-types", "--start", "2011-01-02")
	require.NoError(t, err)

	var resp struct {
		Summary string                 `json:"summary"`
		Range   domain.DateRange       `json:"range"`
		Data    []domain.UserTypeTotal `json:"data"`
		Count   int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "user-types", resp.Summary)
	assert.Equal(t, testutil.Day(2011, 1, 2), resp.Range.Start)
	assert.Equal(t, []domain.UserTypeTotal{{Type: "Casual", Total: 15}, {Type: "Registered", Total: 35}}, resp.Data)
	assert.Equal(t, 2, resp.Count)
}

func TestSummaryCmd_MetricsOmitCount(t *testing.T) {
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	out, err := execute(t, "summary", "--data", data, "--summary", "metrics")
	require.NoError(t, err)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotContains(t, resp, "count")
	assert.Equal(t, float64(60), resp["data"].(map[string]any)["total"])
}

func TestSummaryCmd_LogsCarryTraceID(t *testing.T) {
	t.Setenv(config.EnvFileVar, filepath.Join(t.TempDir(), "missing.env"))
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"summary", "--data", data, "--json"})
	require.NoError(t, cmd.Execute())

	var traceID string
	for _, line := range strings.Split(strings.TrimSpace(stderr.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		if entry["msg"] == "dataset ready" {
			traceID, _ = entry["trace_id"].(string)
		}
	}
	assert.NotEmpty(t, traceID)
	assert.NotContains(t, stdout.String(), traceID, "logs stay off stdout")
}

func TestSummaryCmd_JSON(t *testing.T) {
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	out, err := execute(t, "summary", "--data", data, "--json")
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   domain.Dashboard `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, int64(60), resp.Data.Metrics.Total)
	assert.Len(t, resp.Data.Buckets, 25)
}

func TestSummaryCmd_Errors(t *testing.T) {
	data := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())

	tests := []struct {
		name     string
		args     []string
		wantType apperrors.ErrorType
	}{
		{"reversed range", []string{"summary", "--data", data, "--start", "2011-01-03", "--end", "2011-01-01"}, apperrors.ErrTypeInvalidRange},
		{"outside dataset", []string{"summary", "--data", data, "--end", "2011-02-01"}, apperrors.ErrTypeInvalidRange},
		{"bad date", []string{"summary", "--data", data, "--start", "Jan 1"}, apperrors.ErrTypeValidation},
		{"unknown summary", []string{"summary", "--data", data, "--summary", "hourly"}, apperrors.ErrTypeNotFound},
		{"missing dataset", []string{"summary", "--data", filepath.Join(t.TempDir(), "none.csv")}, apperrors.ErrTypeLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestServeCmd_RejectsBadPort(t *testing.T) {
	_, err := execute(t, "serve", "--port", "70000")
	assert.ErrorContains(t, err, "invalid port")
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bikepulse "+contracts.Version)
	assert.Contains(t, out, "api:")
}
