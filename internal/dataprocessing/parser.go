package dataprocessing

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	apperrors "bikepulse/internal/errors"
	"bikepulse/pkg/contracts/domain"
)

// DefaultTable is the SQLite table read when LoadOptions.Table is empty
const DefaultTable = "days"

// LoadOptions selects the part of a dataset file to read
type LoadOptions struct {
	// Sheet is the XLSX sheet to read; the first sheet when empty
	Sheet string
	// Table is the SQLite table to read
	Table  string
	Logger *slog.Logger
}

type column int

const (
	colDay column = iota
	colCasual
	colRegistered
	colTotal
	colYear
	colSeason
	colMonth
	colWeather
	colTemperature
	colHumidity
	numColumns
)

var columnNames = [numColumns]string{
	"dteday", "casual", "registered", "cnt", "yr",
	"season", "mnth", "weathersit", "temp", "hum",
}

var headerAliases = map[string]column{
	"dteday":      colDay,
	"date":        colDay,
	"day":         colDay,
	"casual":      colCasual,
	"registered":  colRegistered,
	"cnt":         colTotal,
	"total":       colTotal,
	"count":       colTotal,
	"yr":          colYear,
	"year":        colYear,
	"season":      colSeason,
	"mnth":        colMonth,
	"month":       colMonth,
	"weathersit":  colWeather,
	"weather":     colWeather,
	"temp":        colTemperature,
	"temperature": colTemperature,
	"hum":         colHumidity,
	"humidity":    colHumidity,
}

var dateLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	"01/02/2006",
	time.RFC3339Nano,
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadTable reads the rental dataset at path. The format follows the file
// extension: .csv, .xlsx, or .db/.sqlite/.sqlite3. Header names are matched
// case-insensitively and unknown columns are ignored.
func LoadTable(ctx context.Context, path string, opts LoadOptions) (*domain.RentalTable, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewLoadError("dataset file unavailable", err).WithContext("path", path)
	}

	var rows [][]string
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx":
		rows, err = readXLSX(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		rows, err = readSQLite(ctx, path, opts.Table)
	default:
		return nil, apperrors.NewLoadError(fmt.Sprintf("unsupported dataset format %q", ext), nil).
			WithContext("path", path)
	}
	if err != nil {
		return nil, apperrors.NewLoadError("failed to read dataset", err).WithContext("path", path)
	}

	// Only workbooks store dates as serial numbers
	records, inconsistent, err := parseRecords(rows, strings.EqualFold(filepath.Ext(path), ".xlsx"))
	if err != nil {
		return nil, apperrors.NewLoadError("failed to parse dataset", err).WithContext("path", path)
	}

	if inconsistent > 0 {
		logger.Warn("total differs from casual plus registered",
			slog.String("path", path),
			slog.Int("rows", inconsistent))
	}

	logger.Info("dataset loaded",
		slog.String("path", path),
		slog.Int("rows", len(records)))

	return domain.NewRentalTable(path, records), nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	// Raw values keep numbers unformatted; dates may then arrive as serials
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readSQLite(ctx context.Context, path, table string) ([][]string, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := [][]string{cols}
	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(out), err)
		}
		row := make([]string, len(cols))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// parseRecords converts a header row plus data rows into records and counts
// the rows whose total disagrees with casual plus registered. serialDates
// accepts spreadsheet serial numbers in the date column.
func parseRecords(rows [][]string, serialDates bool) ([]domain.RentalRecord, int, error) {
	if len(rows) == 0 {
		return nil, 0, apperrors.NewParsingError("dataset has no header row", nil)
	}

	index, err := mapHeader(rows[0])
	if err != nil {
		return nil, 0, err
	}

	records := make([]domain.RentalRecord, 0, len(rows)-1)
	inconsistent := 0

	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		rec, err := parseRecord(row, index, i+2, serialDates)
		if err != nil {
			return nil, 0, err
		}
		if !rec.Consistent() {
			inconsistent++
		}
		records = append(records, rec)
	}

	return records, inconsistent, nil
}

func mapHeader(header []string) ([numColumns]int, error) {
	var index [numColumns]int
	for i := range index {
		index[i] = -1
	}

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if c, ok := headerAliases[key]; ok && index[c] < 0 {
			index[c] = i
		}
	}

	var missing []string
	for c, i := range index {
		if i < 0 {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return index, apperrors.NewParsingError(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("missing_columns", missing)
	}
	return index, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowParser reads typed cells from one data row and keeps the first failure
type rowParser struct {
	row         []string
	index       [numColumns]int
	line        int
	serialDates bool
	err         *apperrors.AppError
}

func parseRecord(row []string, index [numColumns]int, line int, serialDates bool) (domain.RentalRecord, error) {
	p := &rowParser{row: row, index: index, line: line, serialDates: serialDates}

	rec := domain.RentalRecord{
		Day:         p.date(colDay),
		Casual:      p.count(colCasual),
		Registered:  p.count(colRegistered),
		Total:       p.count(colTotal),
		Year:        p.code(colYear, domain.YearCode),
		Season:      p.code(colSeason, domain.SeasonCode),
		Month:       p.code(colMonth, domain.MonthCode),
		Weather:     p.code(colWeather, domain.WeatherCode),
		Temperature: p.real(colTemperature),
		Humidity:    p.real(colHumidity),
	}

	if p.err != nil {
		return domain.RentalRecord{}, p.err
	}
	return rec, nil
}

func (p *rowParser) cell(c column) (string, bool) {
	if p.err != nil {
		return "", false
	}
	i := p.index[c]
	value := ""
	if i < len(p.row) {
		value = strings.TrimSpace(p.row[i])
	}
	if value == "" {
		p.fail(c, value, fmt.Errorf("empty value"))
		return "", false
	}
	return value, true
}

func (p *rowParser) fail(c column, value string, cause error) {
	if p.err != nil {
		return
	}
	p.err = apperrors.NewParsingError(
		fmt.Sprintf("row %d column %s: invalid value %q", p.line, columnNames[c], value), cause).
		WithContext("row", p.line).
		WithContext("column", columnNames[c])
}

func (p *rowParser) date(c column) domain.Date {
	value, ok := p.cell(c)
	if !ok {
		return domain.Date{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return domain.DateOf(t)
		}
	}

	// Workbooks read with raw values hold dates as serial numbers
	if p.serialDates {
		if serial, err := strconv.ParseFloat(value, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return domain.DateOf(t)
			}
		}
	}

	p.fail(c, value, fmt.Errorf("unrecognized date format"))
	return domain.Date{}
}

func (p *rowParser) count(c column) int64 {
	value, ok := p.cell(c)
	if !ok {
		return 0
	}

	n, err := parseInteger(value)
	if err != nil {
		p.fail(c, value, err)
		return 0
	}
	if n < 0 {
		p.fail(c, value, fmt.Errorf("count must not be negative"))
		return 0
	}
	return n
}

// code accepts a codebook label (e.g. "Spring", "Jan", "2012") or a numeric code
func (p *rowParser) code(c column, lookup func(string) (int, bool)) int {
	value, ok := p.cell(c)
	if !ok {
		return 0
	}

	if code, ok := lookup(value); ok {
		return code
	}

	n, err := parseInteger(value)
	if err != nil {
		p.fail(c, value, err)
		return 0
	}
	return int(n)
}

func (p *rowParser) real(c column) float64 {
	value, ok := p.cell(c)
	if !ok {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		p.fail(c, value, err)
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		p.fail(c, value, fmt.Errorf("value must be a finite number"))
		return 0
	}
	return f
}

// parseInteger accepts "12" as well as integral floats such as "12.0"
func parseInteger(value string) (int64, error) {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int64(f)) {
		return 0, fmt.Errorf("not an integer")
	}
	return int64(f), nil
}
