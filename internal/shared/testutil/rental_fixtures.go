package testutil

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"

	"bikepulse/pkg/contracts/domain"
)

// DatasetHeader is the column order used by the dataset writers. instant and
// windspeed are present in real exports and must be ignored by loaders.
var DatasetHeader = []string{
	"instant", "dteday", "season", "yr", "mnth", "weathersit",
	"temp", "hum", "windspeed", "casual", "registered", "cnt",
}

// Day is shorthand for domain.NewDate
func Day(year int, month time.Month, day int) domain.Date {
	return domain.NewDate(year, month, day)
}

// ThreeDayRecords is the reference scenario: totals 10, 20, 30 with casual
// 4, 6, 9 and registered 6, 14, 21 on 2011-01-01..03.
func ThreeDayRecords() []domain.RentalRecord {
	return []domain.RentalRecord{
		{Day: Day(2011, 1, 1), Casual: 4, Registered: 6, Total: 10, Year: 0, Season: 1, Month: 1, Weather: 1, Temperature: 0.2, Humidity: 0.8},
		{Day: Day(2011, 1, 2), Casual: 6, Registered: 14, Total: 20, Year: 0, Season: 1, Month: 1, Weather: 2, Temperature: 0.5, Humidity: 0.6},
		{Day: Day(2011, 1, 3), Casual: 9, Registered: 21, Total: 30, Year: 0, Season: 1, Month: 1, Weather: 1, Temperature: 0.8, Humidity: 0.4},
	}
}

// SampleRecords spans both years, all seasons and three weather codes.
func SampleRecords() []domain.RentalRecord {
	return []domain.RentalRecord{
		{Day: Day(2011, 1, 1), Casual: 331, Registered: 654, Total: 985, Year: 0, Season: 1, Month: 1, Weather: 2, Temperature: 0.344, Humidity: 0.806},
		{Day: Day(2011, 1, 2), Casual: 131, Registered: 670, Total: 801, Year: 0, Season: 1, Month: 1, Weather: 2, Temperature: 0.363, Humidity: 0.696},
		{Day: Day(2011, 4, 15), Casual: 642, Registered: 2484, Total: 3126, Year: 0, Season: 2, Month: 4, Weather: 1, Temperature: 0.446, Humidity: 0.540},
		{Day: Day(2011, 7, 4), Casual: 3065, Registered: 2978, Total: 6043, Year: 0, Season: 3, Month: 7, Weather: 1, Temperature: 0.726, Humidity: 0.750},
		{Day: Day(2011, 10, 20), Casual: 200, Registered: 1600, Total: 1800, Year: 0, Season: 4, Month: 10, Weather: 3, Temperature: 0.480, Humidity: 0.930},
		{Day: Day(2012, 3, 17), Casual: 3155, Registered: 4681, Total: 7836, Year: 1, Season: 1, Month: 3, Weather: 1, Temperature: 0.514, Humidity: 0.460},
		{Day: Day(2012, 6, 30), Casual: 1455, Registered: 4111, Total: 5566, Year: 1, Season: 3, Month: 6, Weather: 1, Temperature: 0.800, Humidity: 0.420},
		{Day: Day(2012, 12, 31), Casual: 364, Registered: 1432, Total: 1796, Year: 1, Season: 1, Month: 12, Weather: 2, Temperature: 0.216, Humidity: 0.578},
	}
}

// NewTable wraps records in a RentalTable named "fixture"
func NewTable(records []domain.RentalRecord) *domain.RentalTable {
	return domain.NewRentalTable("fixture", records)
}

// DatasetRow renders a record in DatasetHeader order. instant is i+1.
func DatasetRow(i int, r domain.RentalRecord) []string {
	return []string{
		strconv.Itoa(i + 1),
		r.Day.String(),
		strconv.Itoa(r.Season),
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Month),
		strconv.Itoa(r.Weather),
		strconv.FormatFloat(r.Temperature, 'f', -1, 64),
		strconv.FormatFloat(r.Humidity, 'f', -1, 64),
		"0.16",
		strconv.FormatInt(r.Casual, 10),
		strconv.FormatInt(r.Registered, 10),
		strconv.FormatInt(r.Total, 10),
	}
}

// WriteCSV writes records as a CSV dataset into dir and returns its path
func WriteCSV(t *testing.T, dir string, records []domain.RentalRecord) string {
	t.Helper()

	rows := [][]string{DatasetHeader}
	for i, r := range records {
		rows = append(rows, DatasetRow(i, r))
	}
	return WriteCSVRows(t, dir, "days.csv", rows)
}

// WriteCSVRows writes raw rows, header included, to dir/name
func WriteCSVRows(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	return path
}

// WriteXLSX writes records to a workbook sheet and returns its path
func WriteXLSX(t *testing.T, dir, sheet string, records []domain.RentalRecord) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	require.NoError(t, f.SetSheetRow(sheet, "A1", &DatasetHeader))
	for i, r := range records {
		row := DatasetRow(i, r)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(dir, "days.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteSQLite stores records in table of a new SQLite database and returns its path
func WriteSQLite(t *testing.T, dir, table string, records []domain.RentalRecord) string {
	t.Helper()

	path := filepath.Join(dir, "days.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fmt.Sprintf(`CREATE TABLE %q (
		instant INTEGER PRIMARY KEY,
		dteday TEXT NOT NULL,
		season INTEGER,
		yr INTEGER,
		mnth INTEGER,
		weathersit INTEGER,
		temp REAL,
		hum REAL,
		casual INTEGER,
		registered INTEGER,
		cnt INTEGER
	)`, table))
	require.NoError(t, err)

	stmt, err := db.Prepare(fmt.Sprintf(`INSERT INTO %q
		(instant, dteday, season, yr, mnth, weathersit, temp, hum, casual, registered, cnt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table))
	require.NoError(t, err)
	defer stmt.Close()

	for i, r := range records {
		_, err := stmt.Exec(i+1, r.Day.String(), r.Season, r.Year, r.Month, r.Weather,
			r.Temperature, r.Humidity, r.Casual, r.Registered, r.Total)
		require.NoError(t, err)
	}
	return path
}
