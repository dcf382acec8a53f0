package presentation

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"bikepulse/pkg/contracts/domain"
)

// Bar is one labelled value of a bar chart. Share is the value relative to
// the largest value of its section, in [0,1].
type Bar struct {
	Label string
	Value int64
	Share float64
}

// Section is a titled bar chart
type Section struct {
	Title string
	Bars  []Bar
}

// GridCell is one temperature/humidity cell of the bucket grid
type GridCell struct {
	Total int64
	Days  int
	Mean  float64
}

// Grid is the temperature (rows) by humidity (columns) bucket table
type Grid struct {
	Columns []string
	Rows    []GridRow
}

// GridRow is one temperature bucket of the grid
type GridRow struct {
	Label string
	Cells []GridCell
}

// Headline is the formatted headline metrics
type Headline struct {
	Casual     string
	Registered string
	Total      string
	Days       string
	DailyMean  string
}

// NewHeadline formats the headline metrics with thousands separators
func NewHeadline(m domain.HeadlineMetrics) Headline {
	h := Headline{
		Casual:     FormatCount(m.Casual),
		Registered: FormatCount(m.Registered),
		Total:      FormatCount(m.Total),
		Days:       humanize.Comma(int64(m.Days)),
		DailyMean:  "0",
	}
	if m.Days > 0 {
		h.DailyMean = humanize.CommafWithDigits(float64(m.Total)/float64(m.Days), 1)
	}
	return h
}

// Sections returns the categorical summaries of d as bar charts, in display
// order
func Sections(d *domain.Dashboard) []Section {
	userTypes := make([]Bar, 0, len(d.UserTypes))
	for _, u := range d.UserTypes {
		userTypes = append(userTypes, Bar{Label: u.Type, Value: u.Total})
	}
	temps := make([]Bar, 0, len(d.TemperatureBuckets))
	for _, b := range d.TemperatureBuckets {
		temps = append(temps, Bar{Label: b.Temperature, Value: b.Total})
	}

	sections := []Section{
		{Title: "Rentals by user type", Bars: userTypes},
		{Title: "Rentals by year", Bars: groupBars(d.Years)},
		{Title: "Rentals by season", Bars: groupBars(d.Seasons)},
		{Title: "Rentals by month", Bars: groupBars(d.Months)},
		{Title: "Rentals by weather", Bars: groupBars(d.Weather)},
		{Title: "Rentals by temperature", Bars: temps},
	}
	for i := range sections {
		scale(sections[i].Bars)
	}
	return sections
}

// DailySection returns the daily totals as a bar chart
func DailySection(d *domain.Dashboard) Section {
	bars := make([]Bar, 0, len(d.Daily))
	for _, day := range d.Daily {
		bars = append(bars, Bar{Label: day.Day.String(), Value: day.Total})
	}
	scale(bars)
	return Section{Title: "Daily rentals", Bars: bars}
}

// BucketGrid lays out the 5x5 bucket totals. An empty dashboard yields a grid
// without rows.
func BucketGrid(d *domain.Dashboard) Grid {
	g := Grid{Columns: []string{}, Rows: []GridRow{}}
	if len(d.Buckets) == 0 {
		return g
	}

	rowIndex := map[string]int{}
	colSeen := map[string]bool{}
	for _, b := range d.Buckets {
		if !colSeen[b.Humidity] {
			colSeen[b.Humidity] = true
			g.Columns = append(g.Columns, b.Humidity)
		}
		i, ok := rowIndex[b.Temperature]
		if !ok {
			i = len(g.Rows)
			rowIndex[b.Temperature] = i
			g.Rows = append(g.Rows, GridRow{Label: b.Temperature})
		}
		g.Rows[i].Cells = append(g.Rows[i].Cells, GridCell{Total: b.Total, Days: b.Days, Mean: b.Mean})
	}
	return g
}

// FormatCount renders n with thousands separators
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatMean renders a cell mean with one decimal, or a dash for empty cells
func FormatMean(c GridCell) string {
	if c.Days == 0 {
		return "-"
	}
	return humanize.CommafWithDigits(c.Mean, 1)
}

// Percent renders a share as a CSS width
func Percent(share float64) string {
	return fmt.Sprintf("%.1f%%", share*100)
}

func groupBars(groups []domain.GroupTotal) []Bar {
	bars := make([]Bar, 0, len(groups))
	for _, g := range groups {
		bars = append(bars, Bar{Label: g.Label, Value: g.Total})
	}
	return bars
}

func scale(bars []Bar) {
	var max int64
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}
	if max == 0 {
		return
	}
	for i := range bars {
		bars[i].Share = float64(bars[i].Value) / float64(max)
	}
}
