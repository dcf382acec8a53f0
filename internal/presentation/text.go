package presentation

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"bikepulse/pkg/contracts/domain"
)

// barWidth is the terminal width of a full bar
const barWidth = 40

// TextOptions controls the terminal rendering
type TextOptions struct {
	// Daily includes one line per day
	Daily bool
}

// RenderText writes a plain-text dashboard to w
func RenderText(w io.Writer, d *domain.Dashboard, opts TextOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	h := NewHeadline(d.Metrics)

	fmt.Fprintf(tw, "Bike rentals %s\n\n", d.Range)
	fmt.Fprintf(tw, "Total\t%s\n", h.Total)
	fmt.Fprintf(tw, "Casual\t%s\n", h.Casual)
	fmt.Fprintf(tw, "Registered\t%s\n", h.Registered)
	fmt.Fprintf(tw, "Days\t%s\n", h.Days)
	fmt.Fprintf(tw, "Per day\t%s\n", h.DailyMean)

	sections := Sections(d)
	if opts.Daily {
		sections = append([]Section{DailySection(d)}, sections...)
	}
	for _, s := range sections {
		writeSection(tw, s)
	}

	grid := BucketGrid(d)
	if len(grid.Rows) > 0 {
		fmt.Fprintf(tw, "\nMean rentals by temperature and humidity\n")
		fmt.Fprintf(tw, "\t%s\n", strings.Join(grid.Columns, "\t"))
		for _, row := range grid.Rows {
			cells := make([]string, len(row.Cells))
			for i, c := range row.Cells {
				cells[i] = FormatMean(c)
			}
			fmt.Fprintf(tw, "%s\t%s\n", row.Label, strings.Join(cells, "\t"))
		}
	}

	return tw.Flush()
}

func writeSection(w io.Writer, s Section) {
	fmt.Fprintf(w, "\n%s\n", s.Title)
	if len(s.Bars) == 0 {
		fmt.Fprintf(w, "  (no data)\n")
		return
	}
	for _, b := range s.Bars {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", b.Label, FormatCount(b.Value), strings.Repeat("#", int(b.Share*barWidth+0.5)))
	}
}
