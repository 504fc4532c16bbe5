package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mspb-data/spending.report/internal/mspb"
)

// WriteStateMedianChart renders a standalone HTML bar chart of state
// medians, highest first. It is a quick-look preview artifact next to
// the PDF, not part of the report itself.
func WriteStateMedianChart(path, title string, medians []mspb.StateMedian) error {
	if len(medians) == 0 {
		return fmt.Errorf("no state medians to chart")
	}

	x := make([]string, 0, len(medians))
	y := make([]opts.BarData, 0, len(medians))
	for _, m := range medians {
		x = append(x, m.State)
		y = append(y, opts.BarData{Value: m.Median})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1400px", Height: "620px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("states=%d", len(medians))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Median MSPB score"}),
	)
	bar.SetXAxis(x).AddSeries("median", y)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
