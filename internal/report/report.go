package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mspb-data/spending.report/internal/config"
	"github.com/mspb-data/spending.report/internal/geo"
	"github.com/mspb-data/spending.report/internal/monitoring"
	"github.com/mspb-data/spending.report/internal/mspb"
	"github.com/mspb-data/spending.report/internal/timeutil"
)

// Params configures one report generation run.
type Params struct {
	DataCSV     string
	GeoJSON     string
	OutputDir   string
	Config      *config.ReportConfig
	HTMLPreview bool
	Clock       timeutil.Clock // nil means the system clock
}

// Result summarises a completed run.
type Result struct {
	RunID             string
	PDFPath           string
	MapPath           string
	ChartPath         string // empty unless HTMLPreview was set
	TotalHospitals    int
	ScoredHospitals   int
	UnscoredHospitals int
	States            int
	CreatedAt         time.Time
}

// Generate runs the full pipeline: load, clean, aggregate by state,
// render the map, aggregate by region, and assemble the PDF.
func Generate(params Params) (*Result, error) {
	cfg := params.Config
	if cfg == nil {
		cfg = config.Empty()
	}
	clock := params.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	if err := os.MkdirAll(params.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	records, err := mspb.LoadCSV(params.DataCSV)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("loaded %d hospitals from %s", len(records), params.DataCSV)

	clean, err := mspb.Clean(records)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("%d hospitals reported scores, %d reported none", len(clean.Scored), len(clean.Unscored))

	medians := mspb.MediansByState(clean.Scored)
	if len(medians) == 0 {
		return nil, fmt.Errorf("no scored hospitals in dataset")
	}
	bands := mspb.CountScoreBands(medians)
	monitoring.Logf("state medians: %d above 1.0, %d at 1.0, %d below 1.0", bands.Above, bands.At, bands.Below)

	minMedian, maxMedian, _ := mspb.StateMedianRange(medians)
	if v, ok := cfg.GetMapScaleMin(); ok {
		minMedian = v
	}
	if v, ok := cfg.GetMapScaleMax(); ok {
		maxMedian = v
	}
	if maxMedian <= minMedian {
		// Every state at the same median still gets a drawable scale.
		minMedian -= 0.01
		maxMedian += 0.01
	}
	mapColors, err := NewSpendingColorMap(minMedian, maxMedian)
	if err != nil {
		return nil, err
	}

	shapes, err := geo.LoadStates(params.GeoJSON, cfg.GetGeoProperty())
	if err != nil {
		return nil, err
	}
	projected := geo.ProjectStates(shapes)

	medianByState := make(map[string]float64, len(medians))
	for _, m := range medians {
		medianByState[m.State] = m.Median
	}

	base := cfg.GetOutputBase()
	mapPath := filepath.Join(params.OutputDir, base+"_map.png")
	err = RenderChoropleth(mapPath, projected, medianByState, mapColors, MapOptions{
		Title:       fmt.Sprintf("Figure 1: %d Median State MSPB Scores", cfg.GetYear()),
		LegendTitle: "Median MSPB Score",
		WidthInches: cfg.GetMapWidthIn(),
		DPI:         cfg.GetMapDPI(),
	})
	if err != nil {
		return nil, err
	}
	monitoring.Logf("wrote choropleth map to %s", mapPath)

	taxonomy := mspb.DefaultTaxonomy()
	if regions := cfg.GetRegions(); regions != nil {
		taxonomy, err = mspb.NewTaxonomy(regions)
		if err != nil {
			return nil, fmt.Errorf("invalid region taxonomy: %w", err)
		}
	}
	taxonomy.Assign(clean.Scored)

	rows := taxonomy.RegionTable(clean.Scored, clean.Unscored)
	tableMin, tableMax, ok := mspb.MedianRange(rows)
	var tableColors *SpendingColorMap
	if ok && tableMax > tableMin {
		tableColors, err = NewSpendingColorMap(tableMin, tableMax)
		if err != nil {
			return nil, err
		}
	}

	sourceNote := fmt.Sprintf("Data: CMS Medicare Spending Per Beneficiary - Hospital, %s", cfg.GetDataSourceURL())
	if note := cfg.GetAccessedNote(); note != "" {
		sourceNote = fmt.Sprintf("Data: CMS Medicare Spending Per Beneficiary - Hospital, %s\n%s", note, cfg.GetDataSourceURL())
	}

	now := clock.Now()
	pdfPath := filepath.Join(params.OutputDir, base+".pdf")
	err = WritePDF(pdfPath, PDFParams{
		Title:        cfg.GetTitle(),
		Year:         cfg.GetYear(),
		MapPNG:       mapPath,
		TableCaption: fmt.Sprintf("Table 1: %d Median U.S. Region MSPB Scores", cfg.GetYear()),
		Rows:         rows,
		TableColors:  tableColors,
		Bullets:      Findings(cfg.GetYear(), clean, medians, rows),
		SourceNote:   sourceNote,
		Now:          now,
	})
	if err != nil {
		return nil, err
	}
	monitoring.Logf("wrote report to %s", pdfPath)

	result := &Result{
		RunID:             uuid.New().String(),
		PDFPath:           pdfPath,
		MapPath:           mapPath,
		TotalHospitals:    clean.TotalHospitals,
		ScoredHospitals:   len(clean.Scored),
		UnscoredHospitals: len(clean.Unscored),
		States:            len(medians),
		CreatedAt:         now,
	}

	if params.HTMLPreview {
		chartPath := filepath.Join(params.OutputDir, base+"_states.html")
		if err := WriteStateMedianChart(chartPath, fmt.Sprintf("%d Median State MSPB Scores", cfg.GetYear()), medians); err != nil {
			return nil, err
		}
		monitoring.Logf("wrote state chart to %s", chartPath)
		result.ChartPath = chartPath
	}

	return result, nil
}
