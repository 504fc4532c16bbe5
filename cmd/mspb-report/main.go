// Command mspb-report generates a one-page PDF report of hospital-level
// Medicare Spending per Beneficiary scores: a state choropleth map, a
// regional summary table, and data-derived findings.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mspb-data/spending.report/internal/config"
	"github.com/mspb-data/spending.report/internal/db"
	"github.com/mspb-data/spending.report/internal/monitoring"
	"github.com/mspb-data/spending.report/internal/report"
	"github.com/mspb-data/spending.report/internal/version"
)

var (
	dataCSV     = flag.String("data", "", "Path to the CMS hospital spending CSV (required)")
	geoJSON     = flag.String("geo", "", "Path to the US state boundaries GeoJSON (required)")
	outputDir   = flag.String("out", ".", "Directory for generated artifacts")
	configPath  = flag.String("config", "", "Optional report config JSON")
	dbPath      = flag.String("db", "report_runs.db", "Run-log database path")
	htmlPreview = flag.Bool("html", false, "Also write an HTML bar chart of state medians")
	noLog       = flag.Bool("no-log", false, "Skip recording the run in the run-log database")
	quiet       = flag.Bool("quiet", false, "Suppress progress logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("mspb-report %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *dataCSV == "" || *geoJSON == "" {
		fmt.Fprintln(os.Stderr, "both -data and -geo are required")
		flag.Usage()
		os.Exit(2)
	}

	if *quiet {
		monitoring.SetLogger(nil)
	}

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	result, err := report.Generate(report.Params{
		DataCSV:     *dataCSV,
		GeoJSON:     *geoJSON,
		OutputDir:   *outputDir,
		Config:      cfg,
		HTMLPreview: *htmlPreview,
	})
	if err != nil {
		log.Fatalf("report generation failed: %v", err)
	}

	if !*noLog {
		if err := recordRun(*dbPath, *dataCSV, result); err != nil {
			log.Fatalf("failed to record run: %v", err)
		}
	}

	monitoring.Logf("report %s complete: %s", result.RunID, result.PDFPath)
}

func recordRun(path, sourceFile string, result *report.Result) error {
	database, err := db.New(path)
	if err != nil {
		return err
	}
	defer database.Close()

	run := &db.ReportRun{
		RunID:             result.RunID,
		SourceFile:        sourceFile,
		PDFPath:           result.PDFPath,
		MapPath:           result.MapPath,
		TotalHospitals:    result.TotalHospitals,
		ScoredHospitals:   result.ScoredHospitals,
		UnscoredHospitals: result.UnscoredHospitals,
		States:            result.States,
	}
	if result.ChartPath != "" {
		run.ChartPath = &result.ChartPath
	}
	return database.RecordReportRun(run)
}
