package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mspb-data/spending.report/internal/mspb"
)

func testRegionRows() []mspb.RegionRow {
	return []mspb.RegionRow{
		{Region: mspb.RegionWest, TotalHospitals: 900, WithScores: 700, WithoutScores: 200, Median: 0.95, HasMedian: true},
		{Region: mspb.RegionSouth, TotalHospitals: 1600, WithScores: 1100, WithoutScores: 500, Median: 0.99, HasMedian: true},
		{Region: "Total", TotalHospitals: 2500, WithScores: 1800, WithoutScores: 700, IsTotal: true},
	}
}

func TestWritePDF(t *testing.T) {
	cm, err := NewSpendingColorMap(0.9, 1.1)
	if err != nil {
		t.Fatalf("NewSpendingColorMap returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.pdf")
	params := PDFParams{
		Title:        "2023 Medicare Spending Per Beneficiary (MSPB) Report",
		Year:         2023,
		TableCaption: "Median Spending by Region",
		Rows:         testRegionRows(),
		TableColors:  cm,
		Bullets:      []string{"First finding.", "Second finding."},
		SourceNote:   "Source: data.cms.gov, accessed 2023.",
		Now:          time.Date(2023, time.November, 5, 0, 0, 0, 0, time.UTC),
	}

	if err := WritePDF(path, params); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(data) < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", len(data))
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("output does not start with PDF header: %q", data[:5])
	}
}

func TestWritePDFWithoutMapOrColors(t *testing.T) {
	// Missing map image and nil colormap degrade gracefully rather
	// than failing the whole report.
	path := filepath.Join(t.TempDir(), "report.pdf")
	params := PDFParams{
		Title: "MSPB Report",
		Year:  2023,
		Rows:  testRegionRows(),
	}

	if err := WritePDF(path, params); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWritePDFBadPath(t *testing.T) {
	err := WritePDF(filepath.Join(t.TempDir(), "missing", "report.pdf"), PDFParams{Title: "x"})
	if err == nil {
		t.Fatal("expected error for unwritable path, got nil")
	}
}
