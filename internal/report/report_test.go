package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mspb-data/spending.report/internal/testutil"
	"github.com/mspb-data/spending.report/internal/timeutil"
)

const testDataCSV = `Facility ID,Facility Name,State,Score
010001,SOUTHEAST HEALTH MEDICAL CENTER,AL,0.95
010005,MARSHALL MEDICAL CENTERS,AL,1.01
050002,ST ROSE HOSPITAL,CA,1.10
050006,TEMPLE COMMUNITY HOSPITAL,CA,1.02
450001,MEMORIAL HERMANN,TX,0.88
450002,METHODIST HOSPITAL,TX,Not Available
`

const testStatesJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"STUSPS": "AL"},
			"geometry": {"type": "Polygon", "coordinates": [[[-88, 30], [-85, 30], [-85, 35], [-88, 35], [-88, 30]]]}
		},
		{
			"type": "Feature",
			"properties": {"STUSPS": "CA"},
			"geometry": {"type": "Polygon", "coordinates": [[[-124, 32], [-114, 32], [-114, 42], [-124, 42], [-124, 32]]]}
		},
		{
			"type": "Feature",
			"properties": {"STUSPS": "TX"},
			"geometry": {"type": "Polygon", "coordinates": [[[-106, 26], [-94, 26], [-94, 36], [-106, 36], [-106, 26]]]}
		}
	]
}`

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	dataCSV := testutil.WriteTempFile(t, "mspb.csv", testDataCSV)
	statesJSON := testutil.WriteTempFile(t, "states.json", testStatesJSON)

	clock := timeutil.NewMockClock(time.Date(2023, time.November, 5, 9, 0, 0, 0, time.UTC))
	result, err := Generate(Params{
		DataCSV:     dataCSV,
		GeoJSON:     statesJSON,
		OutputDir:   dir,
		HTMLPreview: true,
		Clock:       clock,
	})
	testutil.AssertNoError(t, err)

	if result.RunID == "" {
		t.Error("result has empty run ID")
	}
	if !result.CreatedAt.Equal(clock.Now()) {
		t.Errorf("CreatedAt = %v, want clock time %v", result.CreatedAt, clock.Now())
	}
	if result.TotalHospitals != 6 {
		t.Errorf("TotalHospitals = %d, want 6", result.TotalHospitals)
	}
	if result.ScoredHospitals != 5 {
		t.Errorf("ScoredHospitals = %d, want 5", result.ScoredHospitals)
	}
	if result.UnscoredHospitals != 1 {
		t.Errorf("UnscoredHospitals = %d, want 1", result.UnscoredHospitals)
	}
	if result.States != 3 {
		t.Errorf("States = %d, want 3", result.States)
	}

	if filepath.Base(result.PDFPath) != "2023MSPBReport.pdf" {
		t.Errorf("PDFPath = %q, want default 2023 base name", result.PDFPath)
	}
	testutil.AssertFileNonEmpty(t, result.PDFPath)
	testutil.AssertFileNonEmpty(t, result.MapPath)
	testutil.AssertFileNonEmpty(t, result.ChartPath)

	pdfHeader := make([]byte, 5)
	f, err := os.Open(result.PDFPath)
	if err != nil {
		t.Fatalf("failed to open PDF: %v", err)
	}
	defer f.Close()
	if _, err := f.Read(pdfHeader); err != nil {
		t.Fatalf("failed to read PDF header: %v", err)
	}
	if string(pdfHeader) != "%PDF-" {
		t.Errorf("PDF header = %q, want %%PDF-", pdfHeader)
	}
}

func TestGenerateNoScores(t *testing.T) {
	dir := t.TempDir()
	dataCSV := testutil.WriteTempFile(t, "mspb.csv",
		"Facility ID,Facility Name,State,Score\n010001,SOME HOSPITAL,AL,Not Available\n")
	statesJSON := testutil.WriteTempFile(t, "states.json", testStatesJSON)

	_, err := Generate(Params{DataCSV: dataCSV, GeoJSON: statesJSON, OutputDir: dir})
	testutil.AssertError(t, err)
}

func TestGenerateMissingData(t *testing.T) {
	dir := t.TempDir()
	_, err := Generate(Params{
		DataCSV:   filepath.Join(dir, "absent.csv"),
		GeoJSON:   filepath.Join(dir, "absent.json"),
		OutputDir: dir,
	})
	testutil.AssertError(t, err)
}
