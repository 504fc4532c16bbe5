package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mspb-data/spending.report/internal/mspb"
)

func TestWriteStateMedianChart(t *testing.T) {
	medians := []mspb.StateMedian{
		{State: "NY", Median: 1.05, Hospitals: 12},
		{State: "TX", Median: 1.0, Hospitals: 20},
		{State: "WA", Median: 0.92, Hospitals: 8},
	}

	path := filepath.Join(t.TempDir(), "states.html")
	if err := WriteStateMedianChart(path, "Median MSPB Score by State", medians); err != nil {
		t.Fatalf("WriteStateMedianChart returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	html := string(data)
	for _, want := range []string{"echarts", "Median MSPB Score by State", "NY", "1.05"} {
		if !strings.Contains(html, want) {
			t.Errorf("chart HTML missing %q", want)
		}
	}
}

func TestWriteStateMedianChartEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.html")
	if err := WriteStateMedianChart(path, "empty", nil); err == nil {
		t.Fatal("expected error for empty median list, got nil")
	}
}
