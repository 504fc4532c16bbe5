package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mspb-data/spending.report/internal/geo"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testShapes() []geo.Shape {
	square := func(x, y float64) geo.Ring {
		return geo.Ring{
			{X: x, Y: y}, {X: x + 1, Y: y},
			{X: x + 1, Y: y + 1}, {X: x, Y: y + 1},
			{X: x, Y: y},
		}
	}
	return []geo.Shape{
		{Code: "AA", Rings: []geo.Ring{square(0, 0)}},
		{Code: "BB", Rings: []geo.Ring{square(2, 0)}},
		{Code: "CC", Rings: []geo.Ring{square(1, 2)}},
	}
}

func TestRenderChoropleth(t *testing.T) {
	cm, err := NewSpendingColorMap(0.9, 1.1)
	if err != nil {
		t.Fatalf("NewSpendingColorMap returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "map.png")
	medians := map[string]float64{"AA": 0.92, "BB": 1.08}
	opts := MapOptions{
		Title:       "Median MSPB Score by State",
		LegendTitle: "Median",
		WidthInches: 6,
		DPI:         96,
	}

	if err := RenderChoropleth(path, testShapes(), medians, cm, opts); err != nil {
		t.Fatalf("RenderChoropleth returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Errorf("output is not a PNG, starts with % x", data[:8])
	}
	if len(data) < 2000 {
		t.Errorf("PNG suspiciously small: %d bytes", len(data))
	}
}

func TestRenderChoroplethNoShapes(t *testing.T) {
	cm, err := NewSpendingColorMap(0, 1)
	if err != nil {
		t.Fatalf("NewSpendingColorMap returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "map.png")
	if err := RenderChoropleth(path, nil, nil, cm, MapOptions{}); err == nil {
		t.Fatal("expected error for empty shape list, got nil")
	}
}

func TestRenderChoroplethAllMissingScores(t *testing.T) {
	// Every state grey is still a valid map.
	cm, err := NewSpendingColorMap(0, 1)
	if err != nil {
		t.Fatalf("NewSpendingColorMap returned error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "map.png")
	err = RenderChoropleth(path, testShapes(), map[string]float64{}, cm, MapOptions{WidthInches: 5, DPI: 72})
	if err != nil {
		t.Fatalf("RenderChoropleth returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}
