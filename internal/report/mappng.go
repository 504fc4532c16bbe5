package report

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mspb-data/spending.report/internal/geo"
)

// MapOptions controls choropleth rendering.
type MapOptions struct {
	Title       string
	LegendTitle string
	WidthInches float64
	DPI         int
}

var (
	stateEdgeColor = color.Gray{Y: 0xcc}
	noDataFill     = color.NRGBA{R: 0xd9, G: 0xd9, B: 0xd9, A: 0xff}
)

// colorBarWidthIn is the horizontal strip reserved for the legend.
const colorBarWidthIn = 1.4

// RenderChoropleth draws projected state shapes filled by their median
// score and writes the result as a PNG. States with no entry in medians
// are drawn in a neutral grey. A vertical colour bar is rendered beside
// the map.
func RenderChoropleth(path string, shapes []geo.Shape, medians map[string]float64, cm *SpendingColorMap, opts MapOptions) error {
	if len(shapes) == 0 {
		return fmt.Errorf("no shapes to render")
	}
	if opts.WidthInches <= 0 {
		opts.WidthInches = 14
	}
	if opts.DPI <= 0 {
		opts.DPI = 200
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(22)
	p.HideAxes()

	box := geo.Bounds(shapes)
	pad := 0.02
	p.X.Min = box.MinX - pad*box.Width()
	p.X.Max = box.MaxX + pad*box.Width()
	p.Y.Min = box.MinY - pad*box.Height()
	p.Y.Max = box.MaxY + pad*box.Height()

	for _, shape := range shapes {
		fill := color.Color(noDataFill)
		if score, ok := medians[shape.Code]; ok {
			c, err := cm.At(score)
			if err != nil {
				return fmt.Errorf("state %s: %w", shape.Code, err)
			}
			fill = c
		}

		for _, ring := range shape.Rings {
			xys := make(plotter.XYs, len(ring))
			for i, pt := range ring {
				xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
			}
			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return fmt.Errorf("state %s: %w", shape.Code, err)
			}
			poly.Color = fill
			poly.LineStyle.Color = stateEdgeColor
			poly.LineStyle.Width = vg.Points(0.6)
			p.Add(poly)
		}
	}

	// Colour bar drawn as its own small plot to the right of the map.
	bp := plot.New()
	bp.Title.Text = opts.LegendTitle
	bp.Title.TextStyle.Font.Size = vg.Points(11)
	bar := &plotter.ColorBar{ColorMap: cm}
	bar.Vertical = true
	bp.Add(bar)
	bp.HideX()
	bp.Y.Padding = 0

	// Keep the drawn map close to the data aspect ratio so the country
	// is not stretched.
	mapWidth := vg.Length(opts.WidthInches-colorBarWidthIn) * vg.Inch
	height := vg.Length(float64(mapWidth) * box.Height() / box.Width())
	totalWidth := vg.Length(opts.WidthInches) * vg.Inch

	canvas := vgimg.NewWith(vgimg.UseWH(totalWidth, height), vgimg.UseDPI(opts.DPI))
	dc := draw.New(canvas)

	barStrip := vg.Length(colorBarWidthIn) * vg.Inch
	mapArea := draw.Crop(dc, 0, -barStrip, 0, 0)
	barArea := draw.Crop(dc, dc.Max.X-dc.Min.X-barStrip, 0, height*0.18, -height*0.28)

	p.Draw(mapArea)
	bp.Draw(barArea)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create map file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write map PNG: %w", err)
	}
	return nil
}
