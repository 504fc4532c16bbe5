// Package report renders the choropleth map, the regional summary
// table, and the final PDF for one MSPB reporting run.
package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot/palette"
)

// ylOrBr is the 9-step yellow-orange-brown scale used for both the map
// fills and the table gradient. Stops run light to dark so low spenders
// read pale and high spenders read saturated.
var ylOrBr = []color.NRGBA{
	{R: 0xff, G: 0xff, B: 0xe5, A: 0xff},
	{R: 0xff, G: 0xf7, B: 0xbc, A: 0xff},
	{R: 0xfe, G: 0xe3, B: 0x91, A: 0xff},
	{R: 0xfe, G: 0xc4, B: 0x4f, A: 0xff},
	{R: 0xfe, G: 0x99, B: 0x29, A: 0xff},
	{R: 0xec, G: 0x70, B: 0x14, A: 0xff},
	{R: 0xcc, G: 0x4c, B: 0x02, A: 0xff},
	{R: 0x99, G: 0x34, B: 0x04, A: 0xff},
	{R: 0x66, G: 0x25, B: 0x06, A: 0xff},
}

// SpendingColorMap is a continuous colormap over a score range. It
// implements palette.ColorMap so it can drive a plot colour bar
// directly. Out-of-range values clamp to the endpoints rather than
// erroring, matching how the score normalisation treats outliers.
type SpendingColorMap struct {
	min, max float64
	alpha    float64
	stops    []color.NRGBA
}

// NewSpendingColorMap builds the YlOrBr colormap normalised over
// [min, max].
func NewSpendingColorMap(min, max float64) (*SpendingColorMap, error) {
	if max <= min {
		return nil, fmt.Errorf("colormap range [%g, %g] is empty", min, max)
	}
	return &SpendingColorMap{min: min, max: max, alpha: 1, stops: ylOrBr}, nil
}

// At returns the interpolated colour for v, clamped to the range.
func (m *SpendingColorMap) At(v float64) (color.Color, error) {
	if m.max <= m.min {
		return nil, fmt.Errorf("colormap range [%g, %g] is empty", m.min, m.max)
	}
	t := (v - m.min) / (m.max - m.min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	segments := float64(len(m.stops) - 1)
	pos := t * segments
	i := int(pos)
	if i >= len(m.stops)-1 {
		return m.stops[len(m.stops)-1], nil
	}
	frac := pos - float64(i)
	return lerpColor(m.stops[i], m.stops[i+1], frac), nil
}

// RGB8 returns the colour for v as 8-bit channels, for PDF cell fills.
func (m *SpendingColorMap) RGB8(v float64) (r, g, b int) {
	c, err := m.At(v)
	if err != nil {
		return 255, 255, 255
	}
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nrgba.R), int(nrgba.G), int(nrgba.B)
}

// Max returns the upper end of the mapped range.
func (m *SpendingColorMap) Max() float64 { return m.max }

// SetMax sets the upper end of the mapped range.
func (m *SpendingColorMap) SetMax(v float64) { m.max = v }

// Min returns the lower end of the mapped range.
func (m *SpendingColorMap) Min() float64 { return m.min }

// SetMin sets the lower end of the mapped range.
func (m *SpendingColorMap) SetMin(v float64) { m.min = v }

// Alpha returns the opacity applied by the palette.
func (m *SpendingColorMap) Alpha() float64 { return m.alpha }

// SetAlpha sets the opacity applied by the palette.
func (m *SpendingColorMap) SetAlpha(a float64) { m.alpha = a }

// Palette discretises the colormap into n colours.
func (m *SpendingColorMap) Palette(n int) palette.Palette {
	if n < 2 {
		n = 2
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		v := m.min + (m.max-m.min)*float64(i)/float64(n-1)
		c, _ := m.At(v)
		colors[i] = c
	}
	return spendingPalette(colors)
}

type spendingPalette []color.Color

func (p spendingPalette) Colors() []color.Color { return p }

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 0xff,
	}
}
