// Package geo loads US state boundary geometry and projects it onto a
// plane suitable for a single composite report map.
package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Point is a geographic coordinate (degrees) before projection, or a
// planar coordinate after.
type Point struct {
	X float64 // longitude / projected x
	Y float64 // latitude / projected y
}

// Ring is a closed polygon boundary. The first ring of a polygon is
// the outer boundary; subsequent rings are holes.
type Ring []Point

// Shape is the full geometry for one state: every outer ring and hole
// across all of its polygons, flattened.
type Shape struct {
	Code  string // two-letter USPS code
	Rings []Ring
}

type geoJSON struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]json.RawMessage `json:"properties"`
	Geometry   geometry                   `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadStates reads a GeoJSON FeatureCollection of state boundaries from
// path. propertyKey names the feature property carrying the USPS state
// code (for the Census cartographic boundary files this is "STUSPS").
func LoadStates(path, propertyKey string) ([]Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geometry file: %w", err)
	}

	var fc geoJSON
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("expected FeatureCollection, got %q", fc.Type)
	}

	shapes := make([]Shape, 0, len(fc.Features))
	for i, f := range fc.Features {
		raw, ok := f.Properties[propertyKey]
		if !ok {
			return nil, fmt.Errorf("feature %d has no %q property", i, propertyKey)
		}
		var code string
		if err := json.Unmarshal(raw, &code); err != nil {
			return nil, fmt.Errorf("feature %d: %q property is not a string", i, propertyKey)
		}

		rings, err := f.Geometry.rings()
		if err != nil {
			return nil, fmt.Errorf("feature %d (%s): %w", i, code, err)
		}
		shapes = append(shapes, Shape{Code: strings.ToUpper(code), Rings: rings})
	}

	return shapes, nil
}

func (g geometry) rings() ([]Ring, error) {
	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("bad Polygon coordinates: %w", err)
		}
		return toRings(coords), nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("bad MultiPolygon coordinates: %w", err)
		}
		var rings []Ring
		for _, poly := range coords {
			rings = append(rings, toRings(poly)...)
		}
		return rings, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func toRings(poly [][][]float64) []Ring {
	rings := make([]Ring, 0, len(poly))
	for _, raw := range poly {
		ring := make(Ring, 0, len(raw))
		for _, pt := range raw {
			if len(pt) < 2 {
				continue
			}
			ring = append(ring, Point{X: pt[0], Y: pt[1]})
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether the point lies inside the box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Bounds computes the bounding box over every ring of every shape.
func Bounds(shapes []Shape) BBox {
	first := true
	var box BBox
	for _, s := range shapes {
		for _, ring := range s.Rings {
			for _, p := range ring {
				if first {
					box = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
					first = false
					continue
				}
				if p.X < box.MinX {
					box.MinX = p.X
				}
				if p.X > box.MaxX {
					box.MaxX = p.X
				}
				if p.Y < box.MinY {
					box.MinY = p.Y
				}
				if p.Y > box.MaxY {
					box.MaxY = p.Y
				}
			}
		}
	}
	return box
}

// ClipRings drops rings that are not entirely inside box. This is a
// coarse clip: island chains that straddle the box edge (the western
// Aleutians crossing the antimeridian) disappear rather than being cut,
// which is exactly what the report map wants.
func ClipRings(shape Shape, box BBox) Shape {
	clipped := Shape{Code: shape.Code}
	for _, ring := range shape.Rings {
		inside := true
		for _, p := range ring {
			if !box.Contains(p) {
				inside = false
				break
			}
		}
		if inside {
			clipped.Rings = append(clipped.Rings, ring)
		}
	}
	return clipped
}
