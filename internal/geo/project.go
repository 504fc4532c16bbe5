package geo

import "math"

// Albers is an equal-area conic projection on the unit sphere.
// Projected coordinates are dimensionless; only relative positions
// matter for rendering.
type Albers struct {
	StdLat1 float64 // first standard parallel, degrees
	StdLat2 float64 // second standard parallel, degrees
	Lat0    float64 // latitude of origin, degrees
	Lon0    float64 // central meridian, degrees

	n, c, rho0 float64
}

// NewAlbers constructs the projection and precomputes its constants.
func NewAlbers(stdLat1, stdLat2, lat0, lon0 float64) *Albers {
	phi1 := radians(stdLat1)
	phi2 := radians(stdLat2)
	phi0 := radians(lat0)

	n := (math.Sin(phi1) + math.Sin(phi2)) / 2
	c := math.Cos(phi1)*math.Cos(phi1) + 2*n*math.Sin(phi1)

	return &Albers{
		StdLat1: stdLat1,
		StdLat2: stdLat2,
		Lat0:    lat0,
		Lon0:    lon0,
		n:       n,
		c:       c,
		rho0:    math.Sqrt(c-2*n*math.Sin(phi0)) / n,
	}
}

// Project maps a longitude/latitude pair (degrees) to plane coordinates.
func (a *Albers) Project(lon, lat float64) (x, y float64) {
	rho := math.Sqrt(a.c-2*a.n*math.Sin(radians(lat))) / a.n
	theta := a.n * radians(lon-a.Lon0)
	return rho * math.Sin(theta), a.rho0 - rho*math.Cos(theta)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Projections matching the conventional Albers USA composite: one conic
// per landmass so Alaska and Hawaii are not smeared by CONUS parameters.
var (
	conusProjection  = NewAlbers(29.5, 45.5, 23, -96)
	alaskaProjection = NewAlbers(55, 65, 50, -154)
	hawaiiProjection = NewAlbers(8, 18, 13, -157)
)

// Clip windows in lon/lat. Alaska loses the Aleutian islands west of
// 170°W (and across the antimeridian) so the inset stays compact;
// Hawaii keeps only the main island chain.
var (
	alaskaClip = BBox{MinX: -170, MinY: 50, MaxX: -128, MaxY: 72}
	hawaiiClip = BBox{MinX: -161, MinY: 18, MaxX: -154, MaxY: 23}
)

const alaskaScale = 0.35

// ProjectStates projects state shapes onto a single plane with Alaska
// and Hawaii repositioned below the continental US, in the manner of
// the Albers USA composite. Placement is computed from the projected
// CONUS bounding box so it holds for any input geometry.
func ProjectStates(shapes []Shape) []Shape {
	var conus, alaska, hawaii []Shape
	for _, s := range shapes {
		switch s.Code {
		case "AK":
			alaska = append(alaska, projectShape(ClipRings(s, alaskaClip), alaskaProjection, 1, 0, 0))
		case "HI":
			hawaii = append(hawaii, projectShape(ClipRings(s, hawaiiClip), hawaiiProjection, 1, 0, 0))
		default:
			conus = append(conus, projectShape(s, conusProjection, 1, 0, 0))
		}
	}

	conusBox := Bounds(conus)

	// Shrink Alaska and anchor it under the south-west corner of CONUS,
	// then sit Hawaii just to its right.
	out := conus
	if len(alaska) > 0 {
		akBox := Bounds(alaska)
		targetX := conusBox.MinX + 0.02*conusBox.Width()
		targetY := conusBox.MinY - 0.12*conusBox.Height()
		dx := targetX - akBox.MinX*alaskaScale
		dy := targetY - akBox.MaxY*alaskaScale
		for _, s := range alaska {
			out = append(out, transformShape(s, alaskaScale, dx, dy))
		}
	}
	if len(hawaii) > 0 {
		hiBox := Bounds(hawaii)
		targetX := conusBox.MinX + 0.28*conusBox.Width()
		targetY := conusBox.MinY - 0.16*conusBox.Height()
		dx := targetX - hiBox.MinX
		dy := targetY - hiBox.MaxY
		for _, s := range hawaii {
			out = append(out, transformShape(s, 1, dx, dy))
		}
	}

	return out
}

func projectShape(s Shape, proj *Albers, scale, dx, dy float64) Shape {
	projected := Shape{Code: s.Code, Rings: make([]Ring, 0, len(s.Rings))}
	for _, ring := range s.Rings {
		pr := make(Ring, 0, len(ring))
		for _, p := range ring {
			x, y := proj.Project(p.X, p.Y)
			pr = append(pr, Point{X: x*scale + dx, Y: y*scale + dy})
		}
		projected.Rings = append(projected.Rings, pr)
	}
	return projected
}

func transformShape(s Shape, scale, dx, dy float64) Shape {
	t := Shape{Code: s.Code, Rings: make([]Ring, 0, len(s.Rings))}
	for _, ring := range s.Rings {
		tr := make(Ring, 0, len(ring))
		for _, p := range ring {
			tr = append(tr, Point{X: p.X*scale + dx, Y: p.Y*scale + dy})
		}
		t.Rings = append(t.Rings, tr)
	}
	return t
}
