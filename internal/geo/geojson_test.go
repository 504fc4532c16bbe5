package geo

import (
	"testing"

	"github.com/mspb-data/spending.report/internal/testutil"
)

const testFeatureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"STUSPS": "co", "NAME": "Colorado"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[-109, 37], [-102, 37], [-102, 41], [-109, 41], [-109, 37]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"STUSPS": "HI", "NAME": "Hawaii"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-156, 19], [-155, 19], [-155, 20], [-156, 19]]],
          [[[-158, 21], [-157, 21], [-157, 22], [-158, 21]]]
        ]
      }
    }
  ]
}`

func TestLoadStates(t *testing.T) {
	path := testutil.WriteTempFile(t, "states.json", testFeatureCollection)

	shapes, err := LoadStates(path, "STUSPS")
	testutil.AssertNoError(t, err)
	if len(shapes) != 2 {
		t.Fatalf("got %d shapes, want 2", len(shapes))
	}

	if shapes[0].Code != "CO" {
		t.Errorf("shapes[0].Code = %q, want CO (upper-cased)", shapes[0].Code)
	}
	if len(shapes[0].Rings) != 1 {
		t.Errorf("Colorado has %d rings, want 1", len(shapes[0].Rings))
	}
	if len(shapes[1].Rings) != 2 {
		t.Errorf("Hawaii has %d rings, want 2 (one per island)", len(shapes[1].Rings))
	}

	first := shapes[0].Rings[0][0]
	if first.X != -109 || first.Y != 37 {
		t.Errorf("first point = %+v, want {-109 37}", first)
	}
}

func TestLoadStatesMissingProperty(t *testing.T) {
	path := testutil.WriteTempFile(t, "states.json", testFeatureCollection)
	_, err := LoadStates(path, "NO_SUCH_KEY")
	testutil.AssertError(t, err)
}

func TestLoadStatesNotFeatureCollection(t *testing.T) {
	path := testutil.WriteTempFile(t, "geom.json", `{"type": "Feature"}`)
	_, err := LoadStates(path, "STUSPS")
	testutil.AssertError(t, err)
}

func TestLoadStatesUnsupportedGeometry(t *testing.T) {
	doc := `{"type": "FeatureCollection", "features": [
	  {"properties": {"STUSPS": "XX"}, "geometry": {"type": "Point", "coordinates": [0, 0]}}
	]}`
	path := testutil.WriteTempFile(t, "geom.json", doc)
	_, err := LoadStates(path, "STUSPS")
	testutil.AssertError(t, err)
}

func TestBounds(t *testing.T) {
	shapes := []Shape{
		{Code: "A", Rings: []Ring{{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 3}}}},
		{Code: "B", Rings: []Ring{{{X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 5}}}},
	}

	box := Bounds(shapes)
	want := BBox{MinX: -1, MinY: 0, MaxX: 2, MaxY: 5}
	if box != want {
		t.Errorf("Bounds = %+v, want %+v", box, want)
	}
	if box.Width() != 3 || box.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 3/5", box.Width(), box.Height())
	}
}

func TestClipRings(t *testing.T) {
	shape := Shape{
		Code: "AK",
		Rings: []Ring{
			{{X: -150, Y: 60}, {X: -148, Y: 60}, {X: -148, Y: 62}}, // inside
			{{X: -175, Y: 52}, {X: -174, Y: 52}, {X: -174, Y: 53}}, // west of the clip window
			{{X: 172, Y: 52}, {X: 173, Y: 52}, {X: 173, Y: 53}},    // across the antimeridian
			{{X: -150, Y: 60}, {X: -120, Y: 60}, {X: -120, Y: 62}}, // straddles the east edge
		},
	}

	clipped := ClipRings(shape, BBox{MinX: -170, MinY: 50, MaxX: -128, MaxY: 72})
	if len(clipped.Rings) != 1 {
		t.Fatalf("got %d rings after clip, want 1", len(clipped.Rings))
	}
	if clipped.Code != "AK" {
		t.Errorf("clipped code = %q, want AK", clipped.Code)
	}
}
