package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/rectpack/internal/geom"
)

func TestBounds_SizeRoundsUp(t *testing.T) {
	b := newBounds()
	b.add(point{1.5, 2})
	b.add(point{11.7, 5})
	b.add(point{4, -1})

	if got := b.size(); got != (geom.Size{Width: 11, Height: 6}) {
		t.Errorf("expected 11x6, got %s", got)
	}

	exact := newBounds()
	exact.add(point{0, 0})
	exact.add(point{600.0000000001, 300})
	if got := exact.size(); got != (geom.Size{Width: 600, Height: 300}) {
		t.Errorf("coordinate noise should not round up, got %s", got)
	}
}

func TestChainSegments_ClosedSquare(t *testing.T) {
	segs := []segment{
		{point{0, 0}, point{10, 0}},
		{point{10, 5}, point{10, 0}}, // reversed direction
		{point{10, 5}, point{0, 5}},
		{point{0, 5}, point{0, 0}},
		{point{50, 50}, point{60, 60}}, // isolated
	}

	chains, open := chainSegments(segs, 0.01)

	if len(chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(chains))
	}
	if open != 1 {
		t.Errorf("expected the isolated segment to count as open, got %d", open)
	}
	if len(chains[0]) != 4 {
		t.Errorf("expected closing point to be dropped, got %d points", len(chains[0]))
	}
}

func TestChainSegments_OpenPath(t *testing.T) {
	// Three sides of a square never close.
	segs := []segment{
		{point{0, 0}, point{10, 0}},
		{point{10, 0}, point{10, 5}},
		{point{10, 5}, point{0, 5}},
	}

	chains, open := chainSegments(segs, 0.01)

	if len(chains) != 0 {
		t.Errorf("expected no closed chains, got %d", len(chains))
	}
	if open != 1 {
		t.Errorf("expected 1 open chain, got %d", open)
	}
}

func TestPolylineShape(t *testing.T) {
	square := func(closed bool) *entity.LwPolyline {
		lw := entity.NewLwPolyline(4)
		lw.Vertices[0] = []float64{0, 0}
		lw.Vertices[1] = []float64{12.5, 0}
		lw.Vertices[2] = []float64{12.5, 4}
		lw.Vertices[3] = []float64{0, 4}
		lw.Closed = closed
		return lw
	}

	b, warning := polylineShape(square(true))
	if warning != "" {
		t.Fatalf("closed polyline rejected: %s", warning)
	}
	if got := b.size(); got != (geom.Size{Width: 13, Height: 4}) {
		t.Errorf("expected 13x4, got %s", got)
	}

	if _, warning := polylineShape(square(false)); warning == "" {
		t.Error("expected open polyline to be skipped")
	}

	short := entity.NewLwPolyline(2)
	short.Vertices[0] = []float64{0, 0}
	short.Vertices[1] = []float64{1, 1}
	short.Closed = true
	if _, warning := polylineShape(short); warning == "" {
		t.Error("expected two-vertex polyline to be skipped")
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	// A bulge of 1 is a half circle; from (0,0) to (10,0) it has radius 5.
	pts := bulgeArcPoints(point{0, 0}, point{10, 0}, 1, 32)

	if len(pts) != 33 {
		t.Fatalf("expected 33 points, got %d", len(pts))
	}
	for _, p := range pts {
		if d := math.Hypot(p.x-5, p.y); math.Abs(d-5) > 1e-9 {
			t.Fatalf("point %v is %.6f from the centre", p, d)
		}
	}
	b := newBounds()
	for _, p := range pts {
		b.add(p)
	}
	if w, h := b.extent(); math.Abs(w-10) > 1e-9 || math.Abs(h-5) > 1e-6 {
		t.Errorf("expected 10x5 extent, got %.3fx%.3f", w, h)
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF(filepath.Join(t.TempDir(), "missing.dxf"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing DXF file")
	}
}
