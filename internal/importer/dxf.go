package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/rectpack/internal/geom"
	"github.com/piwi3910/rectpack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a DXF drawing coordinate.
type point struct{ x, y float64 }

// bounds accumulates the axis-aligned bounding box of a shape.
type bounds struct {
	minX, minY, maxX, maxY float64
	empty                  bool
}

func newBounds() bounds {
	return bounds{empty: true}
}

func (b *bounds) add(p point) {
	if b.empty {
		b.minX, b.maxX, b.minY, b.maxY = p.x, p.x, p.y, p.y
		b.empty = false
		return
	}
	b.minX = math.Min(b.minX, p.x)
	b.maxX = math.Max(b.maxX, p.x)
	b.minY = math.Min(b.minY, p.y)
	b.maxY = math.Max(b.maxY, p.y)
}

// size returns the bounding box rounded up to whole units.
func (b bounds) size() geom.Size {
	return geom.Size{
		Width:  int(math.Ceil(b.maxX - b.minX - dxfTolerance)),
		Height: int(math.Ceil(b.maxY - b.minY - dxfTolerance)),
	}
}

func (b bounds) extent() (float64, float64) {
	return b.maxX - b.minX, b.maxY - b.minY
}

// dxfTolerance absorbs floating point noise in drawing coordinates.
const dxfTolerance = 1e-6

// segment connects two points; loose LINEs and ARCs are chained from these.
type segment struct {
	start, end point
}

// ImportDXF imports items from a DXF file. Each closed LWPOLYLINE, CIRCLE or
// chain of LINEs and ARCs becomes one item sized by its bounding box.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var shapes []bounds
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			b, warning := polylineShape(e)
			if warning != "" {
				result.Warnings = append(result.Warnings, warning)
				continue
			}
			shapes = append(shapes, b)
		case *entity.Circle:
			b := newBounds()
			b.add(point{e.Center[0] - e.Radius, e.Center[1] - e.Radius})
			b.add(point{e.Center[0] + e.Radius, e.Center[1] + e.Radius})
			shapes = append(shapes, b)
		case *entity.Arc:
			segments = append(segments, arcSegments(e, 32)...)
		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})
		}
	}

	chains, open := chainSegments(segments, 0.01)
	if open > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %d open LINE/ARC chains", open))
	}
	for _, chain := range chains {
		b := newBounds()
		for _, p := range chain {
			b.add(p)
		}
		shapes = append(shapes, b)
	}

	if len(shapes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, b := range shapes {
		w, h := b.extent()
		if w < 0.01 || h < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", w, h))
			continue
		}
		size := b.size()
		result.Items = append(result.Items,
			model.NewItem(fmt.Sprintf("DXF Item %d", i+1), size.Width, size.Height, 1))
	}

	return result
}

// polylineShape returns the bounds of a closed polyline, or a warning when
// the polyline does not outline an item.
func polylineShape(lw *entity.LwPolyline) (bounds, string) {
	if len(lw.Vertices) < 3 {
		return bounds{}, "Skipped LWPOLYLINE with fewer than 3 vertices"
	}
	if !lw.Closed {
		return bounds{}, "Skipped open LWPOLYLINE"
	}
	return lwPolylineBounds(lw), ""
}

// lwPolylineBounds returns the bounding box of a polyline. Bulged segments
// are sampled along their arc.
func lwPolylineBounds(lw *entity.LwPolyline) bounds {
	b := newBounds()
	n := len(lw.Vertices)
	for i, v := range lw.Vertices {
		current := point{v[0], v[1]}
		b.add(current)

		if i >= len(lw.Bulges) || math.Abs(lw.Bulges[i]) < 1e-9 {
			continue
		}
		next := lw.Vertices[(i+1)%n]
		for _, p := range bulgeArcPoints(current, point{next[0], next[1]}, lw.Bulges[i], 32) {
			b.add(p)
		}
	}
	return b
}

// bulgeArcPoints samples the arc between p1 and p2 described by a DXF bulge
// factor, the tangent of a quarter of the included angle.
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	dx, dy := p2.x-p1.x, p2.y-p1.y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX, perpY := -dy/chord, dx/chord
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	dist := radius - sagitta
	cx := (p1.x+p2.x)/2 + perpX*dist
	cy := (p1.y+p2.y)/2 + perpY*dist

	start := math.Atan2(p1.y-cy, p1.x-cx)
	end := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 && end > start {
		end -= 2 * math.Pi
	}
	if bulge > 0 && end < start {
		end += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := range pts {
		angle := start + float64(i)/float64(numSegments)*(end-start)
		pts[i] = point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)}
	}
	return pts
}

// arcSegments approximates a DXF ARC by numSegments straight segments.
func arcSegments(a *entity.Arc, numSegments int) []segment {
	cx, cy, r := a.Circle.Center[0], a.Circle.Center[1], a.Circle.Radius
	start := a.Angle[0] * math.Pi / 180
	end := a.Angle[1] * math.Pi / 180
	if end <= start {
		end += 2 * math.Pi
	}

	segs := make([]segment, 0, numSegments)
	prev := point{cx + r*math.Cos(start), cy + r*math.Sin(start)}
	for i := 1; i <= numSegments; i++ {
		angle := start + float64(i)/float64(numSegments)*(end-start)
		p := point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
		segs = append(segs, segment{start: prev, end: p})
		prev = p
	}
	return segs
}

// chainSegments connects segments whose endpoints lie within tolerance into
// point chains. Only closed chains of at least three points are returned,
// without the repeated closing point; open reports how many were discarded.
func chainSegments(segs []segment, tolerance float64) (chains [][]point, open int) {
	used := make([]bool, len(segs))

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		used[startIdx] = true
		chain := []point{segs[startIdx].start, segs[startIdx].end}

		for extended := true; extended; {
			extended = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				default:
					continue
				}
				used[i] = true
				extended = true
				break
			}
		}

		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			open++
			continue
		}
		chains = append(chains, chain[:len(chain)-1])
	}
	return chains, open
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}
