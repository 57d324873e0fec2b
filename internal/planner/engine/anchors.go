package engine

import (
	"fmt"
	"math"
	"slices"

	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Edge-group anchors
// ============================================================

// edgeFrame это ребро полигона в мировых координатах с внешней нормалью.
type edgeFrame struct {
	p, q   geometry.Point
	dir    geometry.Point
	normal geometry.Point
	length float64
	angle  float64
}

// frame строит рамку ребра i. Контур обходится по часовой стрелке на экране,
// поэтому внешняя нормаль это направление ребра, повёрнутое на четверть
// оборота против часовой.
func frame(o geometry.Outline, i int) edgeFrame {
	p, q := o.Edge(i)
	d := q.Sub(p)
	dir := d.Unit()
	return edgeFrame{
		p:      p,
		q:      q,
		dir:    dir,
		normal: geometry.Pt(dir.Y, -dir.X),
		length: d.Len(),
		angle:  geometry.NormalizeDegrees(geometry.Degrees(math.Atan2(dir.Y, dir.X))),
	}
}

// outward возвращает точку на расстоянии dist от середины ребра вдоль
// нормали.
func (f edgeFrame) outward(dist float64) geometry.Point {
	return geometry.Midpoint(f.p, f.q).Add(f.normal.Scale(dist))
}

// strip возвращает прямоугольник длиной с ребро и глубиной thick, отстоящий
// от ребра на offset.
func (f edgeFrame) strip(offset, thick float64) *geometry.Rect {
	return &geometry.Rect{
		Center: f.outward(offset + thick/2),
		W:      f.length,
		H:      thick,
		Angle:  f.angle,
	}
}

// polygonAnchors вычисляет якорь каждой стороны с фичами и подписи внутренних
// углов. Снаружи от ребра идут стена, зазор, фартук, зазор подписи и подпись;
// отсутствующие фичи схлопываются.
func polygonAnchors(s *shape.Shape, l layout) []shape.Anchor {
	world := s.WorldOutline()
	m := l.metrics

	anchors := make([]shape.Anchor, 0, len(l.featureSides)+len(l.angles))
	for _, side := range l.featureSides {
		f := frame(world, l.edges[side])
		lengthSide := side
		if alias, ok := l.lengthOf[side]; ok {
			lengthSide = alias
		}
		value, _ := s.Get(lengthSide)

		a := shape.Anchor{
			Kind:  shape.SideAnchor,
			Side:  side,
			Value: value,
			Label: fmt.Sprintf("%s: %g", side, value),
		}

		offset := 0.0
		if s.Has(shape.Wall, side) {
			a.Wall = f.strip(offset, m.wallThickness)
			offset += m.wallThickness
		}
		if s.Has(shape.Backsplash, side) {
			a.Backsplash = f.strip(offset+m.backsplashGap, m.backsplashThickness)
			offset += m.backsplashGap + m.backsplashThickness
		}
		a.Region = geometry.Rect{
			Center: f.outward(offset + m.labelGap + m.labelHeight/2),
			W:      m.labelWidth,
			H:      m.labelHeight,
			Angle:  f.angle,
		}

		if slices.Contains(l.cornerSides, side) {
			// маркер стоит внутри угла в конце стороны
			inset := m.cornerSize
			a.Corner = &geometry.Rect{
				Center: f.q.Sub(f.dir.Scale(inset)).Sub(f.normal.Scale(inset)),
				W:      m.cornerSize,
				H:      m.cornerSize,
				Angle:  f.angle,
			}
		}
		anchors = append(anchors, a)
	}

	for _, side := range sortedKeys(l.angles) {
		idx := l.angles[side]
		n := len(world.Vertices)
		prev := frame(world, (idx-1+n)%n)
		next := frame(world, idx)
		bisector := prev.normal.Add(next.normal).Unit()
		dist := m.labelGap + m.labelHeight/2
		anchors = append(anchors, shape.Anchor{
			Kind:  shape.AngleAnchor,
			Side:  side,
			Value: geometry.InteriorAngle,
			Label: fmt.Sprintf("%s: %g°", side, geometry.InteriorAngle),
			Region: geometry.Rect{
				Center: world.Vertices[idx].Add(bisector.Scale(dist)),
				W:      m.labelHeight * 2,
				H:      m.labelHeight,
				Angle:  0,
			},
		})
	}
	return anchors
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
