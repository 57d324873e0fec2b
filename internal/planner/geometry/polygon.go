package geometry

import (
	"fmt"

	"layout-planner/internal/common/apperrors"
)

// ============================================================
// Outline
// ============================================================

// Outline это выведенная геометрия фигуры: упорядоченный по часовой полигон
// или центр и радиус для круга.
type Outline struct {
	Family   Family  `json:"family"`
	Vertices []Point `json:"vertices,omitempty"`
	Center   Point   `json:"center"`
	Radius   float64 `json:"radius,omitempty"`
}

// IsCircle сообщает, что контур это круг, а не полигон.
func (o Outline) IsCircle() bool {
	return o.Family == Circle
}

// Bounds возвращает ограничивающий прямоугольник контура.
func (o Outline) Bounds() Box {
	if o.IsCircle() {
		return Box{X: o.Center.X - o.Radius, Y: o.Center.Y - o.Radius, W: 2 * o.Radius, H: 2 * o.Radius}
	}
	return Bounds(o.Vertices)
}

// Edge возвращает концы i-го ребра (вершины i и i+1).
func (o Outline) Edge(i int) (Point, Point) {
	n := len(o.Vertices)
	return o.Vertices[i%n], o.Vertices[(i+1)%n]
}

// Transformed возвращает контур, повёрнутый на deg вокруг pivot.
func (o Outline) Transformed(pivot Point, deg float64) Outline {
	out := Outline{Family: o.Family, Radius: o.Radius, Center: RotateAbout(o.Center, pivot, deg)}
	if len(o.Vertices) > 0 {
		out.Vertices = make([]Point, len(o.Vertices))
		for i, p := range o.Vertices {
			out.Vertices[i] = RotateAbout(p, pivot, deg)
		}
	}
	return out
}

// Translated возвращает контур, сдвинутый на d.
func (o Outline) Translated(d Point) Outline {
	out := Outline{Family: o.Family, Radius: o.Radius, Center: o.Center.Add(d)}
	if len(o.Vertices) > 0 {
		out.Vertices = make([]Point, len(o.Vertices))
		for i, p := range o.Vertices {
			out.Vertices[i] = p.Add(d)
		}
	}
	return out
}

// Contains сообщает, лежит ли p внутри контура.
func (o Outline) Contains(p Point) bool {
	if o.IsCircle() {
		return Distance(o.Center, p) <= o.Radius
	}
	return Contains(o.Vertices, p)
}

// ============================================================
// Side tables: polygon edges per named side
// ============================================================

// sideEdges сопоставляет каждой стороне пару вершин, расстояние между
// которыми и есть её длина.
var sideEdges = map[Family]map[string][2]int{
	Square: {"width": {0, 1}, "height": {1, 2}},
	L:      {"a": {0, 1}, "b": {1, 2}, "c": {2, 3}, "d": {3, 4}},
	U:      {"c": {0, 1}, "d": {1, 2}, "e": {4, 5}, "b": {5, 6}, "a": {6, 7}, "f": {7, 0}},
}

// ============================================================
// Construction
// ============================================================

// PolygonFromSides раскладывает контур семейства по часовой от левого
// верхнего угла (originX, originY). Длины задаются в пользовательских
// единицах и умножаются на Scale. Контуры замкнуты неявно: замыкающая вершина
// не повторяется.
func PolygonFromSides(f Family, sides Sides, originX, originY float64) (Outline, error) {
	if err := CheckSides(f, sides); err != nil {
		return Outline{}, err
	}

	o := Point{originX, originY}
	at := func(x, y float64) Point {
		return Point{o.X + x*Scale, o.Y + y*Scale}
	}

	switch f {
	case Square:
		w, h := sides["width"], sides["height"]
		return Outline{Family: f, Vertices: []Point{
			at(0, 0), at(w, 0), at(w, h), at(0, h),
		}, Center: at(w/2, h/2)}, nil

	case L:
		a, b, c, d := sides["a"], sides["b"], sides["c"], sides["d"]
		verts := []Point{
			at(0, 0),
			at(a, 0),
			at(a, b),
			at(a+c, b),
			at(a+c, b+d),
			at(0, b+d),
		}
		return Outline{Family: f, Vertices: verts, Center: Bounds(verts).Center()}, nil

	case U:
		a, b, c, d, e, fv := sides["a"], sides["b"], sides["c"], sides["d"], sides["e"], sides["f"]
		verts := []Point{
			at(0, 0),
			at(c, 0),
			at(c, d),
			at(a-e, d),
			at(a-e, fv-b),
			at(a, fv-b),
			at(a, fv),
			at(0, fv),
		}
		return Outline{Family: f, Vertices: verts, Center: Bounds(verts).Center()}, nil

	case Circle:
		r := sides["radius"]
		return Outline{Family: f, Center: at(r, r), Radius: r * Scale}, nil
	}
	return Outline{}, apperrors.Validation(apperrors.CodeFamilyUnknown, "unknown shape family %q", f)
}

// SideLengthsFromPolygon восстанавливает все стороны (в пользовательских
// единицах) из контура, построенного PolygonFromSides, вместе с read-only
// внутренними углами.
func SideLengthsFromPolygon(f Family, o Outline) (Sides, error) {
	if f == Circle {
		if !o.IsCircle() {
			return nil, fmt.Errorf("outline is not a circle")
		}
		return Sides{"radius": o.Radius / Scale}, nil
	}

	edges, ok := sideEdges[f]
	if !ok {
		return nil, apperrors.Validation(apperrors.CodeFamilyUnknown, "unknown shape family %q", f)
	}
	if want := VertexCount(f); len(o.Vertices) != want {
		return nil, fmt.Errorf("%s outline needs %d vertices, got %d", f, want, len(o.Vertices))
	}

	out := make(Sides, len(edges)+len(readOnlySides[f]))
	for name, pair := range edges {
		out[name] = Distance(o.Vertices[pair[0]], o.Vertices[pair[1]]) / Scale
	}
	for _, name := range readOnlySides[f] {
		out[name] = InteriorAngle
	}
	return out, nil
}

// SideEdge возвращает пару вершин, задающую сторону семейства f.
func SideEdge(f Family, side string) ([2]int, bool) {
	pair, ok := sideEdges[f][side]
	return pair, ok
}

// VertexCount возвращает число вершин полигона f (0 для круга).
func VertexCount(f Family) int {
	switch f {
	case Square:
		return 4
	case L:
		return 6
	case U:
		return 8
	}
	return 0
}
