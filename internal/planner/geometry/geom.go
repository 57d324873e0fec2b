// Package geometry это геометрическое ядро планировщика: точки,
// прямоугольники, построение полигона по семейству и обратное извлечение
// сторон, поворот вокруг опорной точки, площадь и hit-test для движков и
// рендера.
//
// Координаты экранные: x растёт вправо, y вниз. Поэтому «по часовой» означает
// по часовой на экране.
package geometry

import "math"

// Epsilon это допуск при сравнении выведенных длин.
const Epsilon = 1e-9

// Scale это внутреннее увеличение пользовательских единиц при раскладке
// вершин, чтобы ручки и подписи оставались соразмерными на экране.
const Scale = 4.0

// MaxCoord ограничивает позиции и смещения вида, принимаемые из команд.
const MaxCoord = 1e9

// ============================================================
// Primitives
// ============================================================

// Point это точка или вектор на плоскости.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box это прямоугольник, выровненный по осям.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Rect это повёрнутый прямоугольник: центр, размер и угол.
type Rect struct {
	Center Point   `json:"center"`
	W      float64 `json:"width"`
	H      float64 `json:"height"`
	Angle  float64 `json:"angle"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }

// InRange сообщает, что обе координаты конечны и не превышают MaxCoord по
// модулю.
func (p Point) InRange() bool {
	return math.Abs(p.X) <= MaxCoord && math.Abs(p.Y) <= MaxCoord
}

// Unit возвращает p, нормированный до длины 1, или нулевой вектор.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Near сообщает, совпадают ли p и q с точностью eps.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Distance возвращает евклидово расстояние между p1 и p2.
func Distance(p1, p2 Point) float64 {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint возвращает середину отрезка pq.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Center возвращает центр прямоугольника.
func (b Box) Center() Point {
	return Point{b.X + b.W/2, b.Y + b.H/2}
}

// Translate возвращает b, сдвинутый на d.
func (b Box) Translate(d Point) Box {
	return Box{X: b.X + d.X, Y: b.Y + d.Y, W: b.W, H: b.H}
}

// Corners возвращает четыре угла r по часовой начиная с левого верхнего.
func (r Rect) Corners() [4]Point {
	hw, hh := r.W/2, r.H/2
	local := [4]Point{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4]Point
	for i, p := range local {
		out[i] = RotateAbout(r.Center.Add(p), r.Center, r.Angle)
	}
	return out
}

// ============================================================
// Angles
// ============================================================

// Radians переводит градусы в радианы.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees переводит радианы в градусы.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeDegrees приводит deg к [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 и значения, округляющиеся до 360
	if deg >= 360 || deg == 0 {
		return 0
	}
	return deg
}

// RotateAbout поворачивает p вокруг pivot на deg градусов (по часовой на
// экране).
func RotateAbout(p, pivot Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	sin, cos := math.Sincos(Radians(deg))
	d := p.Sub(pivot)
	return Point{
		X: pivot.X + d.X*cos - d.Y*sin,
		Y: pivot.Y + d.X*sin + d.Y*cos,
	}
}

// Bounds возвращает ограничивающий прямоугольник точек.
func Bounds(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return Box{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Contains сообщает, лежит ли p внутри замкнутого полигона poly (ray
// casting).
func Contains(poly []Point, p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
