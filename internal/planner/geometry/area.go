package geometry

import (
	"fmt"
	"math"

	"github.com/rclancey/earcut"
)

// Triangulate разбивает простой полигон на треугольники методом отсечения
// ушей.
func Triangulate(poly []Point) ([][3]Point, error) {
	if len(poly) < 3 {
		return nil, fmt.Errorf("degenerate polygon (%d vertices < 3)", len(poly))
	}

	// earcut ждёт плоский массив [x0, y0, x1, y1, ...].
	coords := make([]float64, len(poly)*2)
	for i, p := range poly {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d-vertex polygon: %w", len(poly), err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("invalid triangle index count %d", len(indices))
	}

	tris := make([][3]Point, len(indices)/3)
	for i := range tris {
		tris[i] = [3]Point{poly[indices[i*3]], poly[indices[i*3+1]], poly[indices[i*3+2]]}
	}
	return tris, nil
}

// Area возвращает площадь контура в квадратных пользовательских единицах.
func Area(o Outline) (float64, error) {
	if o.IsCircle() {
		r := o.Radius / Scale
		return math.Pi * r * r, nil
	}

	tris, err := Triangulate(o.Vertices)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, t := range tris {
		sum += math.Abs((t[1].X-t[0].X)*(t[2].Y-t[0].Y)-(t[2].X-t[0].X)*(t[1].Y-t[0].Y)) / 2
	}
	return sum / (Scale * Scale), nil
}
