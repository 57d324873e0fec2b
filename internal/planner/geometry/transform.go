package geometry

// Transform размещает фигуру: контур строится в начале координат,
// поворачивается на Rotation градусов вокруг него и переносится в Position.
type Transform struct {
	Position Point   `json:"position"`
	Rotation float64 `json:"rotation"`
}

// Apply переводит точку из локальных координат фигуры в мировые.
func (t Transform) Apply(local Point) Point {
	return RotateAbout(local, Point{}, t.Rotation).Add(t.Position)
}

// VisualCenter возвращает мировой центр локальных границ под t.
func (t Transform) VisualCenter(local Box) Point {
	return t.Apply(local.Center())
}

// RotateAboutCenter поворачивает трансформацию на delta градусов вокруг
// визуального центра local (границ фигуры в начале координат). Центр остаётся
// на месте; поворот относительный и хранится в [0, 360).
func RotateAboutCenter(t Transform, local Box, delta float64) Transform {
	center := t.VisualCenter(local)
	return Transform{
		Position: RotateAbout(t.Position, center, delta),
		Rotation: NormalizeDegrees(t.Rotation + delta),
	}
}
