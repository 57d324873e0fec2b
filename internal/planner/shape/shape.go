// Package shape хранит в памяти запись одной фигуры, размещённой или
// заготовки: идентичность, семейство, длины сторон, трансформацию, флаги фич
// по сторонам, материал и состояние размещения. О рендеринге пакет ничего не
// знает.
package shape

import (
	"strings"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/geometry"
)

// ============================================================
// Placement & Material
// ============================================================

// PlacementState это стадия жизненного цикла фигуры.
type PlacementState string

const (
	Placeholder PlacementState = "placeholder"
	Placed      PlacementState = "placed"
)

// Material это непрозрачная ссылка на запись каталога, привязанная к фигуре.
type Material struct {
	ID          string `json:"id,omitempty"`
	Image       string `json:"image,omitempty"`
	Name        string `json:"name,omitempty"`
	ProductName string `json:"productName,omitempty"`
}

// Fill это текстура материала, применяемая после загрузки изображения.
type Fill struct {
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color"`
}

// ============================================================
// Shape
// ============================================================

// Shape это один экземпляр фигуры. Реестр владеет им всё время жизни.
type Shape struct {
	ID        string
	Family    geometry.Family
	Name      string
	Material  Material
	Transform geometry.Transform
	State     PlacementState
	Fill      *Fill

	sides    geometry.Sides
	outline  geometry.Outline
	features features
	deleted  bool
}

// New создаёт фигуру-заготовку. Длины сторон проверяются на положительность,
// контур выводится из них.
func New(id string, family geometry.Family, sides geometry.Sides, position geometry.Point) (*Shape, error) {
	s := &Shape{
		ID:        id,
		Family:    family,
		Transform: geometry.Transform{Position: position},
		State:     Placeholder,
		features:  newFeatures(),
	}
	if err := s.Replace(sides); err != nil {
		return nil, err
	}
	return s, nil
}

// Get возвращает длину стороны, включая read-only внутренние углы.
func (s *Shape) Get(side string) (float64, bool) {
	if geometry.IsReadOnlySide(s.Family, side) {
		return geometry.InteriorAngle, true
	}
	v, ok := s.sides[side]
	return v, ok
}

// Set меняет одну сторону и перестраивает контур. Если сторона неизвестна,
// read-only или длина не положительна, возвращает ошибку и не трогает фигуру.
func (s *Shape) Set(side string, length float64) error {
	if err := s.checkSide(side); err != nil {
		return err
	}
	candidate := s.sides.Clone()
	candidate[side] = length
	return s.Replace(candidate)
}

// Replace подставляет полный набор сторон после проверки.
func (s *Shape) Replace(sides geometry.Sides) error {
	if s.deleted {
		return apperrors.Precondition(apperrors.CodeShapeDeleted, "shape %s was deleted", s.ID)
	}
	candidate := make(geometry.Sides, len(sides))
	for name, v := range sides {
		if geometry.IsReadOnlySide(s.Family, name) {
			continue
		}
		candidate[name] = v
	}
	outline, err := geometry.PolygonFromSides(s.Family, candidate, 0, 0)
	if err != nil {
		return err
	}
	s.sides = candidate
	s.outline = outline
	return nil
}

func (s *Shape) checkSide(side string) error {
	if geometry.IsReadOnlySide(s.Family, side) {
		return apperrors.Validation(apperrors.CodeSideReadOnly, "side %q is read-only", side)
	}
	if !geometry.IsSide(s.Family, side) {
		return apperrors.Validation(apperrors.CodeSideUnknown, "%s shape has no side %q", s.Family, side)
	}
	return nil
}

// Sides возвращает копию длин изменяемых сторон.
func (s *Shape) Sides() geometry.Sides {
	return s.sides.Clone()
}

// Outline возвращает локальный контур фигуры, построенный в начале координат.
func (s *Shape) Outline() geometry.Outline {
	return s.outline
}

// Polygon возвращает неповёрнутый контур, построенный в позиции фигуры.
func (s *Shape) Polygon() geometry.Outline {
	p := s.Transform.Position
	o, _ := geometry.PolygonFromSides(s.Family, s.sides, p.X, p.Y)
	return o
}

// WorldOutline возвращает контур с применённой полной трансформацией.
func (s *Shape) WorldOutline() geometry.Outline {
	return s.outline.Transformed(geometry.Point{}, s.Transform.Rotation).Translated(s.Transform.Position)
}

// BoundingBox возвращает ограничивающий прямоугольник Polygon без учёта
// поворота; для повёрнутых границ его комбинируют с Transform.Rotation.
func (s *Shape) BoundingBox() geometry.Box {
	return s.outline.Bounds().Translate(s.Transform.Position)
}

// Rotate поворачивает фигуру на delta градусов вокруг визуального центра.
func (s *Shape) Rotate(delta float64) {
	s.Transform = geometry.RotateAboutCenter(s.Transform, s.outline.Bounds(), delta)
}

// MoveTo задаёт позицию начала координат фигуры.
func (s *Shape) MoveTo(p geometry.Point) {
	s.Transform.Position = p
}

// Rename задаёт отображаемое имя; пустые имена отклоняются.
func (s *Shape) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Validation(apperrors.CodeNameBlank, "shape name must not be blank")
	}
	s.Name = name
	return nil
}

// Place фиксирует материал. Выполняется один раз для фигуры.
func (s *Shape) Place(m Material) error {
	if s.State == Placed {
		return apperrors.Precondition(apperrors.CodeAlreadyPlaced, "shape %s is already placed", s.ID)
	}
	if m.ID != "" || m.Image != "" {
		s.Material = m
	}
	s.State = Placed
	return nil
}

// MarkDeleted очищает фичи и замораживает фигуру; последующие изменения
// завершаются ошибкой.
func (s *Shape) MarkDeleted() {
	s.features = newFeatures()
	s.deleted = true
}

// Deleted сообщает, удалена ли фигура из реестра.
func (s *Shape) Deleted() bool {
	return s.deleted
}
