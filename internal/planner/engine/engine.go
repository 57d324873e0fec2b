// Package engine реализует движок для каждого семейства фигур. Движок владеет
// семантикой сторон своего семейства: какие стороны несут фичи, таблицы
// смежности стен и скруглённых углов, геометрическая допустимость и якорные
// области для подписей, стен, фартуков и маркеров углов.
package engine

import (
	"slices"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Engine
// ============================================================

// Engine это общий набор возможностей всех семейств.
type Engine interface {
	Family() geometry.Family
	Draw(id string, origin geometry.Point, m shape.Material) (*shape.Shape, error)
	Resize(s *shape.Shape, side string, length float64) (Change, error)
	AddFeature(s *shape.Shape, kind shape.Feature, side string) error
	RemoveFeature(s *shape.Shape, kind shape.Feature, side string) error
	Rotate(s *shape.Shape, delta float64)
	Delete(s *shape.Shape)
	CornerAvailability(s *shape.Shape) map[string]bool
	Anchors(s *shape.Shape) []shape.Anchor
	Snapshot(s *shape.Shape) shape.Snapshot
}

// Change описывает одно применённое изменение размера.
type Change struct {
	Side string  `json:"side"`
	Old  float64 `json:"old"`
	New  float64 `json:"new"`
}

// All возвращает новый движок для каждого семейства.
func All() map[geometry.Family]Engine {
	return map[geometry.Family]Engine{
		geometry.Square: NewSquare(),
		geometry.L:      NewLShape(),
		geometry.U:      NewUShape(),
		geometry.Circle: NewCircle(),
	}
}

// ============================================================
// Family layout
// ============================================================

// metrics это именованные размеры для расчёта якорей, в экранных единицах.
type metrics struct {
	labelGap            float64
	labelWidth          float64
	labelHeight         float64
	wallThickness       float64
	backsplashGap       float64
	backsplashThickness float64
	cornerSize          float64
}

// layout это статическое описание одного семейства.
type layout struct {
	family      geometry.Family
	displayName string
	defaults    geometry.Sides

	// featureSides это стороны, принимающие стены и фартуки, с ребром
	// полигона и отображаемой длиной.
	featureSides []string
	edges        map[string]int
	lengthOf     map[string]string

	// cornerSides получают маркер скругления в конечной вершине стороны.
	cornerSides []string

	// wallClears это скругления, которые отключает стена на стороне-ключе;
	// cornerClears это стены, которые отключает скругление на стороне-ключе.
	wallClears   map[string][]string
	cornerClears map[string][]string

	// angles сопоставляет read-only сторонам внутренних углов их вершину.
	angles map[string]int

	metrics metrics

	// feasible проверяет полный набор сторон сверх положительности.
	feasible func(geometry.Sides) error
}

// base реализует Engine поверх layout.
type base struct {
	layout
}

func (b *base) Family() geometry.Family {
	return b.family
}

func (b *base) Draw(id string, origin geometry.Point, m shape.Material) (*shape.Shape, error) {
	s, err := shape.New(id, b.family, b.defaults.Clone(), origin)
	if err != nil {
		return nil, err
	}
	s.Name = b.displayName
	s.Material = m
	return s, nil
}

func (b *base) Resize(s *shape.Shape, side string, length float64) (Change, error) {
	if err := b.owns(s); err != nil {
		return Change{}, err
	}
	if geometry.IsReadOnlySide(b.family, side) {
		return Change{}, apperrors.Validation(apperrors.CodeSideReadOnly, "side %q is read-only", side)
	}
	if !geometry.IsSide(b.family, side) {
		return Change{}, apperrors.Validation(apperrors.CodeSideUnknown, "%s shape has no side %q", b.family, side)
	}
	if err := geometry.CheckLength(side, length); err != nil {
		return Change{}, err
	}

	old, _ := s.Get(side)
	candidate := s.Sides()
	candidate[side] = length
	if b.feasible != nil {
		if err := b.feasible(candidate); err != nil {
			return Change{}, err
		}
	}
	if err := s.Replace(candidate); err != nil {
		return Change{}, err
	}
	return Change{Side: side, Old: old, New: length}, nil
}

func (b *base) AddFeature(s *shape.Shape, kind shape.Feature, side string) error {
	if err := b.owns(s); err != nil {
		return err
	}
	if err := b.checkFeatureSide(kind, side); err != nil {
		return err
	}
	if s.Has(kind, side) {
		return apperrors.Precondition(apperrors.CodeFeatureExists, "%s already exists on side %s", kind, side)
	}

	switch kind {
	case shape.Wall:
		b.addWall(s, side)
	case shape.Backsplash:
		if !s.Has(shape.Wall, side) {
			b.addWall(s, side)
		}
		s.Enable(shape.Backsplash, side)
	case shape.RoundedCorner:
		for _, w := range b.cornerClears[side] {
			b.removeWall(s, w)
		}
		s.Enable(shape.RoundedCorner, side)
	}
	return nil
}

func (b *base) RemoveFeature(s *shape.Shape, kind shape.Feature, side string) error {
	if err := b.owns(s); err != nil {
		return err
	}
	if err := b.checkFeatureSide(kind, side); err != nil {
		return err
	}

	switch kind {
	case shape.Wall:
		b.removeWall(s, side)
	default:
		s.Disable(kind, side)
	}
	return nil
}

func (b *base) addWall(s *shape.Shape, side string) {
	for _, c := range b.wallClears[side] {
		s.Disable(shape.RoundedCorner, c)
	}
	s.Enable(shape.Wall, side)
}

// removeWall убирает стену и зависящий от неё фартук.
func (b *base) removeWall(s *shape.Shape, side string) {
	s.Disable(shape.Backsplash, side)
	s.Disable(shape.Wall, side)
}

func (b *base) Rotate(s *shape.Shape, delta float64) {
	s.Rotate(delta)
}

func (b *base) Delete(s *shape.Shape) {
	s.MarkDeleted()
}

func (b *base) CornerAvailability(s *shape.Shape) map[string]bool {
	out := make(map[string]bool, len(b.cornerSides))
	for _, side := range b.cornerSides {
		available := true
		for _, w := range b.cornerClears[side] {
			if s.Has(shape.Wall, w) {
				available = false
				break
			}
		}
		out[side] = available
	}
	return out
}

func (b *base) Anchors(s *shape.Shape) []shape.Anchor {
	return polygonAnchors(s, b.layout)
}

func (b *base) Snapshot(s *shape.Shape) shape.Snapshot {
	snap := s.BaseSnapshot()
	avail := b.CornerAvailability(s)
	for _, side := range b.featureSides {
		snap.Features[side] = shape.SideFeatures{
			Wall:                   s.Has(shape.Wall, side),
			Backsplash:             s.Has(shape.Backsplash, side),
			RoundedCorner:          s.Has(shape.RoundedCorner, side),
			RoundedCornerAvailable: avail[side],
		}
	}
	snap.Anchors = b.Anchors(s)
	return snap
}

func (b *base) owns(s *shape.Shape) error {
	if s.Family != b.family {
		return apperrors.Internal("%s engine cannot drive a %s shape", b.family, s.Family)
	}
	if s.Deleted() {
		return apperrors.Precondition(apperrors.CodeShapeDeleted, "shape %s was deleted", s.ID)
	}
	return nil
}

func (b *base) checkFeatureSide(kind shape.Feature, side string) error {
	switch kind {
	case shape.Wall, shape.Backsplash:
		if !slices.Contains(b.featureSides, side) {
			return apperrors.Precondition(apperrors.CodeFeatureSide, "%s shape has no side %q for a %s", b.family, side, kind)
		}
	case shape.RoundedCorner:
		if !slices.Contains(b.cornerSides, side) {
			return apperrors.Precondition(apperrors.CodeFeatureSide, "%s shape has no rounded corner at side %q", b.family, side)
		}
	default:
		return apperrors.Validation(apperrors.CodeFeatureKind, "unknown feature %q", kind)
	}
	return nil
}
