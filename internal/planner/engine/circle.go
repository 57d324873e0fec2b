package engine

import (
	"fmt"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Circle
// ============================================================

const (
	circleDefaultRadius = 40.0

	circleLabelGap    = 6.0
	circleLabelWidth  = 64.0
	circleLabelHeight = 20.0
)

// Circle имеет одну сторону, радиус, и ни одной стороны под фичи.
type Circle struct {
	base
}

func NewCircle() *Circle {
	return &Circle{base{layout{
		family:      geometry.Circle,
		displayName: "Circle",
		defaults:    geometry.Sides{"radius": circleDefaultRadius},
		metrics: metrics{
			labelGap:    circleLabelGap,
			labelWidth:  circleLabelWidth,
			labelHeight: circleLabelHeight,
		},
	}}}
}

func (e *Circle) AddFeature(s *shape.Shape, kind shape.Feature, side string) error {
	if err := e.owns(s); err != nil {
		return err
	}
	return apperrors.Precondition(apperrors.CodeFeatureSide, "circle shapes have no sides for a %s", kind)
}

// Anchors ставит подпись радиуса над кругом с учётом поворота.
func (e *Circle) Anchors(s *shape.Shape) []shape.Anchor {
	world := s.WorldOutline()
	r, _ := s.Get("radius")
	up := geometry.RotateAbout(geometry.Pt(0, -1), geometry.Point{}, s.Transform.Rotation)
	dist := world.Radius + e.metrics.labelGap + e.metrics.labelHeight/2
	return []shape.Anchor{{
		Kind:  shape.SideAnchor,
		Side:  "radius",
		Value: r,
		Label: fmt.Sprintf("radius: %g", r),
		Region: geometry.Rect{
			Center: world.Center.Add(up.Scale(dist)),
			W:      e.metrics.labelWidth,
			H:      e.metrics.labelHeight,
			Angle:  s.Transform.Rotation,
		},
	}}
}

func (e *Circle) Snapshot(s *shape.Shape) shape.Snapshot {
	snap := s.BaseSnapshot()
	snap.Anchors = e.Anchors(s)
	return snap
}
