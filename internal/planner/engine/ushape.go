package engine

import (
	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/geometry"
)

// ============================================================
// U-Shape
// ============================================================

const (
	uDefaultA = 150.0
	uDefaultB = 100.0
	uDefaultC = 50.0
	uDefaultD = 40.0
	uDefaultE = 50.0
	uDefaultF = 90.0

	uLabelGap            = 6.0
	uLabelWidth          = 56.0
	uLabelHeight         = 20.0
	uWallThickness       = 6.0
	uBacksplashGap       = 4.0
	uBacksplashThickness = 10.0
	uCornerSize          = 12.0
)

// UShape строит U-контур: верх левого плеча c, внутренняя глубина левого
// плеча d, верх правого плеча e, внешняя сторона правого плеча b, низ a и
// внешняя сторона левого плеча f. Дно выреза и внутренняя сторона правого
// плеча выводятся. i1 и i2 это отображаемые углы на дне выреза. Контур это
// замкнутое кольцо из 9 вершин, замыкающая вершина не хранится, поэтому в
// Vertices 8 точек.
type UShape struct {
	base
}

func NewUShape() *UShape {
	return &UShape{base{layout{
		family:      geometry.U,
		displayName: "U-Shape",
		defaults: geometry.Sides{
			"a": uDefaultA, "b": uDefaultB, "c": uDefaultC,
			"d": uDefaultD, "e": uDefaultE, "f": uDefaultF,
		},
		featureSides: []string{"a", "b", "c", "d", "e", "f"},
		edges:        map[string]int{"c": 0, "d": 1, "e": 4, "b": 5, "a": 6, "f": 7},
		cornerSides:  []string{"a", "b", "c", "e", "f"},
		wallClears: map[string][]string{
			"a": {"a", "b"},
			"b": {"b", "e"},
			"c": {"c", "f"},
			"d": {"c"},
			"e": {"e"},
			"f": {"f", "a"},
		},
		cornerClears: map[string][]string{
			"a": {"a", "f"},
			"b": {"b", "a"},
			"c": {"c", "d"},
			"e": {"e", "b"},
			"f": {"f", "c"},
		},
		angles: map[string]int{"i1": 2, "i2": 3},
		metrics: metrics{
			labelGap:            uLabelGap,
			labelWidth:          uLabelWidth,
			labelHeight:         uLabelHeight,
			wallThickness:       uWallThickness,
			backsplashGap:       uBacksplashGap,
			backsplashThickness: uBacksplashThickness,
			cornerSize:          uCornerSize,
		},
		feasible: uFeasible,
	}}}
}

// uFeasible отклоняет наборы сторон, при которых U складывается сама на себя.
// Условия оставлены ровно как в продукте, включая избыточные пары.
func uFeasible(s geometry.Sides) error {
	a, b, c, d, e, f := s["a"], s["b"], s["c"], s["d"], s["e"], s["f"]
	switch {
	case !(a > c+e):
		return infeasible("a must be greater than c+e (%g > %g)", a, c+e)
	case !(b > f-d):
		return infeasible("b must be greater than f-d (%g > %g)", b, f-d)
	case !(c < a-e):
		return infeasible("c must be less than a-e (%g < %g)", c, a-e)
	case !(d > f-b):
		return infeasible("d must be greater than f-b (%g > %g)", d, f-b)
	case !(e < a-c):
		return infeasible("e must be less than a-c (%g < %g)", e, a-c)
	case !(f > d):
		return infeasible("f must be greater than d (%g > %g)", f, d)
	}
	return nil
}

func infeasible(format string, args ...any) error {
	return apperrors.Validation(apperrors.CodeShapeInfeasible, "infeasible U-shape: "+format, args...)
}
