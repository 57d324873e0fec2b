package engine

import (
	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Square
// ============================================================

const (
	squareDefaultWidth  = 100.0
	squareDefaultHeight = 60.0

	squareLabelGap            = 6.0
	squareLabelWidth          = 64.0
	squareLabelHeight         = 20.0
	squareWallThickness       = 6.0
	squareBacksplashGap       = 4.0
	squareBacksplashThickness = 10.0
	squareCornerSize          = 12.0
)

// Square это движок прямоугольника: две независимые стороны width и height и
// четыре стороны под фичи A (верх), B (право), C (низ), D (лево).
type Square struct {
	base
}

func NewSquare() *Square {
	return &Square{base{layout{
		family:       geometry.Square,
		displayName:  "Rectangle",
		defaults:     geometry.Sides{"width": squareDefaultWidth, "height": squareDefaultHeight},
		featureSides: []string{"A", "B", "C", "D"},
		edges:        map[string]int{"A": 0, "B": 1, "C": 2, "D": 3},
		lengthOf:     map[string]string{"A": "width", "B": "height", "C": "width", "D": "height"},
		cornerSides:  []string{"A", "B", "C", "D"},
		wallClears: map[string][]string{
			"A": {"A", "D"},
			"B": {"B", "A"},
			"C": {"C", "B"},
			"D": {"D", "C"},
		},
		cornerClears: map[string][]string{
			"A": {"A", "B"},
			"B": {"B", "C"},
			"C": {"C", "D"},
			"D": {"D", "A"},
		},
		metrics: metrics{
			labelGap:            squareLabelGap,
			labelWidth:          squareLabelWidth,
			labelHeight:         squareLabelHeight,
			wallThickness:       squareWallThickness,
			backsplashGap:       squareBacksplashGap,
			backsplashThickness: squareBacksplashThickness,
			cornerSize:          squareCornerSize,
		},
	}}}
}

// Resize принимает "width"/"height" или сторону с фичами и меняет размер,
// который она отображает.
func (e *Square) Resize(s *shape.Shape, side string, length float64) (Change, error) {
	if alias, ok := e.lengthOf[side]; ok {
		side = alias
	}
	return e.base.Resize(s, side, length)
}
