package engine

import (
	"layout-planner/internal/planner/geometry"
)

// ============================================================
// L-Shape
// ============================================================

const (
	lDefaultA = 60.0
	lDefaultB = 50.0
	lDefaultC = 90.0
	lDefaultD = 60.0

	lLabelGap            = 6.0
	lLabelWidth          = 56.0
	lLabelHeight         = 20.0
	lWallThickness       = 6.0
	lBacksplashGap       = 4.0
	lBacksplashThickness = 10.0
	lCornerSize          = 12.0
)

// LShape строит ортогональный L-контур из шести вершин. Стороны a (верх), b
// (внутренняя вертикаль), c (внутренняя горизонталь) и d (торец) независимы;
// нижнее и левое рёбра выводятся, поэтому проверяется только положительность.
// Внутренний угол i между b и c только отображается.
type LShape struct {
	base
}

func NewLShape() *LShape {
	return &LShape{base{layout{
		family:       geometry.L,
		displayName:  "L-Shape",
		defaults:     geometry.Sides{"a": lDefaultA, "b": lDefaultB, "c": lDefaultC, "d": lDefaultD},
		featureSides: []string{"a", "b", "c", "d"},
		edges:        map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		// b заканчивается в вогнутом углу, его нельзя скруглить
		cornerSides: []string{"a", "c", "d"},
		wallClears: map[string][]string{
			"a": {"a"},
			"b": {"a"},
			"c": {"c"},
			"d": {"d", "c"},
		},
		cornerClears: map[string][]string{
			"a": {"a", "b"},
			"c": {"c", "d"},
			"d": {"d"},
		},
		angles: map[string]int{"i": 2},
		metrics: metrics{
			labelGap:            lLabelGap,
			labelWidth:          lLabelWidth,
			labelHeight:         lLabelHeight,
			wallThickness:       lWallThickness,
			backsplashGap:       lBacksplashGap,
			backsplashThickness: lBacksplashThickness,
			cornerSize:          lCornerSize,
		},
	}}}
}
