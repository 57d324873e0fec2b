package registry

import (
	"math"

	"layout-planner/internal/planner/geometry"
)

// ============================================================
// View state
// ============================================================

// ZoomConfig ограничивает уровень зума.
type ZoomConfig struct {
	Step float64
	Min  float64
	Max  float64
}

// DefaultZoom используется, если конфигурация не задана.
var DefaultZoom = ZoomConfig{Step: 1.2, Min: 0.2, Max: 5}

// View это глобальное состояние вида, накладываемое на трансформацию каждой
// фигуры.
type View struct {
	Scale       float64        `json:"scale"`
	Offset      geometry.Point `json:"offset"`
	DragEnabled bool           `json:"dragEnabled"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
}

// Center возвращает центр вьюпорта в экранных координатах.
func (v View) Center() geometry.Point {
	return geometry.Pt(v.Width/2, v.Height/2)
}

// ToWorld переводит экранную точку в координаты модели.
func (v View) ToWorld(p geometry.Point) geometry.Point {
	return p.Sub(v.Offset).Scale(1 / v.Scale)
}

// ToScreen переводит точку модели на экран.
func (v View) ToScreen(p geometry.Point) geometry.Point {
	return p.Scale(v.Scale).Add(v.Offset)
}

// zoomTo масштабирует вокруг центра вьюпорта, чтобы точка модели под центром
// не сдвигалась: offset' = c - (c - offset) * (new/old).
func (v *View) zoomTo(scale float64) {
	if scale == v.Scale {
		return
	}
	c := v.Center()
	ratio := scale / v.Scale
	v.Offset = c.Sub(c.Sub(v.Offset).Scale(ratio))
	v.Scale = scale
}

func (v *View) zoomIn(cfg ZoomConfig) {
	v.zoomTo(math.Min(v.Scale*cfg.Step, cfg.Max))
}

func (v *View) zoomOut(cfg ZoomConfig) {
	v.zoomTo(math.Max(v.Scale/cfg.Step, cfg.Min))
}

// zoomReset сбрасывает зум, не трогая смещение.
func (v *View) zoomReset() {
	v.Scale = 1
}

// positionReset сбрасывает смещение, не трогая зум.
func (v *View) positionReset() {
	v.Offset = geometry.Point{}
}
