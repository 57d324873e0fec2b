// Package render рисует фигуры планировщика в SVG. Canvas служит Renderer
// для реестра: кэширует фрагмент на каждую фигуру и собирает документ по
// запросу.
package render

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/registry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Canvas
// ============================================================

type Canvas struct {
	mu        sync.Mutex
	view      registry.View
	order     []string
	fragments map[string]string
}

func NewCanvas() *Canvas {
	return &Canvas{
		view:      registry.View{Scale: 1, Width: 1280, Height: 800},
		fragments: make(map[string]string),
	}
}

// Sync перерисовывает все фигуры под заданным видом.
func (c *Canvas) Sync(view registry.View, shapes []shape.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view = view
	c.order = c.order[:0]
	for _, s := range shapes {
		c.fragments[s.ID] = renderShape(s)
		c.order = append(c.order, s.ID)
	}
}

// Release удаляет кэшированный фрагмент удалённой фигуры.
func (c *Canvas) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.fragments, id)
	c.order = removeID(c.order, id)
}

// Render собирает SVG-документ текущего кадра.
func (c *Canvas) Render() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := c.view
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		formatFloat(v.Width), formatFloat(v.Height), formatFloat(v.Width), formatFloat(v.Height)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(`  <g id="view" transform="matrix(%s 0 0 %s %s %s)">`,
		formatFloat(v.Scale), formatFloat(v.Scale), formatFloat(v.Offset.X), formatFloat(v.Offset.Y)))
	builder.WriteString("\n")

	for _, id := range c.order {
		frag, ok := c.fragments[id]
		if !ok {
			continue
		}
		builder.WriteString(frag)
	}

	builder.WriteString("  </g>\n")
	builder.WriteString(`</svg>`)
	return builder.String()
}

// Len возвращает число закэшированных фигур.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fragments)
}

// ============================================================
// Shape fragments
// ============================================================

const (
	wallColor       = "#4d4d4d"
	backsplashColor = "#9e9e9e"
	cornerColor     = "#d62728"
	labelColor      = "#222"
)

func renderShape(s shape.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`    <g id="%s" data-family="%s" data-state="%s">`, html.EscapeString(s.ID), s.Family, s.State))
	b.WriteString("\n")

	style := bodyStyle(s)
	if s.Outline.IsCircle() {
		b.WriteString(fmt.Sprintf(`      <circle cx="%s" cy="%s" r="%s" %s />`,
			formatFloat(s.Outline.Center.X), formatFloat(s.Outline.Center.Y), formatFloat(s.Outline.Radius), style))
	} else {
		b.WriteString(fmt.Sprintf(`      <path d="%s" %s />`, pathData(s.Outline.Vertices), style))
	}
	b.WriteString("\n")

	for _, a := range s.Anchors {
		if a.Wall != nil {
			writeStrip(&b, "wall", a.Side, *a.Wall, wallColor)
		}
		if a.Backsplash != nil {
			writeStrip(&b, "backsplash", a.Side, *a.Backsplash, backsplashColor)
		}
		if a.Corner != nil && s.Features[a.Side].RoundedCorner {
			corners := a.Corner.Corners()
			b.WriteString(fmt.Sprintf(`      <path class="corner" data-side="%s" d="%s" fill="none" stroke="%s" />`,
				html.EscapeString(a.Side), pathData(corners[:]), cornerColor))
			b.WriteString("\n")
		}
		writeLabel(&b, a)
	}

	if s.Name != "" {
		center := s.Outline.Center
		if !s.Outline.IsCircle() {
			center = s.Outline.Bounds().Center()
		}
		b.WriteString(fmt.Sprintf(`      <text class="name" x="%s" y="%s" text-anchor="middle" fill="%s">%s</text>`,
			formatFloat(center.X), formatFloat(center.Y), labelColor, html.EscapeString(s.Name)))
		b.WriteString("\n")
	}

	b.WriteString("    </g>\n")
	return b.String()
}

func writeStrip(b *strings.Builder, class, side string, r geometry.Rect, color string) {
	corners := r.Corners()
	b.WriteString(fmt.Sprintf(`      <path class="%s" data-side="%s" d="%s" fill="%s" />`,
		class, html.EscapeString(side), pathData(corners[:]), color))
	b.WriteString("\n")
}

func writeLabel(b *strings.Builder, a shape.Anchor) {
	c := a.Region.Center
	b.WriteString(fmt.Sprintf(`      <text class="label" data-side="%s" x="%s" y="%s" text-anchor="middle" dominant-baseline="middle" transform="rotate(%s %s %s)" fill="%s">%s</text>`,
		html.EscapeString(a.Side), formatFloat(c.X), formatFloat(c.Y),
		formatFloat(labelAngle(a.Region.Angle)), formatFloat(c.X), formatFloat(c.Y),
		labelColor, html.EscapeString(a.Label)))
	b.WriteString("\n")
}

// labelAngle держит текст подписи вертикально.
func labelAngle(deg float64) float64 {
	deg = geometry.NormalizeDegrees(deg)
	if deg > 90 && deg < 270 {
		deg -= 180
	}
	return deg
}

// ============================================================
// Colours
// ============================================================

var familyHue = map[geometry.Family]float64{
	geometry.Square: 210,
	geometry.L:      150,
	geometry.U:      35,
	geometry.Circle: 280,
}

// bodyStyle рисует заготовки полупрозрачным оттенком семейства, а размещённые
// фигуры цветом материала.
func bodyStyle(s shape.Snapshot) string {
	hue := familyHue[s.Family]
	if s.State == shape.Placeholder {
		tint := colorful.Hsv(hue, 0.35, 0.95)
		edge := colorful.Hsv(hue, 0.6, 0.6)
		return fmt.Sprintf(`fill="%s" fill-opacity="0.5" stroke="%s" stroke-dasharray="6 4"`, tint.Hex(), edge.Hex())
	}

	fill := colorful.Hsv(hue, 0.1, 0.85).Hex()
	if s.Fill != nil && s.Fill.Color != "" {
		if c, err := colorful.Hex(s.Fill.Color); err == nil {
			fill = c.Hex()
		}
	}
	return fmt.Sprintf(`fill="%s" stroke="#333"`, fill)
}

// ============================================================
// Formatting helpers
// ============================================================

func pathData(points []geometry.Point) string {
	if len(points) == 0 {
		return ""
	}
	var path strings.Builder
	path.WriteString("M ")
	path.WriteString(formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(p))
	}
	path.WriteString(" Z")
	return path.String()
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*1000)/1000, 'f', -1, 64)
}

func formatPoint(p geometry.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
