package service

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/webp"

	"layout-planner/internal/planner/shape"
)

// ============================================================
// Material Loader
// ============================================================

// sampleGrid ограничивает число пикселей при усреднении текстуры.
const sampleGrid = 64

// ImageLoader декодирует текстуры материалов из хранилища в заливки фигур.
type ImageLoader struct {
	storage *MaterialStorage
}

func NewImageLoader(storage *MaterialStorage) *ImageLoader {
	return &ImageLoader{storage: storage}
}

// Load декодирует изображение материала и вычисляет средний цвет.
func (l *ImageLoader) Load(ctx context.Context, m shape.Material) (shape.Fill, error) {
	if m.Image == "" {
		return shape.Fill{}, fmt.Errorf("material %q has no image", m.ID)
	}
	if err := ctx.Err(); err != nil {
		return shape.Fill{}, err
	}

	f, err := l.storage.Open(m.Image)
	if err != nil {
		return shape.Fill{}, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return shape.Fill{}, fmt.Errorf("decode %s: %w", m.Image, err)
	}
	avg, err := averageColor(ctx, img)
	if err != nil {
		return shape.Fill{}, err
	}

	bounds := img.Bounds()
	log.Printf("[MATERIAL] loaded %s (%s, %dx%d)", m.Image, format, bounds.Dx(), bounds.Dy())
	return shape.Fill{
		Image:  m.Image,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Color:  avg.Hex(),
	}, nil
}

// averageColor усредняет сетку сэмплов в линейном RGB. Полностью прозрачные
// пиксели пропускаются.
func averageColor(ctx context.Context, img image.Image) (colorful.Color, error) {
	b := img.Bounds()
	if b.Empty() {
		return colorful.Color{}, fmt.Errorf("empty image")
	}
	stepX := max(1, b.Dx()/sampleGrid)
	stepY := max(1, b.Dy()/sampleGrid)

	var r, g, bl float64
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		if err := ctx.Err(); err != nil {
			return colorful.Color{}, err
		}
		for x := b.Min.X; x < b.Max.X; x += stepX {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			lr, lg, lb := c.LinearRgb()
			r += lr
			g += lg
			bl += lb
			n++
		}
	}
	if n == 0 {
		return colorful.Color{}, fmt.Errorf("image is fully transparent")
	}
	fn := float64(n)
	return colorful.LinearRgb(r/fn, g/fn, bl/fn).Clamped(), nil
}
