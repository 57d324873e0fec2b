package shape

import (
	"layout-planner/internal/planner/geometry"
)

// ============================================================
// Anchors
// ============================================================

// AnchorKind сообщает презентеру, что размещает якорь.
type AnchorKind string

const (
	SideAnchor  AnchorKind = "side"
	AngleAnchor AnchorKind = "angle"
)

// Anchor это область рядом со стороной для её подписи и необязательных полос
// стены и фартука и маркера скругления.
type Anchor struct {
	Kind       AnchorKind     `json:"kind"`
	Side       string         `json:"side"`
	Label      string         `json:"label"`
	Value      float64        `json:"value"`
	Region     geometry.Rect  `json:"region"`
	Wall       *geometry.Rect `json:"wall,omitempty"`
	Backsplash *geometry.Rect `json:"backsplash,omitempty"`
	Corner     *geometry.Rect `json:"corner,omitempty"`
}

// SideFeatures это состояние фич одной стороны.
type SideFeatures struct {
	Wall                   bool `json:"wall"`
	Backsplash             bool `json:"backsplash"`
	RoundedCorner          bool `json:"roundedCorner"`
	RoundedCornerAvailable bool `json:"roundedCornerAvailable"`
}

// ============================================================
// Snapshot
// ============================================================

// Snapshot это read-only копия фигуры для наблюдателей.
type Snapshot struct {
	ID          string                  `json:"id"`
	Family      geometry.Family         `json:"family"`
	Name        string                  `json:"name"`
	State       PlacementState          `json:"state"`
	Material    Material                `json:"material"`
	Fill        *Fill                   `json:"fill,omitempty"`
	Sides       geometry.Sides          `json:"sides"`
	ReadOnly    []string                `json:"readOnly,omitempty"`
	Features    map[string]SideFeatures `json:"features"`
	Transform   geometry.Transform      `json:"transform"`
	BoundingBox geometry.Box            `json:"boundingBox"`
	Outline     geometry.Outline        `json:"outline"`
	Area        float64                 `json:"area"`
	Anchors     []Anchor                `json:"anchors,omitempty"`
}

// BaseSnapshot копирует состояние модели. Доступность фич и якоря зависят от
// семейства и заполняются движками.
func (s *Shape) BaseSnapshot() Snapshot {
	sides := s.Sides()
	for _, name := range geometry.ReadOnlySides(s.Family) {
		sides[name] = geometry.InteriorAngle
	}
	var fill *Fill
	if s.Fill != nil {
		f := *s.Fill
		fill = &f
	}
	world := s.WorldOutline()
	area, _ := geometry.Area(world)
	return Snapshot{
		ID:          s.ID,
		Family:      s.Family,
		Name:        s.Name,
		State:       s.State,
		Material:    s.Material,
		Fill:        fill,
		Sides:       sides,
		ReadOnly:    geometry.ReadOnlySides(s.Family),
		Features:    map[string]SideFeatures{},
		Transform:   s.Transform,
		BoundingBox: s.BoundingBox(),
		Outline:     world,
		Area:        area,
	}
}
