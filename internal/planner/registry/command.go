package registry

import (
	"layout-planner/internal/planner/engine"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Inbound commands
// ============================================================

// Типы команд протокола. Команды рисования пишутся как "draw:<family>".
const (
	CmdDrawPrefix       = "draw:"
	CmdShapeSize        = "shape-size"
	CmdRotateLeft       = "rotate-left"
	CmdRotateRight      = "rotate-right"
	CmdToggleWall       = "toggle-wall"
	CmdToggleBacksplash = "toggle-backsplash"
	CmdToggleRoundedBox = "toggle-rounded-box"
	CmdDeleteShape      = "delete-shape"
	CmdEnableShapeDrag  = "enable-shape-drag"
	CmdDrag             = "drag"
	CmdPositionReset    = "position-reset"
	CmdZoomIn           = "zoom-in"
	CmdZoomOut          = "zoom-out"
	CmdZoomReset        = "zoom-reset"
	CmdShapeName        = "shape-name"
	CmdSelectShape      = "select-shape"
	CmdSelectAt         = "select-at"
	CmdDeselect         = "deselect"
	CmdPlaceShape       = "place-shape"
	CmdMoveShape        = "move-shape"
	CmdViewport         = "viewport"
)

// RotationStep это угол одной команды rotate-left/rotate-right.
const RotationStep = 90.0

// Command это одно входящее событие протокола. Читаются только поля, нужные
// его типу. Пустой ShapeID адресует активную фигуру.
type Command struct {
	Type    string `json:"type"`
	ShapeID string `json:"shapeId,omitempty"`

	// shape-size
	Side   string   `json:"side,omitempty"`
	Value  float64  `json:"value,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	// toggle-*, enable-shape-drag
	Add    bool `json:"add,omitempty"`
	Enable bool `json:"enable,omitempty"`

	// shape-name
	Name string `json:"name,omitempty"`

	// draw:*, place-shape
	MaterialImage string `json:"materialImage,omitempty"`
	MaterialID    string `json:"materialId,omitempty"`
	MaterialName  string `json:"materialName,omitempty"`
	ProductName   string `json:"productName,omitempty"`

	// drag, move-shape, select-at
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`

	// OnSuccess и OnError вызываются синхронно до возврата из Handle.
	OnSuccess func(Result) `json:"-"`
	OnError   func(error)  `json:"-"`
}

func (c Command) material() shape.Material {
	return shape.Material{
		ID:          c.MaterialID,
		Image:       c.MaterialImage,
		Name:        c.MaterialName,
		ProductName: c.ProductName,
	}
}

// Result передаётся в OnSuccess.
type Result struct {
	ShapeID  string          `json:"shapeId,omitempty"`
	Snapshot *shape.Snapshot `json:"snapshot,omitempty"`
	Changes  []engine.Change `json:"changes,omitempty"`
	View     *View           `json:"view,omitempty"`
}

// ============================================================
// Outbound events
// ============================================================

// EventType это имя исходящего события.
type EventType string

const (
	EventActiveShape     EventType = "active-shape"
	EventShapeSizeChange EventType = "shape-size-change"
	EventShapeDeleted    EventType = "shape-deleted"
	EventShapeFilled     EventType = "shape-filled"
)

// Event отправляется слушателям после изменения состояния.
type Event struct {
	Type     EventType       `json:"type"`
	ShapeID  string          `json:"shapeId"`
	Snapshot *shape.Snapshot `json:"snapshot,omitempty"`
	Changes  []engine.Change `json:"changes,omitempty"`
}

// Listener получает исходящие события синхронно.
type Listener func(Event)
