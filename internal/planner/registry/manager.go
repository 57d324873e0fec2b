// Package registry это менеджер событий планировщика: владеет живыми
// фигурами, переводит входящие команды протокола в вызовы движков семейств,
// рассылает исходящие события и хранит состояние вида (зум, панорамирование,
// разрешение перетаскивания).
//
// Manager не потокобезопасен. Хост сериализует команды в одном логическом
// потоке и возвращается в него через Scheduler для асинхронной работы.
package registry

import (
	"context"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/engine"
	"layout-planner/internal/planner/geometry"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Collaborators
// ============================================================

// Renderer рисует фигуры. Он получает каждое изменение состояния и фигуры,
// ресурсы которых можно освободить.
type Renderer interface {
	Sync(view View, shapes []shape.Snapshot)
	Release(id string)
}

// Overlay показывает карточку атрибутов активной фигуры.
type Overlay interface {
	Present(snap shape.Snapshot)
	Dismiss(id string)
}

// MaterialLoader загружает заливку материала размещённой фигуры.
type MaterialLoader interface {
	Load(ctx context.Context, m shape.Material) (shape.Fill, error)
}

// Scheduler выполняет fn в потоке команд хоста.
type Scheduler func(fn func())

// drawMargin это место появления новых фигур, в экранных единицах от левого
// верхнего угла вьюпорта.
var drawMargin = geometry.Pt(40, 40)

const defaultLoadTimeout = 30 * time.Second

// ============================================================
// Manager
// ============================================================

// Manager владеет всеми живыми фигурами.
type Manager struct {
	engines map[geometry.Family]engine.Engine
	shapes  map[string]*shape.Shape
	order   []string
	active  string
	view    View
	zoom    ZoomConfig

	renderer    Renderer
	overlay     Overlay
	loader      MaterialLoader
	schedule    Scheduler
	loadTimeout time.Duration
	listeners   []Listener
	newID       func() string
}

// Option настраивает Manager.
type Option func(*Manager)

func WithRenderer(r Renderer) Option    { return func(m *Manager) { m.renderer = r } }
func WithOverlay(o Overlay) Option      { return func(m *Manager) { m.overlay = o } }
func WithZoom(z ZoomConfig) Option      { return func(m *Manager) { m.zoom = z } }
func WithListener(l Listener) Option    { return func(m *Manager) { m.listeners = append(m.listeners, l) } }
func WithIDs(next func() string) Option { return func(m *Manager) { m.newID = next } }
func WithScheduler(s Scheduler) Option  { return func(m *Manager) { m.schedule = s } }

// WithLoadTimeout ограничивает время загрузки материала.
func WithLoadTimeout(d time.Duration) Option {
	return func(m *Manager) { m.loadTimeout = d }
}

// WithMaterialLoader включает асинхронную заливку размещённых фигур. Нужен
// также WithScheduler; без планировщика загрузчик игнорируется.
func WithMaterialLoader(l MaterialLoader) Option {
	return func(m *Manager) { m.loader = l }
}

// WithViewport задаёт начальный размер вьюпорта в экранных единицах.
func WithViewport(width, height float64) Option {
	return func(m *Manager) {
		m.view.Width = width
		m.view.Height = height
	}
}

func New(opts ...Option) *Manager {
	m := &Manager{
		engines:     engine.All(),
		shapes:      make(map[string]*shape.Shape),
		view:        View{Scale: 1, DragEnabled: true, Width: 1280, Height: 800},
		zoom:        DefaultZoom,
		loadTimeout: defaultLoadTimeout,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.loader != nil && m.schedule == nil {
		log.Printf("[PLANNER] material loader set without a scheduler, fills disabled")
		m.loader = nil
	}
	return m
}

// ============================================================
// Queries
// ============================================================

// View возвращает текущее состояние вида.
func (m *Manager) View() View {
	return m.view
}

// Active возвращает id активной фигуры, если она есть.
func (m *Manager) Active() (string, bool) {
	return m.active, m.active != ""
}

// Len возвращает число живых фигур.
func (m *Manager) Len() int {
	return len(m.order)
}

// Snapshot возвращает состояние одной фигуры.
func (m *Manager) Snapshot(id string) (shape.Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return shape.Snapshot{}, err
	}
	return m.engines[s.Family].Snapshot(s), nil
}

// Snapshots возвращает все живые фигуры в порядке рисования.
func (m *Manager) Snapshots() []shape.Snapshot {
	out := make([]shape.Snapshot, 0, len(m.order))
	for _, id := range m.order {
		s := m.shapes[id]
		out = append(out, m.engines[s.Family].Snapshot(s))
	}
	return out
}

// ShapeAt возвращает верхнюю фигуру под экранной точкой.
func (m *Manager) ShapeAt(p geometry.Point) (string, bool) {
	world := m.view.ToWorld(p)
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.shapes[m.order[i]]
		if s.WorldOutline().Contains(world) {
			return s.ID, true
		}
	}
	return "", false
}

// ============================================================
// Command boundary
// ============================================================

// Handle выполняет одну команду до конца. Результат сообщается через колбэки
// команды и возвращаемую ошибку; паника за пределы вызова не выходит.
func (m *Manager) Handle(cmd Command) (err error) {
	var res Result
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Internal("command %s failed: %v", cmd.Type, r)
		}
		if err != nil {
			log.Printf("[PLANNER] %s rejected: %v", cmd.Type, err)
			if cmd.OnError != nil {
				report(cmd.Type, func() { cmd.OnError(err) })
			}
			return
		}
		if cmd.OnSuccess != nil {
			report(cmd.Type, func() { cmd.OnSuccess(res) })
		}
	}()

	res, err = m.dispatch(cmd)
	if err == nil {
		m.sync()
	}
	return err
}

// report вызывает колбэк хоста; его паника логируется и гасится.
func report(cmdType string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[PLANNER] %s callback panicked: %v", cmdType, r)
		}
	}()
	fn()
}

func (m *Manager) dispatch(cmd Command) (Result, error) {
	if family, ok := strings.CutPrefix(cmd.Type, CmdDrawPrefix); ok {
		return m.draw(family, cmd)
	}

	switch cmd.Type {
	case CmdShapeSize:
		return m.resize(cmd)
	case CmdRotateLeft:
		return m.rotate(cmd, -RotationStep)
	case CmdRotateRight:
		return m.rotate(cmd, RotationStep)
	case CmdToggleWall:
		return m.toggle(cmd, shape.Wall)
	case CmdToggleBacksplash:
		return m.toggle(cmd, shape.Backsplash)
	case CmdToggleRoundedBox:
		return m.toggle(cmd, shape.RoundedCorner)
	case CmdDeleteShape:
		return m.delete(cmd)
	case CmdShapeName:
		return m.rename(cmd)
	case CmdSelectShape:
		return m.selectShape(cmd)
	case CmdSelectAt:
		return m.selectAt(cmd)
	case CmdDeselect:
		m.deselect()
		return Result{}, nil
	case CmdPlaceShape:
		return m.place(cmd)
	case CmdMoveShape:
		return m.move(cmd)
	case CmdEnableShapeDrag:
		m.view.DragEnabled = cmd.Enable
	case CmdDrag:
		offset := m.view.Offset.Add(geometry.Pt(cmd.DX, cmd.DY))
		if !offset.InRange() {
			return Result{}, apperrors.Validation(apperrors.CodePayloadInvalid, "drag out of range: %g,%g", cmd.DX, cmd.DY)
		}
		m.view.Offset = offset
	case CmdPositionReset:
		m.view.positionReset()
	case CmdZoomIn:
		m.view.zoomIn(m.zoom)
	case CmdZoomOut:
		m.view.zoomOut(m.zoom)
	case CmdZoomReset:
		m.view.zoomReset()
	case CmdViewport:
		if err := m.resizeViewport(cmd); err != nil {
			return Result{}, err
		}
	default:
		return Result{}, apperrors.Validation(apperrors.CodeCommandUnknown, "unknown command %q", cmd.Type)
	}

	view := m.view
	return Result{View: &view}, nil
}

// ============================================================
// Shape commands
// ============================================================

func (m *Manager) draw(name string, cmd Command) (Result, error) {
	family, err := geometry.ParseFamily(name)
	if err != nil {
		return Result{}, err
	}
	e := m.engines[family]

	id := m.newID()
	if _, taken := m.shapes[id]; taken {
		return Result{}, apperrors.Internal("shape id %s is already in use", id)
	}
	s, err := e.Draw(id, m.view.ToWorld(drawMargin), cmd.material())
	if err != nil {
		return Result{}, err
	}

	m.shapes[id] = s
	m.order = append(m.order, id)
	log.Printf("[PLANNER] drew %s shape %s", family, id)

	snap := m.activate(s)
	return Result{ShapeID: id, Snapshot: &snap}, nil
}

func (m *Manager) resize(cmd Command) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	e := m.engines[s.Family]

	type request struct {
		side  string
		value float64
	}
	var reqs []request
	switch {
	case cmd.Side != "":
		reqs = append(reqs, request{cmd.Side, cmd.Value})
	case s.Family == geometry.Square && (cmd.Width != nil || cmd.Height != nil):
		if cmd.Width != nil {
			reqs = append(reqs, request{"width", *cmd.Width})
		}
		if cmd.Height != nil {
			reqs = append(reqs, request{"height", *cmd.Height})
		}
	default:
		return Result{}, apperrors.Validation(apperrors.CodePayloadInvalid, "shape-size needs a side")
	}

	// ошибка во втором измерении откатывает первое
	before := s.Sides()
	var changes []engine.Change
	for _, r := range reqs {
		c, err := e.Resize(s, r.side, r.value)
		if err != nil {
			if len(changes) > 0 {
				_ = s.Replace(before)
			}
			m.revertOverlay(s)
			return Result{}, err
		}
		changes = append(changes, c)
	}

	snap := e.Snapshot(s)
	if s.ID == m.active {
		m.emit(Event{Type: EventShapeSizeChange, ShapeID: s.ID, Changes: changes})
		m.present(snap)
	}
	return Result{ShapeID: s.ID, Snapshot: &snap, Changes: changes}, nil
}

func (m *Manager) rotate(cmd Command, delta float64) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	e := m.engines[s.Family]
	e.Rotate(s, delta)

	snap := e.Snapshot(s)
	if s.ID == m.active {
		m.present(snap)
	}
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

func (m *Manager) toggle(cmd Command, kind shape.Feature) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	if cmd.Side == "" {
		return Result{}, apperrors.Validation(apperrors.CodePayloadInvalid, "toggle needs a side")
	}
	e := m.engines[s.Family]

	if cmd.Add {
		err = e.AddFeature(s, kind, cmd.Side)
	} else {
		err = e.RemoveFeature(s, kind, cmd.Side)
	}
	if err != nil {
		return Result{}, err
	}

	snap := m.activate(s)
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

func (m *Manager) delete(cmd Command) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	m.engines[s.Family].Delete(s)

	delete(m.shapes, s.ID)
	m.order = slices.DeleteFunc(m.order, func(id string) bool { return id == s.ID })
	if m.active == s.ID {
		m.active = ""
	}
	if m.renderer != nil {
		m.renderer.Release(s.ID)
	}
	if m.overlay != nil {
		m.overlay.Dismiss(s.ID)
	}
	log.Printf("[PLANNER] deleted shape %s", s.ID)

	m.emit(Event{Type: EventShapeDeleted, ShapeID: s.ID})
	return Result{ShapeID: s.ID}, nil
}

func (m *Manager) rename(cmd Command) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	if err := s.Rename(cmd.Name); err != nil {
		m.revertOverlay(s)
		return Result{}, err
	}
	snap := m.engines[s.Family].Snapshot(s)
	if s.ID == m.active {
		m.present(snap)
	}
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

func (m *Manager) selectShape(cmd Command) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	snap := m.activate(s)
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

func (m *Manager) selectAt(cmd Command) (Result, error) {
	id, ok := m.ShapeAt(geometry.Pt(cmd.X, cmd.Y))
	if !ok {
		m.deselect()
		return Result{}, nil
	}
	snap := m.activate(m.shapes[id])
	return Result{ShapeID: id, Snapshot: &snap}, nil
}

func (m *Manager) deselect() {
	if m.active == "" {
		return
	}
	prev := m.active
	m.active = ""
	if m.overlay != nil {
		m.overlay.Dismiss(prev)
	}
}

func (m *Manager) move(cmd Command) (Result, error) {
	if !m.view.DragEnabled {
		return Result{}, apperrors.Precondition(apperrors.CodeDragDisabled, "shape dragging is disabled")
	}
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	to := geometry.Pt(cmd.X, cmd.Y)
	if !to.InRange() {
		return Result{}, apperrors.Validation(apperrors.CodePayloadInvalid, "position out of range: %g,%g", cmd.X, cmd.Y)
	}
	s.MoveTo(to)
	snap := m.engines[s.Family].Snapshot(s)
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

func (m *Manager) resizeViewport(cmd Command) error {
	if cmd.Width == nil || cmd.Height == nil || !(*cmd.Width > 0) || !(*cmd.Height > 0) ||
		!geometry.Pt(*cmd.Width, *cmd.Height).InRange() {
		return apperrors.Validation(apperrors.CodePayloadInvalid, "viewport needs a positive width and height")
	}
	m.view.Width = *cmd.Width
	m.view.Height = *cmd.Height
	return nil
}

// ============================================================
// Placement & asynchronous fill
// ============================================================

func (m *Manager) place(cmd Command) (Result, error) {
	s, err := m.resolve(cmd.ShapeID)
	if err != nil {
		return Result{}, err
	}
	if err := s.Place(cmd.material()); err != nil {
		return Result{}, err
	}
	log.Printf("[PLANNER] placed shape %s with material %q", s.ID, s.Material.ID)

	if m.loader != nil {
		m.loadFill(s.ID, s.Material)
	}
	snap := m.activate(s)
	return Result{ShapeID: s.ID, Snapshot: &snap}, nil
}

// loadFill загружает материал в фоне. Завершение возвращается в поток хоста
// через планировщик; при ошибке фигура остаётся без заливки.
func (m *Manager) loadFill(id string, mat shape.Material) {
	loader, schedule, timeout := m.loader, m.schedule, m.loadTimeout
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		fill, err := loader.Load(ctx, mat)
		schedule(func() { m.applyFill(id, fill, err) })
	}()
}

func (m *Manager) applyFill(id string, fill shape.Fill, err error) {
	if err != nil {
		log.Printf("[MATERIAL] fill for shape %s failed: %v", id, err)
		return
	}
	s, ok := m.shapes[id]
	if !ok {
		return
	}
	s.Fill = &fill
	m.sync()

	snap := m.engines[s.Family].Snapshot(s)
	m.emit(Event{Type: EventShapeFilled, ShapeID: id, Snapshot: &snap})
}

// ============================================================
// Helpers
// ============================================================

// resolve находит адресованную фигуру, по умолчанию активную.
func (m *Manager) resolve(id string) (*shape.Shape, error) {
	if id == "" {
		if m.active == "" {
			return nil, apperrors.Precondition(apperrors.CodeNoActiveShape, "no active shape")
		}
		id = m.active
	}
	return m.lookup(id)
}

func (m *Manager) lookup(id string) (*shape.Shape, error) {
	s, ok := m.shapes[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.CodeShapeNotFound, "shape %q not found", id)
	}
	return s, nil
}

// activate делает s единственной активной фигурой и отправляет одно событие
// active-shape.
func (m *Manager) activate(s *shape.Shape) shape.Snapshot {
	if m.active != "" && m.active != s.ID && m.overlay != nil {
		m.overlay.Dismiss(m.active)
	}
	m.active = s.ID
	snap := m.engines[s.Family].Snapshot(s)
	m.emit(Event{Type: EventActiveShape, ShapeID: s.ID, Snapshot: &snap})
	m.present(snap)
	return snap
}

func (m *Manager) present(snap shape.Snapshot) {
	if m.overlay != nil {
		m.overlay.Present(snap)
	}
}

// revertOverlay заново показывает неизменённое состояние, чтобы
// отредактированные подписи вернулись.
func (m *Manager) revertOverlay(s *shape.Shape) {
	if s.ID == m.active {
		m.present(m.engines[s.Family].Snapshot(s))
	}
}

func (m *Manager) emit(ev Event) {
	for _, l := range m.listeners {
		l(ev)
	}
}

func (m *Manager) sync() {
	if m.renderer != nil {
		m.renderer.Sync(m.view, m.Snapshots())
	}
}
