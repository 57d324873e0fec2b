package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/registry"
	"layout-planner/internal/planner/render"
	"layout-planner/internal/planner/shape"
)

// ============================================================
// Session
// ============================================================

// Session это один холст планировщика. Его мьютекс это единственный поток
// команд, который ожидает реестр; асинхронные завершения возвращаются через
// него.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	manager *registry.Manager
	canvas  *render.Canvas
	card    *card
	outbox  []registry.Event
}

// Options настраивает новые сессии.
type Options struct {
	Zoom           registry.ZoomConfig
	ViewportWidth  float64
	ViewportHeight float64
	Loader         registry.MaterialLoader
	LoadTimeout    time.Duration
}

func newSession(id string, opts Options) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		canvas:    render.NewCanvas(),
		card:      &card{},
	}

	regOpts := []registry.Option{
		registry.WithRenderer(s.canvas),
		registry.WithOverlay(s.card),
		registry.WithListener(s.record),
		registry.WithScheduler(s.schedule),
	}
	if opts.Zoom.Step > 0 {
		regOpts = append(regOpts, registry.WithZoom(opts.Zoom))
	}
	if opts.ViewportWidth > 0 && opts.ViewportHeight > 0 {
		regOpts = append(regOpts, registry.WithViewport(opts.ViewportWidth, opts.ViewportHeight))
	}
	if opts.Loader != nil {
		regOpts = append(regOpts, registry.WithMaterialLoader(opts.Loader))
	}
	if opts.LoadTimeout > 0 {
		regOpts = append(regOpts, registry.WithLoadTimeout(opts.LoadTimeout))
	}
	s.manager = registry.New(regOpts...)
	return s
}

// Exec выполняет одну команду и возвращает все события с предыдущего вызова,
// включая заливки, пришедшие между ними.
func (s *Session) Exec(cmd registry.Command) ([]registry.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.manager.Handle(cmd)
	events := s.outbox
	s.outbox = nil
	return events, err
}

// Drain возвращает накопленные события без выполнения команды.
func (s *Session) Drain() []registry.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.outbox
	s.outbox = nil
	return events
}

func (s *Session) Shapes() []shape.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Snapshots()
}

func (s *Session) Shape(id string) (shape.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.Snapshot(id)
}

func (s *Session) View() registry.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manager.View()
}

// Card возвращает показанную карточку атрибутов, если она есть.
func (s *Session) Card() (shape.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.card.current == nil {
		return shape.Snapshot{}, false
	}
	return *s.card.current, true
}

// SVG рендерит текущий кадр.
func (s *Session) SVG() string {
	return s.canvas.Render()
}

func (s *Session) record(ev registry.Event) {
	s.outbox = append(s.outbox, ev)
}

func (s *Session) schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// card это оверлей безголовой сессии: запоминает, что было бы на экране.
type card struct {
	current *shape.Snapshot
}

func (c *card) Present(snap shape.Snapshot) {
	c.current = &snap
}

func (c *card) Dismiss(id string) {
	if c.current != nil && c.current.ID == id {
		c.current = nil
	}
}

// ============================================================
// Session Store
// ============================================================

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
}

func NewStore(opts Options) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// Issue открывает новую сессию.
func (st *Store) Issue() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := newSession(uuid.NewString(), st.opts)
	st.sessions[s.ID] = s
	log.Printf("[SESSION] opened %s", s.ID)
	return s
}

func (st *Store) Resolve(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, apperrors.NotFound(apperrors.CodeSessionNotFound, "session %q not found", id)
	}
	return s, nil
}

func (st *Store) Close(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[id]; !ok {
		return apperrors.NotFound(apperrors.CodeSessionNotFound, "session %q not found", id)
	}
	delete(st.sessions, id)
	log.Printf("[SESSION] closed %s", id)
	return nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
