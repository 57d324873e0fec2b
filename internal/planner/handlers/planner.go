package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"layout-planner/internal/common/apperrors"
	"layout-planner/internal/planner/registry"
	"layout-planner/internal/planner/repository"
	"layout-planner/internal/planner/service"
)

// ============================================================
// Planner Handler
// ============================================================

type PlannerHandler struct {
	store *service.Store
	repo  *repository.Repository
}

func NewPlannerHandler(store *service.Store, repo *repository.Repository) *PlannerHandler {
	return &PlannerHandler{store: store, repo: repo}
}

type commandResponse struct {
	OK     bool             `json:"ok"`
	Error  *errorPayload    `json:"error,omitempty"`
	Result *registry.Result `json:"result,omitempty"`
	Events []registry.Event `json:"events"`
}

// CreateSession открывает новую сессию планировщика.
func (h *PlannerHandler) CreateSession(c fiber.Ctx) error {
	s := h.store.Issue()
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":   s.ID,
		"view": s.View(),
	})
}

func (h *PlannerHandler) CloseSession(c fiber.Ctx) error {
	if err := h.store.Close(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Command выполняет одну команду протокола в сессии и возвращает порождённые
// события.
func (h *PlannerHandler) Command(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}

	if len(c.Body()) == 0 {
		return fail(c, apperrors.Validation(apperrors.CodePayloadInvalid, "empty body"))
	}
	var cmd registry.Command
	if err := json.Unmarshal(c.Body(), &cmd); err != nil {
		return fail(c, apperrors.Validation(apperrors.CodePayloadInvalid, "invalid json"))
	}
	if cmd.Type == "" {
		return fail(c, apperrors.Validation(apperrors.CodePayloadInvalid, "command type required"))
	}
	if err := h.resolveMaterial(c, &cmd); err != nil {
		return fail(c, err)
	}

	var result *registry.Result
	cmd.OnSuccess = func(r registry.Result) { result = &r }
	events, err := s.Exec(cmd)

	resp := commandResponse{OK: err == nil, Result: result, Events: events}
	if resp.Events == nil {
		resp.Events = []registry.Event{}
	}
	status := http.StatusOK
	if err != nil {
		resp.Error = payloadOf(err)
		status = apperrors.HTTPStatus(err)
	}
	return c.Status(status).JSON(resp)
}

// session находит сессию :id и помечает ею лог запроса.
func (h *PlannerHandler) session(c fiber.Ctx) (*service.Session, error) {
	s, err := h.store.Resolve(c.Params("id"))
	if err != nil {
		return nil, err
	}
	c.Locals("session", s.ID)
	return s, nil
}

// resolveMaterial дополняет данные из каталога, когда команда draw или place
// указывает только материал.
func (h *PlannerHandler) resolveMaterial(c fiber.Ctx, cmd *registry.Command) error {
	if h.repo == nil || cmd.MaterialID == "" || cmd.MaterialImage != "" {
		return nil
	}
	if !strings.HasPrefix(cmd.Type, registry.CmdDrawPrefix) && cmd.Type != registry.CmdPlaceShape {
		return nil
	}
	m, err := h.repo.GetByID(c.Context(), cmd.MaterialID)
	if err != nil {
		return err
	}
	cmd.MaterialImage = m.Image
	if cmd.MaterialName == "" {
		cmd.MaterialName = m.Name
	}
	if cmd.ProductName == "" {
		cmd.ProductName = m.ProductName
	}
	log.Printf("[PLANNER] resolved material %s -> %s", m.ID, m.Image)
	return nil
}

// Events возвращает события с последней команды, например заливки, пришедшие
// в фоне.
func (h *PlannerHandler) Events(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	events := s.Drain()
	if events == nil {
		events = []registry.Event{}
	}
	return c.JSON(fiber.Map{"events": events})
}

func (h *PlannerHandler) ListShapes(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"shapes": s.Shapes()})
}

func (h *PlannerHandler) GetShape(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	snap, err := s.Shape(c.Params("shapeId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(snap)
}

func (h *PlannerHandler) GetView(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(s.View())
}

// GetCard отдаёт карточку активной фигуры.
func (h *PlannerHandler) GetCard(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	card, ok := s.Card()
	if !ok {
		return fail(c, apperrors.NotFound(apperrors.CodeNoActiveShape, "no active shape"))
	}
	return c.JSON(card)
}

func (h *PlannerHandler) GetLayoutSVG(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(s.SVG())
}
