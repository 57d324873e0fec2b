package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"layout-planner/internal/common/apperrors"
)

// ============================================================
// Error responses
// ============================================================

type errorPayload struct {
	Kind    apperrors.Kind `json:"kind"`
	Code    apperrors.Code `json:"code,omitempty"`
	Message string         `json:"message"`
}

func payloadOf(err error) *errorPayload {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return &errorPayload{Kind: appErr.Kind, Code: appErr.Code, Message: appErr.Message}
	}
	log.Printf("[PLANNER] unexpected error: %v", err)
	return &errorPayload{Kind: apperrors.KindInternal, Message: "internal error"}
}

// fail отвечает ошибкой со статусом её kind.
func fail(c fiber.Ctx, err error) error {
	return c.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"error": payloadOf(err)})
}
