// Package apperrors описывает ошибки планировщика, общие для движков, реестра
// и HTTP-хендлеров.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ============================================================
// Kinds & Codes
// ============================================================

// Kind группирует ошибки по тому, как на них должен реагировать вызывающий.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindPrecondition Kind = "precondition"
	KindNotFound     Kind = "not_found"
	KindInternal     Kind = "internal"
)

// Code это машиночитаемый код ошибки.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Shape errors
	CodeSideNotPositive  Code = "SIDE_NOT_POSITIVE"
	CodeSideOutOfRange   Code = "SIDE_OUT_OF_RANGE"
	CodeSideUnknown      Code = "SIDE_UNKNOWN"
	CodeSideReadOnly     Code = "SIDE_READ_ONLY"
	CodeShapeInfeasible  Code = "SHAPE_INFEASIBLE"
	CodeNameBlank        Code = "NAME_BLANK"
	CodeAlreadyPlaced    Code = "SHAPE_ALREADY_PLACED"
	CodeShapeDeleted     Code = "SHAPE_DELETED"
	CodeFamilyUnknown    Code = "FAMILY_UNKNOWN"
	CodeFeatureExists    Code = "FEATURE_EXISTS"
	CodeFeatureSide      Code = "FEATURE_SIDE_UNSUPPORTED"
	CodeFeatureKind      Code = "FEATURE_KIND_UNKNOWN"
	CodeDragDisabled     Code = "DRAG_DISABLED"
	CodeNoActiveShape    Code = "NO_ACTIVE_SHAPE"
	CodeCommandUnknown   Code = "COMMAND_UNKNOWN"
	CodePayloadInvalid   Code = "PAYLOAD_INVALID"
	CodeShapeNotFound    Code = "SHAPE_NOT_FOUND"
	CodeSessionNotFound  Code = "SESSION_NOT_FOUND"
	CodeMaterialNotFound Code = "MATERIAL_NOT_FOUND"
)

// ============================================================
// Error
// ============================================================

// Error это классифицированная ошибка планировщика.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is сравнивает kind и code, чтобы errors.Is работал как с сентинелами.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

func newf(kind Kind, code Code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation сообщает об отклонённом значении; состояние не меняется.
func Validation(code Code, format string, args ...any) *Error {
	return newf(KindValidation, code, format, args...)
}

// Precondition сообщает об операции, недопустимой в текущем состоянии.
func Precondition(code Code, format string, args ...any) *Error {
	return newf(KindPrecondition, code, format, args...)
}

// NotFound сообщает об отсутствующем идентификаторе.
func NotFound(code Code, format string, args ...any) *Error {
	return newf(KindNotFound, code, format, args...)
}

// Internal оборачивает неожиданные сбои, например перехваченные паники.
func Internal(format string, args ...any) *Error {
	return newf(KindInternal, CodeUnknown, format, args...)
}

// KindOf возвращает kind ошибки или KindInternal для неклассифицированных.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf возвращает код ошибки или CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HTTPStatus сопоставляет ошибке HTTP-статус ответа.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindPrecondition:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
