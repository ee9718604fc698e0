package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/dto"
	"github.com/jhoicas/directorio-api/internal/domain"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// Códigos de error estables de la API.
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDisabled    = "ACCOUNT_DISABLED"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL"
)

var errInvalidBody = errors.New("cuerpo inválido")

// ErrorHandler traduce los errores devueltos por los handlers a dto.ErrorResponse.
// Solo los 5xx se registran como error.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return respondError(c, log, err)
	}
}

func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Interface("request_id", c.Locals(LocalRequestID)).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthenticated, Message: "autenticación requerida"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeInvalidCredentials, Message: "usuario o contraseña incorrectos"}
	case errors.Is(err, domain.ErrAccountDisabled):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeAccountDisabled, Message: "la cuenta está desactivada"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: "no tiene permisos para esta operación"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: "recurso no encontrado"}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: detail(err, domain.ErrConflict)}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: detail(err, domain.ErrInvalidInput)}
	case errors.Is(err, errInvalidBody):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: errInvalidBody.Error()}
	case errors.As(err, &fe):
		return fiberError(fe)
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
	}
}

// fiberError cubre los errores que genera el propio Fiber (ruta inexistente, método, etc.).
func fiberError(fe *fiber.Error) (int, dto.ErrorResponse) {
	switch fe.Code {
	case fiber.StatusNotFound:
		return fe.Code, dto.ErrorResponse{Code: CodeNotFound, Message: "ruta no encontrada"}
	case fiber.StatusTooManyRequests:
		return fe.Code, dto.ErrorResponse{Code: CodeRateLimited, Message: "demasiados intentos, espere un momento"}
	case fiber.StatusMethodNotAllowed:
		return fe.Code, dto.ErrorResponse{Code: "METHOD_NOT_ALLOWED", Message: fe.Message}
	}
	if fe.Code >= fiber.StatusInternalServerError {
		return fe.Code, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
	}
	return fe.Code, dto.ErrorResponse{Code: CodeValidation, Message: fe.Message}
}

// detail quita el prefijo del sentinel: "entrada inválida: name es requerido" -> "name es requerido".
func detail(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()+": "); i >= 0 {
		return msg[i+len(sentinel.Error())+2:]
	}
	return sentinel.Error()
}
