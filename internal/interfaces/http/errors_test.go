package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/directorio-api/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthenticated, fiber.StatusUnauthorized, CodeUnauthenticated},
		{fmt.Errorf("contacto: %w", domain.ErrForbidden), fiber.StatusForbidden, CodeForbidden},
		{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
		{fmt.Errorf("%w: username ya existe", domain.ErrConflict), fiber.StatusConflict, CodeConflict},
		{fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput), fiber.StatusBadRequest, CodeValidation},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, CodeInvalidCredentials},
		{domain.ErrAccountDisabled, fiber.StatusUnauthorized, CodeAccountDisabled},
		{fiber.ErrTooManyRequests, fiber.StatusTooManyRequests, CodeRateLimited},
		{errors.New("pgx: conexión rechazada"), fiber.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		status, body := mapError(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, body.Code, tt.err.Error())
	}
}

func TestMapError_NoFiltraDetalleInterno(t *testing.T) {
	_, body := mapError(errors.New("password=secreto host=db"))
	assert.NotContains(t, body.Message, "secreto")
}

func TestMapError_MensajeDeValidacion(t *testing.T) {
	_, body := mapError(fmt.Errorf("crear: %w", fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)))
	assert.Equal(t, "name es requerido", body.Message)
}

func TestEtagMatches(t *testing.T) {
	assert.True(t, etagMatches(`"abc"`, `"abc"`))
	assert.True(t, etagMatches(`"x", W/"abc"`, `"abc"`))
	assert.True(t, etagMatches(`*`, `"abc"`))
	assert.False(t, etagMatches(``, `"abc"`))
	assert.False(t, etagMatches(`"abd"`, `"abc"`))
}

func TestLoginLimiter_PorIP(t *testing.T) {
	l := NewLoginLimiter(1, 1)
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "cada IP tiene su propio cupo")

	l.ttl = 0
	l.Prune()
	assert.Empty(t, l.buckets)
}
