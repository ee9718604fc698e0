package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/dto"
)

// CookieConfig parámetros de la cookie de sesión.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler maneja login, logout y estado de la sesión.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	if h.cookie.Name != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    out.Token,
			Path:     "/",
			Expires:  out.ExpiresAt,
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Idempotente: sin sesión también responde 200.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), tokenFrom(c, h.cookie.Name)); err != nil {
		return err
	}
	if h.cookie.Name != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Status godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.UserContext(), ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
