package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/domain/authz"
)

// Locals keys en Fiber.
const (
	LocalActor     = "actor"
	LocalRequestID = "requestid"
)

// Authenticator resuelve un token de sesión en un Actor. (nil, nil) = anónimo.
// Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*authz.Actor, error)
}

// SessionMiddleware lee el token (Bearer primero, luego la cookie) y guarda el Actor en c.Locals.
// Nunca rechaza la petición: un token inválido, vencido o revocado deja al llamante como anónimo
// y son los casos de uso quienes deciden.
func SessionMiddleware(authn Authenticator, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c, cookieName)
		if token == "" {
			return c.Next()
		}
		actor, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}
		if actor != nil {
			c.Locals(LocalActor, actor)
		}
		return c.Next()
	}
}

// tokenFrom extrae el token del header Authorization o de la cookie de sesión.
func tokenFrom(c *fiber.Ctx, cookieName string) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	return c.Cookies(cookieName)
}

// ActorFrom devuelve el Actor de la petición o nil si es anónima.
func ActorFrom(c *fiber.Ctx) *authz.Actor {
	a, _ := c.Locals(LocalActor).(*authz.Actor)
	return a
}
