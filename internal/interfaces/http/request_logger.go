package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/pkg/logger"
)

// RequestLogger registra una línea por petición: método, ruta, estado, latencia, request id y cuenta.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev = ev.Str("method", c.Method()).
			Str("route", routePath(c)).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Interface("request_id", c.Locals(LocalRequestID))
		if actor := ActorFrom(c); actor != nil {
			ev = ev.Int64("account_id", actor.AccountID)
		}
		ev.Msg("request")
		return nil
	}
}

// routePath devuelve el patrón de la ruta (/api/contacts/:id) para no disparar la cardinalidad.
func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return c.Path()
}
