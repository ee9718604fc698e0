package http

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/directorio-api/pkg/ids"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

// AppConfig opciones del servidor HTTP.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  string
	// StaticDir sirve el frontend con fallback a index.html; vacío lo desactiva.
	StaticDir string
	// Metrics nil desactiva /metrics.
	Metrics *Metrics
	// SwaggerSpec documento OpenAPI servido en /docs; vacío lo desactiva.
	SwaggerSpec []byte
}

// NewApp construye la aplicación Fiber con el middleware común y las rutas de la API.
func NewApp(cfg AppConfig, log *logger.Logger, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		IdleTimeout:           60 * time.Second,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator:  ids.New,
		ContextKey: LocalRequestID,
	}))
	app.Use(RequestLogger(log.Component("http")))
	app.Use(recover.New())
	if cfg.Metrics != nil {
		app.Use(cfg.Metrics.Middleware())
		app.Get("/metrics", cfg.Metrics.Handler())
	}
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: cfg.CORSOrigins != "*",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization, If-None-Match",
			ExposeHeaders:    "ETag, Content-Disposition",
		}))
	}

	// Swagger UI: http://localhost:<port>/docs
	if len(cfg.SwaggerSpec) > 0 {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "swagger.json",
			FileContent: cfg.SwaggerSpec,
			Path:        "docs",
			Title:       "Directorio API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)

	if cfg.StaticDir != "" {
		serveSPA(app, cfg.StaticDir)
	}
	return app
}

// serveSPA sirve los archivos estáticos y devuelve index.html para las rutas del cliente.
func serveSPA(app *fiber.App, dir string) {
	app.Static("/", dir)
	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/api/") {
			return fiber.ErrNotFound
		}
		if _, err := os.Stat(index); err != nil {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
}
