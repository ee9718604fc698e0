package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	AccountUC *usecase.AccountUseCase
	ContactUC *usecase.ContactUseCase
	CompanyUC *usecase.CompanyUseCase
	NoticeUC  *usecase.NoticeUseCase
	ExportUC  *usecase.ExportUseCase
	Cookie    CookieConfig
	// LoginLimiter opcional; nil desactiva el límite de intentos.
	LoginLimiter *LoginLimiter
}

// Router registra las rutas de la API. La sesión se resuelve para todas las rutas y cada
// caso de uso decide con el resolver de permisos; aquí no hay guardas por ruta.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", SessionMiddleware(deps.AuthUC, deps.Cookie.Name))

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Middleware(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/status", authHandler.Status)

	// Accounts (bootstrap o admin)
	accounts := api.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Delete)

	// Contacts; las exportaciones van antes de /:id
	contacts := api.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC, deps.ExportUC)
	contacts.Get("/", contactHandler.List)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/export.pdf", contactHandler.ExportPDF)
	contacts.Get("/export.xml", contactHandler.ExportXML)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)
	contacts.Delete("/:id", contactHandler.Delete)

	// Companies (sin edición ni borrado)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Notices
	notices := api.Group("/notices")
	noticeHandler := NewNoticeHandler(deps.NoticeUC)
	notices.Get("/", noticeHandler.List)
	notices.Post("/", noticeHandler.Create)
	notices.Put("/:id", noticeHandler.Update)
	notices.Delete("/:id", noticeHandler.Delete)

	// Cualquier otra ruta bajo /api es 404 JSON (no cae en el frontend).
	api.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
