package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/directorio-api/docs"
	"github.com/jhoicas/directorio-api/internal/application/auth"
	"github.com/jhoicas/directorio-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/directorio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/directorio-api/internal/infrastructure/persistence"
	"github.com/jhoicas/directorio-api/internal/infrastructure/xmldir"
	httpRouter "github.com/jhoicas/directorio-api/internal/interfaces/http"
	"github.com/jhoicas/directorio-api/pkg/config"
	"github.com/jhoicas/directorio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer repos.Close()

	hasher := auth.NewBcryptHasher(0)
	authUC := auth.NewAuthUseCase(repos.Accounts, repos.Sessions, hasher, auth.SessionConfig{
		Secret: cfg.Session.Secret,
		Issuer: cfg.Session.Issuer,
		TTL:    cfg.Session.TTL(),
	}, log)
	accountUC := usecase.NewAccountUseCase(repos.Accounts, repos.Sessions, hasher, log)
	contactUC := usecase.NewContactUseCase(repos.Contacts, repos.Companies)
	companyUC := usecase.NewCompanyUseCase(repos.Companies)
	noticeUC := usecase.NewNoticeUseCase(repos.Notices)

	// Exportaciones: PDF imprimible y XML para teléfonos IP
	exportUC := usecase.NewExportUseCase(
		repos.Contacts,
		infrapdf.NewMarotoDirectoryRenderer(),
		xmldir.NewRenderer(0),
		usecase.ExportConfig{Locale: cfg.Export.Locale, Title: cfg.Export.Title},
	)

	limiter := httpRouter.NewLoginLimiter(cfg.Session.LoginRatePerMinute, cfg.Session.LoginRateBurst)
	go limiter.RunPruner(ctx, time.Minute)
	go authUC.RunSweeper(ctx, cfg.Session.SweepInterval)

	var metrics *httpRouter.Metrics
	if cfg.App.MetricsEnabled {
		metrics = httpRouter.NewMetrics()
	}

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		StaticDir:    cfg.HTTP.StaticDir,
		Metrics:      metrics,
		SwaggerSpec:  []byte(docs.SwaggerInfo.ReadDoc()),
	}, log, httpRouter.RouterDeps{
		AuthUC:    authUC,
		AccountUC: accountUC,
		ContactUC: contactUC,
		CompanyUC: companyUC,
		NoticeUC:  noticeUC,
		ExportUC:  exportUC,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		LoginLimiter: limiter,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
