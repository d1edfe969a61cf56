package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	auth_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/auth"
	certificate_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/certificate"
	file_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/file"
	template_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/template"
	"github.com/sunthewhat/easy-cert-portal/api/handler"
	"github.com/sunthewhat/easy-cert-portal/api/middleware"
	"github.com/sunthewhat/easy-cert-portal/api/routes"
	"github.com/sunthewhat/easy-cert-portal/common/config"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/internal/notifier"
	"github.com/sunthewhat/easy-cert-portal/internal/renderer"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
)

// Dependencies are the components the HTTP layer is built on. Config must
// have its defaults applied (see config.Parse).
type Dependencies struct {
	Config    *shared.Config
	Templates layout.ITemplateStore
	Generator certificate.IGenerator
	Ledger    certificate.ILedger
	Notifier  notifier.INotifier
	Blob      storage.Blob
	Signer    *renderer.PDFSigner
	Location  *time.Location
	// NewSender defaults to the gomail SMTP sender.
	NewSender certificate_controller.SenderFactory

	// DisableAccessLog turns off the request logger, for tests.
	DisableAccessLog bool
}

func NewApp(deps Dependencies) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:       "easy cert portal",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     32 * 1024 * 1024,
	})

	if !deps.DisableAccessLog {
		app.Use(logger.New())
	}
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(derefAll(cfg.Cors)))

	newSender := deps.NewSender
	if newSender == nil {
		newSender = func(settings shared.MailSettings) notifier.Sender {
			return util.NewSMTPSender(settings)
		}
	}

	controllers := routes.Controllers{
		Auth:     auth_controller.NewAuthController(*cfg.Auth.JWTSecret, *cfg.Auth.AdminPasswordHash, util.DefaultTokenTTL),
		File:     file_controller.NewFileController(deps.Blob, deps.Ledger, deps.Signer, *cfg.Upload.Dir, *cfg.Upload.MaxRows),
		Template: template_controller.NewTemplateController(deps.Templates, *cfg.PublicURL),
		Certificate: certificate_controller.NewCertificateController(deps.Templates, deps.Generator, deps.Ledger, deps.Notifier, certificate_controller.Options{
			UploadDir: *cfg.Upload.Dir,
			MaxRows:   *cfg.Upload.MaxRows,
			PublicURL: *cfg.PublicURL,
			Location:  deps.Location,
			Mail:      config.MailSettings(cfg),
			NewSender: newSender,
		}),
	}

	var guards []fiber.Handler
	if config.AuthEnabled(cfg) {
		guards = append(guards, middleware.AdminJwt(*cfg.Auth.JWTSecret), middleware.RequireAdmin())
	} else {
		slog.Warn("auth.jwt_secret is not set, admin routes are unauthenticated")
	}
	routes.Init(app, controllers, guards...)

	app.Use(handler.HandleNotFound)

	return app
}

func InitFiber(app *fiber.App, port string) error {
	slog.Info("Starting server", "port", port)
	if err := app.Listen(port); err != nil {
		slog.Error("Failed to start server", "error", err)
		return err
	}
	return nil
}

func derefAll(values []*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil && *v != "" {
			out = append(out, *v)
		}
	}
	return out
}
