package routes

import (
	"github.com/gofiber/fiber/v2"
	auth_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/auth"
	certificate_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/certificate"
	file_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/file"
	template_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/template"
)

type Controllers struct {
	Auth        *auth_controller.AuthController
	File        *file_controller.FileController
	Template    *template_controller.TemplateController
	Certificate *certificate_controller.CertificateController
}

// Init mounts every route. Admin routes run behind adminGuard; no guards
// leaves them open.
func Init(router fiber.Router, ctrl Controllers, adminGuard ...fiber.Handler) {
	SetupStaticRoutes(router, ctrl)

	api := router.Group("api")

	publicGroup := api.Group("public")
	SetupAuthRoutes(publicGroup, ctrl.Auth)
	SetupPortalRoutes(publicGroup, ctrl.Certificate)

	adminGroup := api.Group("admin")
	for _, guard := range adminGuard {
		adminGroup.Use(guard)
	}
	SetupAdminRoutes(adminGroup, ctrl)
}
