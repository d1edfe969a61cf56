package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/certificate"
)

func SetupPortalRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	router.Get("portal/:email", ctrl.GetByEmail)
	router.Get("verify/:certificateId", ctrl.Verify)
}
