package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *CertificateController) GetAll(c *fiber.Ctx) error {
	certificates := ctrl.ledger.All()

	slog.Info("Certificate GetAll successful", "count", len(certificates))
	return response.SendSuccess(c, "Certificate fetched", certificates)
}
