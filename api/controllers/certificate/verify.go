package certificate_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *CertificateController) Verify(c *fiber.Ctx) error {
	rec, ok := ctrl.ledger.FindByID(c.Params("certificateId"))
	if !ok {
		return response.SendNotFound(c, "Certificate not found")
	}
	return response.SendSuccess(c, "Certificate is valid", ctrl.portalCertificate(rec))
}
