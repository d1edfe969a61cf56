package certificate_controller

import (
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

// GetByEmail is the recipient portal lookup. Matches are grouped by the day
// they were generated.
func (ctrl *CertificateController) GetByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return response.SendFailed(c, "Invalid email")
	}

	records := ctrl.ledger.FindByEmail(email)
	groups := certificate.GroupByDate(records, ctrl.opts.Location)

	result := payload.PortalLookupResult{
		Email:  email,
		Total:  len(records),
		Groups: make([]payload.PortalDateGroup, len(groups)),
	}
	for i, g := range groups {
		certs := make([]payload.PortalCertificate, len(g.Certificates))
		for j, rec := range g.Certificates {
			certs[j] = ctrl.portalCertificate(rec)
		}
		result.Groups[i] = payload.PortalDateGroup{Date: g.Date, Certificates: certs}
	}

	slog.Info("Certificate portal lookup", "email", email, "count", result.Total)
	return response.SendSuccess(c, "Certificates fetched", result)
}
