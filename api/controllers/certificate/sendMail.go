package certificate_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/notifier"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
)

// mailSettings overlays the non-empty request fields on the configured SMTP
// settings.
func mailSettings(base shared.MailSettings, override *payload.EmailConfig) shared.MailSettings {
	if override == nil {
		return base
	}
	if override.Host != "" {
		base.Host = override.Host
	}
	if override.Port != 0 {
		base.Port = override.Port
	}
	if override.User != "" {
		base.User = override.User
	}
	if override.Pass != "" {
		base.Pass = override.Pass
	}
	if override.From != "" {
		base.From = override.From
	}
	return base
}

func (ctrl *CertificateController) SendMail(c *fiber.Ctx) error {
	body := new(payload.BulkMailPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	settings := mailSettings(ctrl.opts.Mail, body.EmailConfig)
	if settings.Host == "" || settings.Port == 0 {
		return response.SendFailed(c, "SMTP host is not configured")
	}

	sender := ctrl.opts.NewSender(settings)
	summary, err := ctrl.notifier.NotifyAll(c.UserContext(), sender, ctrl.ledger.All(), body.Subject, body.Message)
	if err != nil {
		if errors.Is(err, notifier.ErrInvalidTemplate) {
			return response.SendFailed(c, err.Error())
		}
		slog.Error("Certificate SendMail failed", "error", err)
		return response.SendInternalError(c)
	}

	return response.SendSuccess(c, "Bulk mail finished", fiber.Map{
		"results":      summary.Results,
		"sentCount":    summary.Sent,
		"failedCount":  summary.Failed,
		"skippedCount": summary.Skipped,
	})
}
