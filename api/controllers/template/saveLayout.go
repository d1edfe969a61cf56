package template_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *TemplateController) SaveLayout(c *fiber.Ctx) error {
	body := new(payload.SaveLayoutPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	saved, err := ctrl.store.SaveLayout(c.UserContext(), body.TemplateID, body.Fields, body.QR)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownTemplate) {
			return response.SendNotFound(c, "Template not found")
		}
		slog.Error("Template SaveLayout failed", "error", err, "template_id", body.TemplateID)
		return response.SendInternalError(c)
	}

	slog.Info("Template SaveLayout successful", "template_id", saved.ID)
	return response.SendSuccess(c, "Layout saved", saved)
}
