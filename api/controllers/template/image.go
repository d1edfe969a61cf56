package template_controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *TemplateController) Image(c *fiber.Ctx) error {
	id := c.Params("templateId")

	data, err := ctrl.store.Image(id)
	if err != nil {
		if errors.Is(err, layout.ErrUnknownTemplate) || errors.Is(err, layout.ErrImageMissing) {
			return response.SendNotFound(c, "Template image not found")
		}
		slog.Error("Template Image read failed", "error", err, "template_id", id)
		return response.SendInternalError(c)
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}
