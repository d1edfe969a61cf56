package template_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *TemplateController) GetAll(c *fiber.Ctx) error {
	if err := ctrl.store.Discover(c.UserContext()); err != nil {
		slog.Error("Template GetAll discovery failed", "error", err)
		return response.SendInternalError(c)
	}

	templates := ctrl.store.List()
	result := payload.TemplateListResult{
		Templates: make(map[string]payload.TemplateListItem, len(templates)),
		Count:     len(templates),
	}
	for _, t := range templates {
		result.Templates[t.ID] = payload.TemplateListItem{
			ID:       t.ID,
			Name:     t.Name,
			Image:    t.Image,
			ImageURL: ctrl.imageURL(t.ID),
			Width:    t.Width,
			Height:   t.Height,
			Fields:   t.Fields,
			QR:       t.QR,
		}
	}

	slog.Info("Template GetAll successful", "count", result.Count)
	return response.SendSuccess(c, "Templates fetched", result)
}
