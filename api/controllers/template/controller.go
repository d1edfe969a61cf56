package template_controller

import (
	"strings"

	"github.com/sunthewhat/easy-cert-portal/internal/layout"
)

// TemplateController serves the template catalog and layout editor routes
type TemplateController struct {
	store     layout.ITemplateStore
	publicURL string
}

func NewTemplateController(store layout.ITemplateStore, publicURL string) *TemplateController {
	return &TemplateController{
		store:     store,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (ctrl *TemplateController) imageURL(id string) string {
	return ctrl.publicURL + "/templates/" + id + "/image"
}
