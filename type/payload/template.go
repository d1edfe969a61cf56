package payload

import "github.com/sunthewhat/easy-cert-portal/type/shared/model"

type SaveLayoutPayload struct {
	TemplateID string                    `json:"templateId" validate:"required"`
	Fields     map[string]model.Position `json:"fields" validate:"required,dive"`
	QR         *model.QRPlacement        `json:"qr"`
}

type TemplateListItem struct {
	ID       string                    `json:"id"`
	Name     string                    `json:"name"`
	Image    string                    `json:"image"`
	ImageURL string                    `json:"imageUrl"`
	Width    int                       `json:"width"`
	Height   int                       `json:"height"`
	Fields   map[string]model.Position `json:"fields"`
	QR       *model.QRPlacement        `json:"qr,omitempty"`
}

type TemplateListResult struct {
	Templates map[string]TemplateListItem `json:"templates"`
	Count     int                         `json:"count"`
}
