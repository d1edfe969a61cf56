package payload

import "github.com/sunthewhat/easy-cert-portal/type/shared/model"

type GenerateCertificatePayload struct {
	FilePath      string              `json:"filePath" validate:"required"`
	TemplateID    string              `json:"templateId" validate:"required"`
	ColumnMapping model.ColumnMapping `json:"columnMapping" validate:"required,min=1"`
}

type GeneratedFiles struct {
	Certificates []string `json:"certificates"`
	Folder       string   `json:"folder"`
}

type GenerateCertificateResult struct {
	Files             GeneratedFiles `json:"files"`
	CertificatesCount int            `json:"certificatesCount"`
	SkippedCount      int            `json:"skippedCount"`
	EmailColumn       string         `json:"emailColumn"`
	BatchID           string         `json:"batchId"`
}

type PortalCertificate struct {
	model.CertificateRecord
	DownloadURL string `json:"downloadUrl"`
	PdfURL      string `json:"pdfUrl"`
}

type PortalDateGroup struct {
	Date         string              `json:"date"`
	Certificates []PortalCertificate `json:"certificates"`
}

type PortalLookupResult struct {
	Email  string            `json:"email"`
	Total  int               `json:"total"`
	Groups []PortalDateGroup `json:"groups"`
}
