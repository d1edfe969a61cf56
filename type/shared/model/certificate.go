package model

import "time"

// CertificateRecord is the ledger entry written for one rendered certificate.
type CertificateRecord struct {
	ID           string            `json:"certificateId"`
	BatchID      string            `json:"batchId"`
	Email        string            `json:"email"`
	FileName     string            `json:"fileName"`
	Fields       map[string]string `json:"fields"`
	GeneratedAt  time.Time         `json:"generatedAt"`
	TemplateID   string            `json:"templateId"`
	TemplateFile string            `json:"templateFile"`
	RowIndex     int               `json:"rowIndex"`
}
