package file_controller

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/internal/renderer"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func sendLoadError(c *fiber.Ctx, name string, err error) error {
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
		return response.SendNotFound(c, "Certificate not found")
	}
	slog.Error("Certificate download failed", "error", err, "file", name)
	return response.SendInternalError(c)
}

// Download serves the rendered PNG.
func (ctrl *FileController) Download(c *fiber.Ctx) error {
	name := c.Params("fileName")
	data, err := ctrl.blob.Get(c.UserContext(), name)
	if err != nil {
		return sendLoadError(c, name, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// DownloadPDF serves the certificate as a single-page PDF, signed when a
// signing key is configured.
func (ctrl *FileController) DownloadPDF(c *fiber.Ctx) error {
	name := c.Params("fileName")
	data, err := ctrl.blob.Get(c.UserContext(), name)
	if err != nil {
		return sendLoadError(c, name, err)
	}

	certificateID := strings.TrimSuffix(name, ".png")
	if rec, ok := ctrl.ledger.FindByFileName(name); ok {
		certificateID = rec.ID
	}

	pdf, err := renderer.ExportPDF(data, certificateID, ctrl.signer)
	if err != nil {
		slog.Error("Certificate PDF export failed", "error", err, "file", name)
		return response.SendError(c, "Failed to generate PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.pdf"`, strings.TrimSuffix(name, ".png")))
	return c.Send(pdf)
}
