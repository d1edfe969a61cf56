package certificate_controller

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	body := new(payload.GenerateCertificatePayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	// filePath is the name returned by the upload route, resolved inside the
	// upload directory only.
	name := filepath.Base(body.FilePath)
	if err := storage.ValidateName(name); err != nil {
		return response.SendFailed(c, "Invalid file path")
	}

	sheet, err := spreadsheet.ExtractFile(filepath.Join(ctrl.opts.UploadDir, name), ctrl.opts.MaxRows)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return response.SendFailed(c, "Uploaded file not found")
		case errors.Is(err, spreadsheet.ErrTooManyRows):
			return response.SendFailed(c, fmt.Sprintf("Spreadsheet exceeds the maximum of %d rows", ctrl.opts.MaxRows))
		case errors.Is(err, spreadsheet.ErrUnsupportedFormat), errors.Is(err, spreadsheet.ErrNoHeader):
			return response.SendFailed(c, err.Error())
		}
		slog.Error("Certificate Generate failed to read spreadsheet", "error", err, "file", name)
		return response.SendInternalError(c)
	}

	tmpl, ok := ctrl.templates.Get(body.TemplateID)
	if !ok {
		return response.SendNotFound(c, "Template not found")
	}

	background, err := ctrl.templates.Image(body.TemplateID)
	if err != nil && !errors.Is(err, layout.ErrImageMissing) {
		slog.Error("Certificate Generate failed to read template image", "error", err, "template_id", tmpl.ID)
		return response.SendInternalError(c)
	}

	result, err := ctrl.generator.Generate(c.UserContext(), certificate.Input{
		Sheet:      sheet,
		Template:   tmpl,
		Mapping:    body.ColumnMapping,
		Background: background,
	})
	if err != nil {
		if certificate.IsPrecondition(err) {
			slog.Warn("Certificate Generate precondition failed", "error", err, "template_id", tmpl.ID)
			return response.SendFailed(c, err.Error())
		}
		slog.Error("Certificate Generate failed", "error", err, "template_id", tmpl.ID)
		return response.SendError(c, "Failed to generate certificates")
	}

	slog.Info("Certificate Generate successful",
		"template_id", tmpl.ID,
		"batch_id", result.BatchID,
		"count", len(result.Records),
		"skipped", result.Skipped)
	return response.SendSuccess(c, "Certificates generated", payload.GenerateCertificateResult{
		Files: payload.GeneratedFiles{
			Certificates: result.FileNames(),
			Folder:       ctrl.folder(),
		},
		CertificatesCount: len(result.Records),
		SkippedCount:      result.Skipped,
		EmailColumn:       result.EmailColumn,
		BatchID:           result.BatchID,
	})
}
