package file_controller

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/response"
)

func (ctrl *FileController) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.SendFailed(c, "File is required")
	}

	if !spreadsheet.Supported(file.Filename) {
		return response.SendFailed(c, "Only .xlsx and .csv files are supported")
	}

	if err := os.MkdirAll(ctrl.uploadDir, 0o755); err != nil {
		slog.Error("File Upload failed to create upload directory", "error", err, "dir", ctrl.uploadDir)
		return response.SendInternalError(c)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	path := filepath.Join(ctrl.uploadDir, name)
	if err := c.SaveFile(file, path); err != nil {
		slog.Error("File Upload failed to store file", "error", err, "filename", file.Filename)
		return response.SendInternalError(c)
	}

	sheet, err := spreadsheet.ExtractFile(path, ctrl.maxRows)
	if err != nil {
		os.Remove(path)
		switch {
		case errors.Is(err, spreadsheet.ErrTooManyRows):
			return response.SendFailed(c, fmt.Sprintf("Spreadsheet exceeds the maximum of %d rows", ctrl.maxRows))
		case errors.Is(err, spreadsheet.ErrNoHeader), errors.Is(err, spreadsheet.ErrUnsupportedFormat):
			return response.SendFailed(c, err.Error())
		}
		slog.Error("File Upload failed to read spreadsheet", "error", err, "filename", file.Filename)
		return response.SendFailed(c, "Failed to read spreadsheet")
	}

	preview := sheet.Preview(PreviewRows)
	data := make([]map[string]string, len(preview))
	for i, row := range preview {
		data[i] = row
	}

	slog.Info("File Upload successful", "filename", file.Filename, "stored_as", name, "rows", len(sheet.Rows))
	return response.SendSuccess(c, "File uploaded", payload.UploadResult{
		Data:      data,
		Columns:   sheet.Columns,
		TotalRows: len(sheet.Rows),
		FilePath:  name,
	})
}
