package file_controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	file_controller "github.com/sunthewhat/easy-cert-portal/api/controllers/file"
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

func setupController(t *testing.T, maxRows int) (*file_controller.FileController, *storage.LocalBlob, string) {
	t.Helper()
	blob, err := storage.NewLocalBlob(t.TempDir())
	require.NoError(t, err)

	ledger := certificate.NewMockLedger()
	ledger.FindByFileNameFunc = func(name string) (model.CertificateRecord, bool) {
		return model.CertificateRecord{ID: "template1-1-0", FileName: name}, name == "cert.png"
	}

	uploadDir := t.TempDir()
	return file_controller.NewFileController(blob, ledger, nil, uploadDir, maxRows), blob, uploadDir
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestFileController_Upload(t *testing.T) {
	csv := "Name,Email\nAna,ana@x.com\nBo,bo@x.com\nCy,cy@x.com\nDi,di@x.com\nEd,ed@x.com\nFay,fay@x.com\n"

	tests := []struct {
		name           string
		field          string
		filename       string
		content        string
		maxRows        int
		wantStatusCode int
		checkResponse  func(t *testing.T, body map[string]any, uploadDir string)
	}{
		{
			name:           "csv upload previews five rows",
			field:          "file",
			filename:       "Recipients.CSV",
			content:        csv,
			maxRows:        100,
			wantStatusCode: fiber.StatusOK,
			checkResponse: func(t *testing.T, body map[string]any, uploadDir string) {
				data := body["data"].(map[string]any)
				assert.Equal(t, float64(6), data["totalRows"])
				assert.Equal(t, []any{"Name", "Email"}, data["columns"])
				rows := data["data"].([]any)
				require.Len(t, rows, 5)
				assert.Equal(t, "Ana", rows[0].(map[string]any)["Name"])

				filePath := data["filePath"].(string)
				assert.True(t, strings.HasSuffix(filePath, ".csv"))
				_, err := os.Stat(uploadDir + "/" + filePath)
				assert.NoError(t, err, "upload should be kept for generation")
			},
		},
		{
			name:           "too many rows",
			field:          "file",
			filename:       "rows.csv",
			content:        csv,
			maxRows:        3,
			wantStatusCode: fiber.StatusBadRequest,
			checkResponse: func(t *testing.T, body map[string]any, uploadDir string) {
				assert.Equal(t, "Spreadsheet exceeds the maximum of 3 rows", body["message"])
				entries, err := os.ReadDir(uploadDir)
				require.NoError(t, err)
				assert.Empty(t, entries, "rejected uploads are removed")
			},
		},
		{
			name:           "unsupported extension",
			field:          "file",
			filename:       "rows.txt",
			content:        csv,
			maxRows:        100,
			wantStatusCode: fiber.StatusBadRequest,
		},
		{
			name:           "missing file",
			maxRows:        100,
			wantStatusCode: fiber.StatusBadRequest,
			checkResponse: func(t *testing.T, body map[string]any, uploadDir string) {
				assert.Equal(t, "File is required", body["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, _, uploadDir := setupController(t, tt.maxRows)
			app := fiber.New()
			app.Post("/upload", fc.Upload)

			body, contentType := multipartBody(t, tt.field, tt.filename, tt.content)
			req := httptest.NewRequest("POST", "/upload", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatusCode, resp.StatusCode)

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var out map[string]any
			require.NoError(t, json.Unmarshal(raw, &out))
			if tt.checkResponse != nil {
				tt.checkResponse(t, out, uploadDir)
			}
		})
	}
}

func TestFileController_Download(t *testing.T) {
	fc, blob, _ := setupController(t, 100)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	require.NoError(t, blob.Put(context.Background(), "cert.png", img.Bytes(), "image/png"))

	app := fiber.New()
	app.Get("/certificates/:fileName/pdf", fc.DownloadPDF)
	app.Get("/certificates/:fileName", fc.Download)

	t.Run("png", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/certificates/cert.png", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, img.Bytes(), body)
	})

	t.Run("pdf", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/certificates/cert.png/pdf", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="cert.pdf"`)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})

	t.Run("missing", func(t *testing.T) {
		for _, path := range []string{"/certificates/none.png", "/certificates/none.png/pdf"} {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		}
	})
}
