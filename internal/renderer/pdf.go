package renderer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/jung-kurt/gofpdf"
)

const pointsPerPixel = 0.75

// ToPDF places a rendered PNG on a single page of the same aspect ratio.
func ToPDF(pngBytes []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate image: %w", err)
	}

	width := float64(cfg.Width) * pointsPerPixel
	height := float64(cfg.Height) * pointsPerPixel

	// "P" keeps Wd/Ht as given; "L" would swap them.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("certificate", opts, bytes.NewReader(pngBytes))
	pdf.ImageOptions("certificate", 0, 0, width, height, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPDF converts a rendered certificate to PDF and signs it when signer is
// enabled. A nil signer exports unsigned.
func ExportPDF(pngBytes []byte, certificateID string, signer *PDFSigner) ([]byte, error) {
	out, err := ToPDF(pngBytes)
	if err != nil {
		return nil, err
	}
	return signer.Sign(out, certificateID), nil
}
