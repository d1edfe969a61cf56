package file_controller

import (
	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/renderer"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
)

// PreviewRows is how many leading rows the upload response echoes back.
const PreviewRows = 5

// FileController handles spreadsheet uploads and certificate downloads
type FileController struct {
	blob      storage.Blob
	ledger    certificate.ILedger
	signer    *renderer.PDFSigner
	uploadDir string
	maxRows   int
}

func NewFileController(blob storage.Blob, ledger certificate.ILedger, signer *renderer.PDFSigner, uploadDir string, maxRows int) *FileController {
	return &FileController{
		blob:      blob,
		ledger:    ledger,
		signer:    signer,
		uploadDir: uploadDir,
		maxRows:   maxRows,
	}
}
