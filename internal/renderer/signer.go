package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
)

// PDFSigner adds a certification signature to exported PDFs. A signer built
// without key material is disabled and returns PDFs unchanged.
type PDFSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	enabled     bool
}

func NewPDFSigner(certPath, keyPath string) (*PDFSigner, error) {
	if certPath == "" && keyPath == "" {
		slog.Info("PDF signing disabled in configuration")
		return &PDFSigner{}, nil
	}
	if certPath == "" || keyPath == "" {
		return nil, fmt.Errorf("signing requires both a certificate and a key path")
	}

	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", certPath, err)
	}
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", certPath)
	}
	certificate, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", keyPath, err)
	}
	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", keyPath)
	}
	privateKey, err := parseRSAKey(keyBlock.Bytes)
	if err != nil {
		return nil, err
	}

	slog.Info("PDF signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &PDFSigner{certificate: certificate, privateKey: privateKey, enabled: true}, nil
}

func parseRSAKey(der []byte) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not RSA format")
	}
	return rsaKey, nil
}

func (s *PDFSigner) IsEnabled() bool {
	return s != nil && s.enabled
}

// Sign returns a signed copy of pdfBytes. Signing failures are logged and the
// unsigned PDF is returned, so a download never fails because of the signer.
func (s *PDFSigner) Sign(pdfBytes []byte, certificateID string) []byte {
	if !s.IsEnabled() || len(pdfBytes) == 0 {
		return pdfBytes
	}

	signed, err := s.sign(pdfBytes, certificateID)
	if err != nil {
		slog.Warn("PDF signing failed, returning unsigned PDF", "error", err, "certificate_id", certificateID)
		return pdfBytes
	}
	return signed
}

func (s *PDFSigner) sign(pdfBytes []byte, certificateID string) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during PDF signing: %v", r)
		}
	}()

	input := bytes.NewReader(pdfBytes)
	reader, err := digitorus_pdf.NewReader(input, int64(len(pdfBytes)))
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     "Certificate Portal",
				Location: "Certificate Portal",
				Reason:   fmt.Sprintf("Issued certificate %s", certificateID),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	var output bytes.Buffer
	if _, err := input.Seek(0, 0); err != nil {
		return nil, err
	}
	if err := sign.Sign(input, &output, reader, int64(len(pdfBytes)), signData); err != nil {
		return nil, fmt.Errorf("failed to sign PDF: %w", err)
	}
	if output.Len() == 0 {
		return nil, fmt.Errorf("signing produced empty output")
	}
	return output.Bytes(), nil
}
