package certificate_controller

import (
	"strings"
	"time"

	"github.com/sunthewhat/easy-cert-portal/internal/certificate"
	"github.com/sunthewhat/easy-cert-portal/internal/layout"
	"github.com/sunthewhat/easy-cert-portal/internal/notifier"
	"github.com/sunthewhat/easy-cert-portal/type/payload"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// SenderFactory builds the mail transport for one bulk send
type SenderFactory func(settings shared.MailSettings) notifier.Sender

type Options struct {
	UploadDir string
	MaxRows   int
	PublicURL string
	Location  *time.Location
	Mail      shared.MailSettings
	NewSender SenderFactory
}

// CertificateController handles certificate generation, lookup and mail routes
type CertificateController struct {
	templates layout.ITemplateStore
	generator certificate.IGenerator
	ledger    certificate.ILedger
	notifier  notifier.INotifier
	opts      Options
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(
	templates layout.ITemplateStore,
	generator certificate.IGenerator,
	ledger certificate.ILedger,
	n notifier.INotifier,
	opts Options,
) *CertificateController {
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &CertificateController{
		templates: templates,
		generator: generator,
		ledger:    ledger,
		notifier:  n,
		opts:      opts,
	}
}

func (ctrl *CertificateController) folder() string {
	return ctrl.opts.PublicURL + "/certificates"
}

func (ctrl *CertificateController) portalCertificate(rec model.CertificateRecord) payload.PortalCertificate {
	download := ctrl.folder() + "/" + rec.FileName
	return payload.PortalCertificate{
		CertificateRecord: rec,
		DownloadURL:       download,
		PdfURL:            download + "/pdf",
	}
}
