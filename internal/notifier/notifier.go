// Package notifier mails every generated certificate to its recipient.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/osteele/liquid"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

var ErrInvalidTemplate = errors.New("invalid mail template")

type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

type Result struct {
	Email         string `json:"email"`
	CertificateID string `json:"certificateId"`
	Status        Status `json:"status"`
	Error         string `json:"error,omitempty"`
}

type Summary struct {
	Results []Result
	Sent    int
	Failed  int
	// Skipped counts records whose certificate file was missing. They have
	// no entry in Results.
	Skipped int
}

// PDFFunc converts a rendered certificate to the PDF attached instead of the
// PNG.
type PDFFunc func(png []byte, certificateID string) ([]byte, error)

type Notifier struct {
	mu        sync.Mutex
	blob      storage.Blob
	engine    *liquid.Engine
	publicURL string
	toPDF     PDFFunc
}

type Option func(*Notifier)

func WithPDFAttachments(fn PDFFunc) Option {
	return func(n *Notifier) { n.toPDF = fn }
}

func New(blob storage.Blob, publicURL string, opts ...Option) *Notifier {
	n := &Notifier{
		blob:      blob,
		engine:    liquid.NewEngine(),
		publicURL: strings.TrimRight(publicURL, "/"),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyAll sends one mail per record, in order. A failed send is recorded and
// the run continues. Only one run is in flight at a time.
func (n *Notifier) NotifyAll(ctx context.Context, sender Sender, records []model.CertificateRecord, subject, body string) (*Summary, error) {
	subjectTpl, err := n.engine.ParseString(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject: %s", ErrInvalidTemplate, err.Error())
	}
	bodyTpl, err := n.engine.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: message: %s", ErrInvalidTemplate, err.Error())
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	summary := &Summary{Results: []Result{}}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		data, err := n.blob.Get(ctx, rec.FileName)
		if errors.Is(err, storage.ErrNotFound) {
			summary.Skipped++
			slog.Warn("Certificate file missing, recipient skipped", "file", rec.FileName, "email", rec.Email)
			continue
		}

		result := Result{Email: rec.Email, CertificateID: rec.ID, Status: StatusSent}
		if err == nil {
			err = n.send(ctx, sender, rec, data, subjectTpl, bodyTpl)
		}
		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			summary.Failed++
			slog.Warn("Failed to send certificate mail", "email", rec.Email, "certificate_id", rec.ID, "error", err)
		} else {
			summary.Sent++
		}
		summary.Results = append(summary.Results, result)
	}

	slog.Info("Bulk mail finished",
		"sent", summary.Sent,
		"failed", summary.Failed,
		"skipped", summary.Skipped)
	return summary, nil
}

func (n *Notifier) send(ctx context.Context, sender Sender, rec model.CertificateRecord, png []byte, subjectTpl, bodyTpl *liquid.Template) error {
	bindings := n.bindings(rec)

	subject, serr := subjectTpl.RenderString(bindings)
	if serr != nil {
		return fmt.Errorf("render subject: %s", serr.Error())
	}
	html, serr := bodyTpl.RenderString(bindings)
	if serr != nil {
		return fmt.Errorf("render message: %s", serr.Error())
	}

	attachment := Attachment{Name: rec.FileName, ContentType: "image/png", Data: png}
	if n.toPDF != nil {
		pdf, err := n.toPDF(png, rec.ID)
		if err != nil {
			return fmt.Errorf("convert to pdf: %w", err)
		}
		attachment = Attachment{
			Name:        strings.TrimSuffix(rec.FileName, ".png") + ".pdf",
			ContentType: "application/pdf",
			Data:        pdf,
		}
	}

	return sender.Send(ctx, Message{
		To:          rec.Email,
		Subject:     subject,
		HTMLBody:    html,
		Attachments: []Attachment{attachment},
	})
}

// bindings exposes the display fields both at the top level and under
// "fields", so names that clash with the builtins stay reachable.
func (n *Notifier) bindings(rec model.CertificateRecord) map[string]any {
	fields := make(map[string]any, len(rec.Fields))
	out := make(map[string]any, len(rec.Fields)+5)
	for k, v := range rec.Fields {
		fields[k] = v
		out[k] = v
	}
	out["email"] = rec.Email
	out["certificateId"] = rec.ID
	out["fileName"] = rec.FileName
	out["downloadUrl"] = n.publicURL + "/certificates/" + rec.FileName
	out["fields"] = fields
	return out
}
