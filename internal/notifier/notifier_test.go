package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

func setupBlob(t *testing.T, files ...string) *storage.LocalBlob {
	t.Helper()
	blob, err := storage.NewLocalBlob(t.TempDir())
	require.NoError(t, err)
	for _, name := range files {
		require.NoError(t, blob.Put(context.Background(), name, []byte("png:"+name), "image/png"))
	}
	return blob
}

var ledgerSnapshot = []model.CertificateRecord{
	{ID: "t-1-0", Email: "ana@x.com", FileName: "a.png", Fields: map[string]string{"Name": "Ana"}},
	{ID: "t-1-1", Email: "bo@x.com", FileName: "missing.png", Fields: map[string]string{"Name": "Bo"}},
	{ID: "t-1-2", Email: "cy@x.com", FileName: "c.png", Fields: map[string]string{"Name": "Cy"}},
}

func TestNotifyAll_SkipsMissingFiles(t *testing.T) {
	n := New(setupBlob(t, "a.png", "c.png"), "http://portal.test/")
	sender := &MockSender{}

	summary, err := n.NotifyAll(context.Background(), sender, ledgerSnapshot, "Hi {{ Name }}", "<p>{{ downloadUrl }}</p>")
	require.NoError(t, err)

	require.Len(t, summary.Results, 2)
	assert.Equal(t, "ana@x.com", summary.Results[0].Email)
	assert.Equal(t, "cy@x.com", summary.Results[1].Email)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 1, summary.Skipped)

	require.Len(t, sender.Sent, 2)
	msg := sender.Sent[0]
	assert.Equal(t, "ana@x.com", msg.To)
	assert.Equal(t, "Hi Ana", msg.Subject)
	assert.Equal(t, "<p>http://portal.test/certificates/a.png</p>", msg.HTMLBody)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "a.png", msg.Attachments[0].Name)
	assert.Equal(t, "image/png", msg.Attachments[0].ContentType)
	assert.Equal(t, []byte("png:a.png"), msg.Attachments[0].Data)
}

func TestNotifyAll_FailureDoesNotStopRun(t *testing.T) {
	n := New(setupBlob(t, "a.png", "missing.png", "c.png"), "http://portal.test")
	sender := &MockSender{
		SendFunc: func(ctx context.Context, msg Message) error {
			if msg.To == "ana@x.com" {
				return errors.New("mailbox unavailable")
			}
			return nil
		},
	}

	summary, err := n.NotifyAll(context.Background(), sender, ledgerSnapshot, "s", "b")
	require.NoError(t, err)

	require.Len(t, summary.Results, 3)
	assert.Equal(t, StatusFailed, summary.Results[0].Status)
	assert.Equal(t, "mailbox unavailable", summary.Results[0].Error)
	assert.Equal(t, StatusSent, summary.Results[1].Status)
	assert.Equal(t, StatusSent, summary.Results[2].Status)
	assert.Equal(t, 2, summary.Sent)
	assert.Equal(t, 1, summary.Failed)
}

func TestNotifyAll_TemplateBindings(t *testing.T) {
	n := New(setupBlob(t, "a.png"), "http://portal.test")
	sender := &MockSender{}

	_, err := n.NotifyAll(context.Background(), sender, ledgerSnapshot[:1],
		"{{ certificateId }}",
		"{{ fields.Name }}|{{ email }}|{{ fileName }}|{{ Unknown }}")
	require.NoError(t, err)

	require.Len(t, sender.Sent, 1)
	assert.Equal(t, "t-1-0", sender.Sent[0].Subject)
	assert.Equal(t, "Ana|ana@x.com|a.png|", sender.Sent[0].HTMLBody)
}

func TestNotifyAll_InvalidTemplate(t *testing.T) {
	n := New(setupBlob(t), "http://portal.test")
	sender := &MockSender{}

	_, err := n.NotifyAll(context.Background(), sender, ledgerSnapshot, "{% if Name %}unterminated", "body")
	assert.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Empty(t, sender.Sent)
}

func TestNotifyAll_PDFAttachment(t *testing.T) {
	var converted []string
	n := New(setupBlob(t, "a.png"), "http://portal.test", WithPDFAttachments(func(png []byte, id string) ([]byte, error) {
		converted = append(converted, id)
		return []byte("%PDF-" + id), nil
	}))
	sender := &MockSender{}

	summary, err := n.NotifyAll(context.Background(), sender, ledgerSnapshot[:1], "s", "b")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Sent)
	assert.Equal(t, []string{"t-1-0"}, converted)

	att := sender.Sent[0].Attachments[0]
	assert.Equal(t, "a.pdf", att.Name)
	assert.Equal(t, "application/pdf", att.ContentType)
	assert.Equal(t, []byte("%PDF-t-1-0"), att.Data)
}

func TestNotifyAll_CancelledContext(t *testing.T) {
	n := New(setupBlob(t, "a.png", "c.png"), "http://portal.test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := n.NotifyAll(ctx, &MockSender{}, ledgerSnapshot, "s", "b")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Results)
}
