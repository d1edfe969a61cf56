package notifier

import (
	"context"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// INotifier defines the bulk mail operation used by controllers
type INotifier interface {
	NotifyAll(ctx context.Context, sender Sender, records []model.CertificateRecord, subject, body string) (*Summary, error)
}

var _ INotifier = (*Notifier)(nil)

// MockNotifier is a mock implementation for testing
type MockNotifier struct {
	NotifyAllFunc func(ctx context.Context, sender Sender, records []model.CertificateRecord, subject, body string) (*Summary, error)
}

var _ INotifier = (*MockNotifier)(nil)

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyAll(ctx context.Context, sender Sender, records []model.CertificateRecord, subject, body string) (*Summary, error) {
	if m.NotifyAllFunc != nil {
		return m.NotifyAllFunc(ctx, sender, records, subject, body)
	}
	return &Summary{}, nil
}

// MockSender records every message it is asked to send
type MockSender struct {
	SendFunc func(ctx context.Context, msg Message) error
	Sent     []Message
}

var _ Sender = (*MockSender)(nil)

func (m *MockSender) Send(ctx context.Context, msg Message) error {
	m.Sent = append(m.Sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}
