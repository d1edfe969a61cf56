package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// Ledger is the ordered list of every generated certificate. It is rewritten
// in full on each append.
type Ledger struct {
	mu      sync.RWMutex
	doc     storage.Document
	records []model.CertificateRecord
}

func NewLedger(ctx context.Context, doc storage.Document) (*Ledger, error) {
	l := &Ledger{doc: doc}
	if _, err := doc.Load(ctx, &l.records); err != nil {
		return nil, fmt.Errorf("failed to load certificate ledger: %w", err)
	}
	slog.Info("Certificate ledger loaded", "records", len(l.records))
	return l, nil
}

// Append adds records and persists the whole ledger. If persisting fails the
// ledger is left as it was.
func (l *Ledger) Append(ctx context.Context, records []model.CertificateRecord) error {
	if len(records) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]model.CertificateRecord, 0, len(l.records)+len(records))
	next = append(next, l.records...)
	next = append(next, records...)

	if err := l.doc.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist certificate ledger: %w", err)
	}
	l.records = next
	return nil
}

// All returns a snapshot of the ledger.
func (l *Ledger) All() []model.CertificateRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.CertificateRecord, len(l.records))
	copy(out, l.records)
	return out
}

// FindByEmail returns every record whose email matches case-insensitively, in
// ledger order.
func (l *Ledger) FindByEmail(email string) []model.CertificateRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []model.CertificateRecord
	for _, r := range l.records {
		if strings.EqualFold(r.Email, email) {
			out = append(out, r)
		}
	}
	return out
}

func (l *Ledger) FindByID(id string) (model.CertificateRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.CertificateRecord{}, false
}

// FindByFileName is used by the download routes to resolve the certificate id
// of a stored file.
func (l *Ledger) FindByFileName(name string) (model.CertificateRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.records {
		if r.FileName == name {
			return r, true
		}
	}
	return model.CertificateRecord{}, false
}
