// Package certificate turns spreadsheet rows into rendered certificates and
// keeps the ledger of everything generated.
package certificate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sunthewhat/easy-cert-portal/internal/renderer"
	"github.com/sunthewhat/easy-cert-portal/internal/spreadsheet"
	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// Renderer is the part of renderer.Renderer the generator needs.
type Renderer interface {
	Render(ctx context.Context, req renderer.Request) ([]byte, error)
}

type Input struct {
	Sheet      *spreadsheet.Sheet
	Template   model.Template
	Mapping    model.ColumnMapping
	Background []byte
}

type Result struct {
	BatchID     string
	EmailColumn string
	Records     []model.CertificateRecord
	Skipped     int
}

// FileNames lists the generated files in row order.
func (r *Result) FileNames() []string {
	names := make([]string, len(r.Records))
	for i, rec := range r.Records {
		names[i] = rec.FileName
	}
	return names
}

type Generator struct {
	renderer Renderer
	blob     storage.Blob
	ledger   ILedger
	now      func() time.Time
	newID    func() string

	mu        sync.Mutex
	lastStamp int64
}

func NewGenerator(r Renderer, blob storage.Blob, ledger ILedger) *Generator {
	return &Generator{
		renderer: r,
		blob:     blob,
		ledger:   ledger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// batchStamp returns a millisecond timestamp strictly greater than any
// previous one, so two batches never share a file name.
func (g *Generator) batchStamp() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().UnixMilli()
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}
	g.lastStamp = stamp
	return stamp
}

func checkPreconditions(in Input) (string, error) {
	if in.Sheet == nil || len(in.Sheet.Rows) == 0 {
		return "", ErrNoRows
	}
	if len(in.Template.Fields) == 0 {
		return "", ErrTemplateNotConfigured
	}
	if len(in.Background) == 0 {
		return "", ErrTemplateImageMissing
	}
	column, ok := ResolveEmailColumn(in.Mapping, in.Sheet)
	if !ok {
		return "", ErrNoEmailColumn
	}
	return column, nil
}

// Generate renders one certificate per row with an email and appends them to
// the ledger. Either every rendered row is committed or none is.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	emailColumn, err := checkPreconditions(in)
	if err != nil {
		return nil, err
	}

	stamp := g.batchStamp()
	generatedAt := time.UnixMilli(stamp)
	result := &Result{BatchID: g.newID(), EmailColumn: emailColumn}

	slog.Info("Certificate batch started",
		"batch_id", result.BatchID,
		"template_id", in.Template.ID,
		"rows", len(in.Sheet.Rows),
		"email_column", emailColumn)

	var written []string
	abort := func(row int, err error) (*Result, error) {
		g.discard(written)
		slog.Error("Certificate batch aborted", "batch_id", result.BatchID, "row", row, "error", err)
		return nil, fmt.Errorf("%w: row %d: %w", ErrRender, row, err)
	}

	for i, row := range in.Sheet.Rows {
		fields := MapFields(in.Mapping, row)
		email := strings.TrimSpace(row[emailColumn])
		if email == "" {
			result.Skipped++
			slog.Warn("Skipping row without email", "batch_id", result.BatchID, "row", i)
			continue
		}

		rec := model.CertificateRecord{
			ID:           fmt.Sprintf("%s-%d-%d", in.Template.ID, stamp, i),
			BatchID:      result.BatchID,
			Email:        email,
			FileName:     fmt.Sprintf("certificate_%s_%d_%d.png", SanitizeEmail(email), stamp, i),
			Fields:       fields,
			GeneratedAt:  generatedAt,
			TemplateID:   in.Template.ID,
			TemplateFile: in.Template.Image,
			RowIndex:     i,
		}

		png, err := g.renderer.Render(ctx, renderer.Request{
			Background:    in.Background,
			Template:      in.Template,
			Fields:        fields,
			CertificateID: rec.ID,
		})
		if err != nil {
			return abort(i, err)
		}
		if err := g.blob.Put(ctx, rec.FileName, png, "image/png"); err != nil {
			return abort(i, err)
		}
		written = append(written, rec.FileName)
		result.Records = append(result.Records, rec)
	}

	if err := g.ledger.Append(ctx, result.Records); err != nil {
		g.discard(written)
		return nil, err
	}

	slog.Info("Certificate batch finished",
		"batch_id", result.BatchID,
		"generated", len(result.Records),
		"skipped", result.Skipped)
	return result, nil
}

// discard removes files written by an aborted batch. Cleanup runs on a fresh
// context because the request context may be the reason for the abort.
func (g *Generator) discard(names []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range names {
		if err := g.blob.Delete(ctx, name); err != nil {
			slog.Warn("Failed to remove file from aborted batch", "file", name, "error", err)
		}
	}
}
