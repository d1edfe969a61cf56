package certificate

import "errors"

// Precondition errors, reported before any certificate is rendered.
var (
	ErrNoRows                = errors.New("spreadsheet has no data rows")
	ErrTemplateNotConfigured = errors.New("template has no field layout configured")
	ErrTemplateImageMissing  = errors.New("template image is missing")
	ErrNoEmailColumn         = errors.New("no email column found in column mapping or spreadsheet")
)

// ErrRender wraps any failure that aborted a batch after rendering started.
var ErrRender = errors.New("certificate rendering failed")

// IsPrecondition reports whether err is one of the precondition errors.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoRows) ||
		errors.Is(err, ErrTemplateNotConfigured) ||
		errors.Is(err, ErrTemplateImageMissing) ||
		errors.Is(err, ErrNoEmailColumn)
}
