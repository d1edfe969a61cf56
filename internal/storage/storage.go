// Package storage holds the persistence backends: blobs for rendered
// certificates and whole-document JSON stores for the layout and ledger state.
package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound    = errors.New("storage: object not found")
	ErrInvalidName = errors.New("storage: invalid object name")
)

// Blob stores flat, named binary objects.
type Blob interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Get(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// Document persists one JSON value, rewritten in full on every Save.
type Document interface {
	// Load decodes the stored value into v. It reports false when nothing
	// has been saved yet.
	Load(ctx context.Context, v any) (bool, error)
	Save(ctx context.Context, v any) error
}

// ValidateName rejects anything that is not a single plain path element.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}
