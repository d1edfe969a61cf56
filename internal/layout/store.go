// Package layout owns the template catalog: the background images found in
// the templates directory and the field layout saved for each of them.
package layout

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sunthewhat/easy-cert-portal/internal/storage"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

var (
	ErrUnknownTemplate = errors.New("template not found")
	ErrImageMissing    = errors.New("template image not found")
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// document is the persisted shape. Order keeps discovery order, Next is the
// sequence number handed to the next newly discovered image.
type document struct {
	Next      int                        `json:"next"`
	Order     []string                   `json:"order"`
	Templates map[string]*model.Template `json:"templates"`
}

type Store struct {
	mu  sync.RWMutex
	doc storage.Document
	dir string
	now func() time.Time

	state document
}

func NewStore(ctx context.Context, doc storage.Document, dir string) (*Store, error) {
	s := &Store{
		doc: doc,
		dir: dir,
		now: time.Now,
		state: document{
			Next:      1,
			Templates: map[string]*model.Template{},
		},
	}

	found, err := doc.Load(ctx, &s.state)
	if err != nil {
		return nil, fmt.Errorf("failed to load template layouts: %w", err)
	}
	if found {
		if s.state.Templates == nil {
			s.state.Templates = map[string]*model.Template{}
		}
		if s.state.Next < 1 {
			s.state.Next = len(s.state.Order) + 1
		}
	}

	slog.Info("Template layouts loaded", "count", len(s.state.Order), "dir", dir)
	return s, nil
}

// Discover registers every image in the templates directory that has not been
// seen before. Known images keep their id even if the directory changes.
func (s *Store) Discover(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			images = append(images, entry.Name())
		}
	}
	sort.Strings(images)

	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.state.Templates))
	for _, tpl := range s.state.Templates {
		known[tpl.Image] = true
	}

	next := s.cloneState()
	added := 0
	for _, image := range images {
		if known[image] {
			continue
		}
		id := fmt.Sprintf("template%d", next.Next)
		next.Next++
		next.Order = append(next.Order, id)
		next.Templates[id] = &model.Template{
			ID:           id,
			Name:         strings.TrimSuffix(image, filepath.Ext(image)),
			Image:        image,
			Width:        model.CanvasWidth,
			Height:       model.CanvasHeight,
			Fields:       map[string]model.Position{},
			DiscoveredAt: s.now(),
		}
		added++
	}

	if added == 0 {
		return nil
	}
	if err := s.doc.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist discovered templates: %w", err)
	}
	s.state = next

	slog.Info("Discovered new templates", "added", added, "total", len(next.Order))
	return nil
}

// List returns every template in discovery order.
func (s *Store) List() []model.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Template, 0, len(s.state.Order))
	for _, id := range s.state.Order {
		if tpl, ok := s.state.Templates[id]; ok {
			out = append(out, tpl.Clone())
		}
	}
	return out
}

func (s *Store) Get(id string) (model.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.state.Templates[id]
	if !ok {
		return model.Template{}, false
	}
	return tpl.Clone(), true
}

// SaveLayout replaces the whole field set (and QR placement) of a template
// and persists it before returning.
func (s *Store) SaveLayout(ctx context.Context, id string, fields map[string]model.Position, qr *model.QRPlacement) (model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Templates[id]; !ok {
		return model.Template{}, ErrUnknownTemplate
	}

	next := s.cloneState()
	tpl := next.Templates[id]
	tpl.Fields = make(map[string]model.Position, len(fields))
	for name, pos := range fields {
		tpl.Fields[name] = pos.Normalized()
	}
	tpl.QR = nil
	if qr != nil {
		placement := *qr
		placement.SizePx = placement.Size()
		tpl.QR = &placement
	}

	if err := s.doc.Save(ctx, next); err != nil {
		return model.Template{}, fmt.Errorf("failed to persist template layout: %w", err)
	}
	s.state = next

	slog.Info("Template layout saved", "template_id", id, "field_count", len(tpl.Fields))
	return tpl.Clone(), nil
}

// Image reads the background image of a template.
func (s *Store) Image(id string) ([]byte, error) {
	tpl, ok := s.Get(id)
	if !ok {
		return nil, ErrUnknownTemplate
	}

	data, err := os.ReadFile(filepath.Join(s.dir, tpl.Image))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrImageMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrImageMissing
	}
	return data, nil
}

func (s *Store) cloneState() document {
	next := document{
		Next:      s.state.Next,
		Order:     append([]string(nil), s.state.Order...),
		Templates: make(map[string]*model.Template, len(s.state.Templates)),
	}
	for id, tpl := range s.state.Templates {
		clone := tpl.Clone()
		next.Templates[id] = &clone
	}
	return next
}
