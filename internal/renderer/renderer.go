package renderer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

const DefaultTimeout = 60 * time.Second

// Request describes one certificate to render.
type Request struct {
	Background    []byte
	Template      model.Template
	Fields        map[string]string
	CertificateID string
}

// Renderer composes documents and hands them to a single Rasterizer, one at a
// time.
type Renderer struct {
	mu        sync.Mutex
	raster    Rasterizer
	timeout   time.Duration
	verifyURL string
}

type Option func(*Renderer)

func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithVerifyURL sets the base URL that QR overlays point to; the certificate
// id is appended as the last path segment.
func WithVerifyURL(base string) Option {
	return func(r *Renderer) {
		r.verifyURL = strings.TrimRight(base, "/")
	}
}

func New(raster Rasterizer, opts ...Option) *Renderer {
	r := &Renderer{raster: raster, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document builds the composed document for a request without rasterizing it.
func (r *Renderer) Document(req Request) (*Document, error) {
	width, height := req.Template.Width, req.Template.Height
	doc := Compose(req.Background, req.Template.Fields, req.Fields, width, height)

	if req.Template.QR != nil && r.verifyURL != "" && req.CertificateID != "" {
		qr := *req.Template.QR
		data, err := QRCode(r.verifyURL+"/"+req.CertificateID, qr.Size())
		if err != nil {
			return nil, err
		}
		doc.Images = append(doc.Images, ImageNode{
			Data: data,
			X:    qr.XPercent / 100 * float64(doc.Width),
			Y:    qr.YPercent / 100 * float64(doc.Height),
			Size: qr.Size(),
		})
	}
	return doc, nil
}

func (r *Renderer) Render(ctx context.Context, req Request) ([]byte, error) {
	doc, err := r.Document(req)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	renderCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	out, err := r.raster.Rasterize(renderCtx, doc)
	if err != nil {
		return nil, fmt.Errorf("rasterize %s: %w", req.CertificateID, err)
	}
	return out, nil
}
