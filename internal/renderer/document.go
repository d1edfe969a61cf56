// Package renderer composes certificates as positioned text over a background
// image and rasterizes them to PNG.
package renderer

import (
	"context"
	"net/http"
	"sort"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// TextNode is one field value anchored at (X, Y) in canvas pixels. Align says
// which edge of the text sits on X; the text is vertically centered on Y.
type TextNode struct {
	Field    string
	Text     string
	X        float64
	Y        float64
	Align    model.Alignment
	FontSize int
}

// ImageNode is a square PNG overlay centered on (X, Y).
type ImageNode struct {
	Data []byte
	X    float64
	Y    float64
	Size int
}

// Document is everything a rasterizer needs to produce one certificate.
type Document struct {
	Width          int
	Height         int
	Background     []byte
	BackgroundType string
	Texts          []TextNode
	Images         []ImageNode
}

type Rasterizer interface {
	Rasterize(ctx context.Context, doc *Document) ([]byte, error)
}

// Compose lays out the fields present in both layout and fields. Empty values
// and fields without a layout entry are left out. Nodes are sorted by field
// name.
func Compose(background []byte, layout map[string]model.Position, fields map[string]string, width, height int) *Document {
	if width <= 0 {
		width = model.CanvasWidth
	}
	if height <= 0 {
		height = model.CanvasHeight
	}

	doc := &Document{
		Width:      width,
		Height:     height,
		Background: background,
	}
	if len(background) > 0 {
		doc.BackgroundType = http.DetectContentType(background)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := fields[name]
		if value == "" {
			continue
		}
		pos, ok := layout[name]
		if !ok {
			continue
		}
		pos = pos.Normalized()
		doc.Texts = append(doc.Texts, TextNode{
			Field:    name,
			Text:     value,
			X:        pos.XPercent / 100 * float64(width),
			Y:        pos.YPercent / 100 * float64(height),
			Align:    pos.Alignment,
			FontSize: pos.FontSize,
		})
	}

	return doc
}
