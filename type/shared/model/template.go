package model

import "time"

// Canvas dimensions every template is rendered at.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800
)

const (
	DefaultFontSize = 32
	DefaultQRSize   = 120
)

type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Position places a field on the canvas in percent of its width and height.
type Position struct {
	XPercent  float64   `json:"x" validate:"gte=0,lte=100"`
	YPercent  float64   `json:"y" validate:"gte=0,lte=100"`
	Alignment Alignment `json:"alignment,omitempty" validate:"omitempty,oneof=left center right"`
	FontSize  int       `json:"fontSize,omitempty" validate:"omitempty,gt=0"`
}

// Normalized fills in the default alignment and font size.
func (p Position) Normalized() Position {
	if p.Alignment == "" {
		p.Alignment = AlignLeft
	}
	if p.FontSize <= 0 {
		p.FontSize = DefaultFontSize
	}
	return p
}

// QRPlacement positions the verification QR code, centered on (x%, y%).
type QRPlacement struct {
	XPercent float64 `json:"x" validate:"gte=0,lte=100"`
	YPercent float64 `json:"y" validate:"gte=0,lte=100"`
	SizePx   int     `json:"size,omitempty" validate:"omitempty,gt=0"`
}

func (q QRPlacement) Size() int {
	if q.SizePx <= 0 {
		return DefaultQRSize
	}
	return q.SizePx
}

type Template struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Image        string              `json:"image"`
	Width        int                 `json:"width"`
	Height       int                 `json:"height"`
	Fields       map[string]Position `json:"fields"`
	QR           *QRPlacement        `json:"qr,omitempty"`
	DiscoveredAt time.Time           `json:"discoveredAt"`
}

// Clone returns a deep copy so callers can't mutate store state.
func (t Template) Clone() Template {
	fields := make(map[string]Position, len(t.Fields))
	for k, v := range t.Fields {
		fields[k] = v
	}
	t.Fields = fields
	if t.QR != nil {
		qr := *t.QR
		t.QR = &qr
	}
	return t
}
