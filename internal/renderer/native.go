package renderer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

// NativeRasterizer draws documents in-process with the Go Regular font. It
// keeps no per-certificate state, so it is safe to reuse across renders.
type NativeRasterizer struct {
	font *opentype.Font
	ink  color.Color
}

func NewNativeRasterizer() (*NativeRasterizer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &NativeRasterizer{font: f, ink: color.Black}, nil
}

func (n *NativeRasterizer) Rasterize(ctx context.Context, doc *Document) ([]byte, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, doc.Width, doc.Height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	if len(doc.Background) > 0 {
		bg, _, err := image.Decode(bytes.NewReader(doc.Background))
		if err != nil {
			return nil, fmt.Errorf("failed to decode background: %w", err)
		}
		draw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), bg, bg.Bounds(), draw.Over, nil)
	}

	for _, node := range doc.Texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := n.drawText(canvas, node); err != nil {
			return nil, err
		}
	}

	for _, node := range doc.Images {
		overlay, _, err := image.Decode(bytes.NewReader(node.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode overlay: %w", err)
		}
		half := float64(node.Size) / 2
		rect := image.Rect(
			int(node.X-half), int(node.Y-half),
			int(node.X-half)+node.Size, int(node.Y-half)+node.Size,
		)
		draw.NearestNeighbor.Scale(canvas, rect, overlay, overlay.Bounds(), draw.Over, nil)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (n *NativeRasterizer) drawText(dst draw.Image, node TextNode) error {
	face, err := opentype.NewFace(n.font, &opentype.FaceOptions{
		Size:    float64(node.FontSize),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(n.ink), Face: face}
	advance := d.MeasureString(node.Text)
	x := fixed.Int26_6(node.X * 64)
	switch node.Align {
	case model.AlignCenter:
		x -= advance / 2
	case model.AlignRight:
		x -= advance
	}

	metrics := face.Metrics()
	y := fixed.Int26_6(node.Y*64) + (metrics.Ascent-metrics.Descent)/2

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(node.Text)
	return nil
}
