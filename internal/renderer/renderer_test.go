package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

type stubRasterizer struct {
	docs []*Document
	err  error
	wait time.Duration
}

func (s *stubRasterizer) Rasterize(ctx context.Context, doc *Document) ([]byte, error) {
	if s.wait > 0 {
		select {
		case <-time.After(s.wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	s.docs = append(s.docs, doc)
	return []byte("png"), nil
}

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// inkBounds returns the horizontal extent of non-white pixels.
func inkBounds(t *testing.T, data []byte) (minX, maxX int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	minX, maxX = b.Max.X, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0xf000 || g < 0xf000 || bl < 0xf000 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	require.GreaterOrEqual(t, maxX, 0, "no ink drawn")
	return minX, maxX
}

func TestCompose(t *testing.T) {
	layout := map[string]model.Position{
		"name":   {XPercent: 50, YPercent: 25, Alignment: model.AlignCenter, FontSize: 40},
		"course": {XPercent: 10, YPercent: 75},
	}

	tests := []struct {
		name     string
		fields   map[string]string
		expected []TextNode
	}{
		{
			name:   "positions are percent of canvas",
			fields: map[string]string{"name": "Ana", "course": "Go"},
			expected: []TextNode{
				{Field: "course", Text: "Go", X: 120, Y: 600, Align: model.AlignLeft, FontSize: model.DefaultFontSize},
				{Field: "name", Text: "Ana", X: 600, Y: 200, Align: model.AlignCenter, FontSize: 40},
			},
		},
		{
			name:     "empty values and unplaced fields are skipped",
			fields:   map[string]string{"name": "", "extra": "x"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Compose(nil, layout, tt.fields, 0, 0)
			assert.Equal(t, model.CanvasWidth, doc.Width)
			assert.Equal(t, model.CanvasHeight, doc.Height)
			assert.Equal(t, tt.expected, doc.Texts)
		})
	}
}

func TestCompose_DetectsBackgroundType(t *testing.T) {
	doc := Compose(solidPNG(t, 4, 4, color.White), nil, nil, 100, 50)
	assert.Equal(t, "image/png", doc.BackgroundType)
	assert.Equal(t, 100, doc.Width)
	assert.Equal(t, 50, doc.Height)
}

func TestNativeRasterizer_Alignment(t *testing.T) {
	raster, err := NewNativeRasterizer()
	require.NoError(t, err)

	render := func(text string, align model.Alignment) []byte {
		doc := Compose(nil, map[string]model.Position{
			"name": {XPercent: 50, YPercent: 50, Alignment: align, FontSize: 32},
		}, map[string]string{"name": text}, 800, 200)
		out, err := raster.Rasterize(context.Background(), doc)
		require.NoError(t, err)
		return out
	}

	for _, text := range []string{"Hi", "A much longer recipient name"} {
		t.Run("right/"+text, func(t *testing.T) {
			_, maxX := inkBounds(t, render(text, model.AlignRight))
			assert.GreaterOrEqual(t, maxX, 385)
			assert.LessOrEqual(t, maxX, 401)
		})
		t.Run("left/"+text, func(t *testing.T) {
			minX, _ := inkBounds(t, render(text, model.AlignLeft))
			assert.GreaterOrEqual(t, minX, 399)
			assert.LessOrEqual(t, minX, 410)
		})
		t.Run("center/"+text, func(t *testing.T) {
			minX, maxX := inkBounds(t, render(text, model.AlignCenter))
			assert.InDelta(t, 400, float64(minX+maxX)/2, 6)
		})
	}
}

func TestNativeRasterizer_OutputSize(t *testing.T) {
	raster, err := NewNativeRasterizer()
	require.NoError(t, err)

	doc := Compose(solidPNG(t, 10, 10, color.RGBA{R: 200, A: 255}), nil, nil, 300, 200)
	out, err := raster.Rasterize(context.Background(), doc)
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 200, cfg.Height)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	r, g, _, _ := img.At(150, 100).RGBA()
	assert.Greater(t, r, g, "background should be scaled onto the canvas")
}

func TestNativeRasterizer_BadBackground(t *testing.T) {
	raster, err := NewNativeRasterizer()
	require.NoError(t, err)

	_, err = raster.Rasterize(context.Background(), Compose([]byte("not an image"), nil, nil, 10, 10))
	assert.Error(t, err)
}

func TestBuildHTML(t *testing.T) {
	doc := Compose(solidPNG(t, 2, 2, color.White), map[string]model.Position{
		"a": {XPercent: 10, YPercent: 10, Alignment: model.AlignLeft},
		"b": {XPercent: 50, YPercent: 50, Alignment: model.AlignCenter},
		"c": {XPercent: 90, YPercent: 90, Alignment: model.AlignRight},
	}, map[string]string{"a": "<b>x</b>", "b": "mid", "c": "end"}, 1000, 500)

	html, err := BuildHTML(doc)
	require.NoError(t, err)

	assert.Contains(t, html, "width: 1000px; height: 500px;")
	assert.Contains(t, html, "translate(0, -50%)")
	assert.Contains(t, html, "translate(-50%, -50%)")
	assert.Contains(t, html, "translate(-100%, -50%)")
	assert.Contains(t, html, "left: 900.00px; top: 450.00px;")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, html, "<b>x</b>")
	assert.Contains(t, html, "data:image/png;base64,")
}

func TestToPDF(t *testing.T) {
	out, err := ToPDF(solidPNG(t, 120, 80, color.White))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = ToPDF([]byte("nope"))
	assert.Error(t, err)
}

func TestExportPDF_DisabledSignerPassesThrough(t *testing.T) {
	signer, err := NewPDFSigner("", "")
	require.NoError(t, err)
	assert.False(t, signer.IsEnabled())

	unsigned, err := ToPDF(solidPNG(t, 20, 20, color.White))
	require.NoError(t, err)
	assert.Equal(t, unsigned, signer.Sign(unsigned, "c1"))

	out, err := ExportPDF(solidPNG(t, 20, 20, color.White), "c1", nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestNewPDFSigner_RequiresBothPaths(t *testing.T) {
	_, err := NewPDFSigner("cert.pem", "")
	assert.Error(t, err)

	_, err = NewPDFSigner("/does/not/exist.pem", "/does/not/exist.key")
	assert.Error(t, err)
}

func TestRenderer_AddsQROverlay(t *testing.T) {
	stub := &stubRasterizer{}
	r := New(stub, WithVerifyURL("http://portal.test/api/public/verify/"))

	tmpl := model.Template{
		Fields: map[string]model.Position{"name": {XPercent: 50, YPercent: 50}},
		QR:     &model.QRPlacement{XPercent: 90, YPercent: 80, SizePx: 100},
	}
	_, err := r.Render(context.Background(), Request{
		Template:      tmpl,
		Fields:        map[string]string{"name": "Ana"},
		CertificateID: "template1-1-0",
	})
	require.NoError(t, err)
	require.Len(t, stub.docs, 1)

	doc := stub.docs[0]
	require.Len(t, doc.Images, 1)
	assert.Equal(t, 1080.0, doc.Images[0].X)
	assert.Equal(t, 640.0, doc.Images[0].Y)
	assert.Equal(t, 100, doc.Images[0].Size)
	assert.True(t, bytes.HasPrefix(doc.Images[0].Data, []byte("\x89PNG")))
}

func TestRenderer_NoQRWithoutPlacement(t *testing.T) {
	stub := &stubRasterizer{}
	r := New(stub, WithVerifyURL("http://portal.test/verify"))

	_, err := r.Render(context.Background(), Request{CertificateID: "x"})
	require.NoError(t, err)
	assert.Empty(t, stub.docs[0].Images)
}

func TestRenderer_Errors(t *testing.T) {
	t.Run("rasterizer failure is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		r := New(&stubRasterizer{err: boom})
		_, err := r.Render(context.Background(), Request{CertificateID: "c9"})
		require.ErrorIs(t, err, boom)
		assert.True(t, strings.Contains(err.Error(), "c9"))
	})

	t.Run("timeout", func(t *testing.T) {
		r := New(&stubRasterizer{wait: time.Second}, WithTimeout(10*time.Millisecond))
		_, err := r.Render(context.Background(), Request{})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
