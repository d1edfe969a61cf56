package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/sunthewhat/easy-cert-portal/type/shared/model"
)

var pageTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
html, body { margin: 0; padding: 0; overflow: hidden; background: #fff; }
#canvas { position: relative; overflow: hidden; width: {{.Width}}px; height: {{.Height}}px; }
#bg { position: absolute; left: 0; top: 0; width: 100%; height: 100%; object-fit: fill; }
.field { position: absolute; white-space: nowrap; line-height: 1; color: #000; font-family: "Noto Sans", "Helvetica Neue", Arial, sans-serif; }
.overlay { position: absolute; }
</style>
</head>
<body>
<div id="canvas">
{{- if .Background}}
<img id="bg" src="{{.Background}}" alt="">
{{- end}}
{{- range .Texts}}
<div class="field" data-field="{{.Field}}" style="{{.Style}}">{{.Text}}</div>
{{- end}}
{{- range .Images}}
<img class="overlay" src="{{.Src}}" style="{{.Style}}" alt="">
{{- end}}
</div>
</body>
</html>
`))

type htmlText struct {
	Field string
	Text  string
	Style template.CSS
}

type htmlImage struct {
	Src   template.URL
	Style template.CSS
}

type htmlPage struct {
	Width      int
	Height     int
	Background template.URL
	Texts      []htmlText
	Images     []htmlImage
}

// BuildHTML renders the document as a fixed-size page. Alignment is done with
// transforms so the anchor edge lands on X regardless of text width.
func BuildHTML(doc *Document) (string, error) {
	page := htmlPage{Width: doc.Width, Height: doc.Height}
	if len(doc.Background) > 0 {
		page.Background = dataURL(doc.BackgroundType, doc.Background)
	}

	for _, node := range doc.Texts {
		page.Texts = append(page.Texts, htmlText{
			Field: node.Field,
			Text:  node.Text,
			Style: template.CSS(fmt.Sprintf(
				"left: %.2fpx; top: %.2fpx; font-size: %dpx; transform: %s;",
				node.X, node.Y, node.FontSize, alignTransform(node.Align),
			)),
		})
	}

	for _, node := range doc.Images {
		half := float64(node.Size) / 2
		page.Images = append(page.Images, htmlImage{
			Src: dataURL("image/png", node.Data),
			Style: template.CSS(fmt.Sprintf(
				"left: %.2fpx; top: %.2fpx; width: %dpx; height: %dpx;",
				node.X-half, node.Y-half, node.Size, node.Size,
			)),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return "", fmt.Errorf("failed to build certificate html: %w", err)
	}
	return buf.String(), nil
}

func alignTransform(align model.Alignment) string {
	switch align {
	case model.AlignCenter:
		return "translate(-50%, -50%)"
	case model.AlignRight:
		return "translate(-100%, -50%)"
	default:
		return "translate(0, -50%)"
	}
}

func dataURL(mime string, data []byte) template.URL {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}
