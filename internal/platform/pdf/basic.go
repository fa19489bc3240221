package pdf

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// BasicEngine is a browserless fallback that renders the document's text
// content with gofpdf's HTML subset (bold/italic/underline/line breaks).
// Images, columns and the print stylesheet are ignored; output is a plain
// best-effort letter for environments without Chrome.
type BasicEngine struct{}

var _ Engine = (*BasicEngine)(nil)

func NewBasicEngine() *BasicEngine {
	return &BasicEngine{}
}

func (e *BasicEngine) Close() error { return nil }

func (e *BasicEngine) Render(ctx context.Context, html string, opts Options) ([]byte, error) {
	if html == "" {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	orientation := "P"
	if opts.Orientation == "landscape" {
		orientation = "L"
	}
	size := opts.PageSize
	if size == "" {
		size = "A4"
	}

	doc := gofpdf.New(orientation, "mm", size, "")
	doc.SetMargins(20, 20, 20)
	doc.AddPage()
	doc.SetFont("Times", "", 11)

	writer := doc.HTMLBasicNew()
	writer.Write(5.5, toBasicHTML(html))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

var (
	headTagRe    = regexp.MustCompile(`(?is)<head.*?</head>`)
	blockCloseRe = regexp.MustCompile(`(?i)</(p|h[1-6]|li|blockquote|div)>`)
	hrTagRe      = regexp.MustCompile(`(?i)<hr[^>]*/?>`)
	anyTagRe     = regexp.MustCompile(`(?is)<[^>]+>`)
)

// toBasicHTML reduces a full document to the tag subset gofpdf understands.
func toBasicHTML(html string) string {
	s := headTagRe.ReplaceAllString(html, "")
	s = blockCloseRe.ReplaceAllString(s, "<br>")
	s = hrTagRe.ReplaceAllString(s, "<br>")
	s = anyTagRe.ReplaceAllStringFunc(s, func(tag string) string {
		lower := strings.ToLower(tag)
		switch {
		case strings.HasPrefix(lower, "<b>"), strings.HasPrefix(lower, "</b>"),
			strings.HasPrefix(lower, "<i>"), strings.HasPrefix(lower, "</i>"),
			strings.HasPrefix(lower, "<u>"), strings.HasPrefix(lower, "</u>"),
			strings.HasPrefix(lower, "<br"):
			return tag
		case strings.HasPrefix(lower, "<strong"), strings.HasPrefix(lower, "</strong"):
			if strings.HasPrefix(lower, "</") {
				return "</b>"
			}
			return "<b>"
		case strings.HasPrefix(lower, "<em"), strings.HasPrefix(lower, "</em"):
			if strings.HasPrefix(lower, "</") {
				return "</i>"
			}
			return "<i>"
		}
		return ""
	})
	return strings.TrimSpace(s)
}
