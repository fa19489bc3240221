package pdf

import (
	"context"
	"errors"
)

// Engine converts a complete HTML document into PDF bytes.
type Engine interface {
	Render(ctx context.Context, html string, opts Options) ([]byte, error)
	Close() error
}

type Options struct {
	PageSize    string // "A4" (default) or "Letter"
	Orientation string // "portrait" (default) or "landscape"
}

var (
	ErrEmptyDocument  = errors.New("document is empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrRender         = errors.New("PDF rendering failed")
)

// paper dimensions in inches
const (
	a4WidthInches      = 8.27
	a4HeightInches     = 11.69
	letterWidthInches  = 8.5
	letterHeightInches = 11
)

func paperSize(opts Options) (width, height float64) {
	width, height = a4WidthInches, a4HeightInches
	if opts.PageSize == "Letter" {
		width, height = letterWidthInches, letterHeightInches
	}
	if opts.Orientation == "landscape" {
		width, height = height, width
	}
	return width, height
}
