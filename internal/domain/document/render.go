package document

import (
	"fmt"
	"html"
	"strings"

	"nocman/internal/domain/template"
)

// GenericRenderer handles block kinds this renderer does not recognize. It
// is an optional collaborator; without one, unknown kinds render to nothing.
type GenericRenderer interface {
	Render(block template.Block) string
}

type renderFunc func(*Renderer, template.Block) string

// Renderer converts a block tree into an HTML fragment. Dispatch is purely a
// function of the block kind; per-block output is independent, so a bad
// block never takes its siblings down with it.
type Renderer struct {
	placeholders *Placeholders
	images       *ImageResolver
	generic      GenericRenderer
	handlers     map[string]renderFunc
}

func NewRenderer(placeholders *Placeholders, images *ImageResolver, generic GenericRenderer) *Renderer {
	r := &Renderer{
		placeholders: placeholders,
		images:       images,
		generic:      generic,
	}
	r.handlers = map[string]renderFunc{
		template.KindParagraph: (*Renderer).renderParagraph,
		template.KindHeading:   (*Renderer).renderHeading,
		template.KindImage:     (*Renderer).renderImage,
		template.KindColumns:   (*Renderer).renderColumns,
		template.KindColumn:    (*Renderer).renderColumn,
		template.KindSpacer:    (*Renderer).renderSpacer,
		template.KindList:      (*Renderer).renderList,
		template.KindQuote:     (*Renderer).renderQuote,
		template.KindSeparator: (*Renderer).renderSeparator,
	}
	return r
}

// RenderBlocks renders a block sequence to an HTML fragment. Pure: the same
// tree and placeholder map always produce identical output.
func (r *Renderer) RenderBlocks(blocks []template.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(r.renderBlock(block))
	}
	return b.String()
}

func (r *Renderer) renderBlock(block template.Block) string {
	if block.Kind == "" {
		return ""
	}
	if handler, ok := r.handlers[block.Kind]; ok {
		return handler(r, block)
	}
	if r.generic != nil {
		return r.placeholders.Apply(r.generic.Render(block))
	}
	return ""
}

// literalContent joins the literal fragments of innerContent. Nil entries
// are structural gaps (a child block renders there) and whitespace-only
// fragments carry nothing; both are skipped.
func literalContent(block template.Block) string {
	var b strings.Builder
	for _, item := range block.InnerContent {
		if item == nil {
			continue
		}
		if strings.TrimSpace(*item) == "" {
			continue
		}
		b.WriteString(*item)
	}
	return b.String()
}

// cssClass combines an alignment class and a custom class name the way the
// template designer emits them. Always present on the element, even when
// empty.
func cssClass(block template.Block, base string) string {
	parts := make([]string, 0, 3)
	if base != "" {
		parts = append(parts, base)
	}
	if align := block.AttrString("align"); align != "" {
		parts = append(parts, "align"+align)
	}
	if class := block.AttrString("className"); class != "" {
		parts = append(parts, class)
	}
	return html.EscapeString(strings.Join(parts, " "))
}

func (r *Renderer) renderParagraph(block template.Block) string {
	content := r.placeholders.Apply(literalContent(block))
	return fmt.Sprintf(`<p class="%s">%s</p>`, cssClass(block, ""), content)
}

func (r *Renderer) renderHeading(block template.Block) string {
	level, ok := block.AttrInt("level")
	if !ok || level < 1 || level > 6 {
		level = 2
	}
	content := r.placeholders.Apply(literalContent(block))
	return fmt.Sprintf(`<h%d class="%s">%s</h%d>`, level, cssClass(block, ""), content, level)
}

// imageTokens bypass generic substitution: their PlaceholderMap values are
// already embeddable and must be used verbatim as the src.
var imageTokens = map[string]bool{
	TokenSignature:   true,
	TokenQRCode:      true,
	TokenCompanyLogo: true,
}

func (r *Renderer) renderImage(block template.Block) string {
	url := block.AttrString("url")

	if imageTokens[url] {
		url = r.placeholders.Get(url)
	} else {
		if strings.Contains(url, "{{") {
			url = r.placeholders.Apply(url)
		}
		if url != "" && !strings.HasPrefix(url, "data:") && !isHTTPURL(url) {
			if resolved := r.images.Resolve(url); resolved != "" {
				url = resolved
			}
		}
	}

	if url == "" {
		return ""
	}

	var style strings.Builder
	if width, ok := block.AttrInt("width"); ok && width > 0 {
		fmt.Fprintf(&style, "width: %dpx;", width)
	}
	if height, ok := block.AttrInt("height"); ok && height > 0 {
		if style.Len() > 0 {
			style.WriteString(" ")
		}
		fmt.Fprintf(&style, "height: %dpx;", height)
	}

	styleAttr := ""
	if style.Len() > 0 {
		styleAttr = fmt.Sprintf(` style="%s"`, style.String())
	}
	return fmt.Sprintf(`<figure class="%s"><img src="%s" alt="%s"%s /></figure>`,
		cssClass(block, "noc-image"),
		html.EscapeString(url),
		html.EscapeString(block.AttrString("alt")),
		styleAttr,
	)
}

func (r *Renderer) renderColumns(block template.Block) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="%s">`, cssClass(block, "noc-columns"))
	for _, child := range block.Children {
		b.WriteString(r.renderBlock(child))
	}
	b.WriteString("</div>")
	return b.String()
}

func (r *Renderer) renderColumn(block template.Block) string {
	var b strings.Builder
	widthAttr := ""
	if width, ok := block.AttrInt("width"); ok && width > 0 {
		widthAttr = fmt.Sprintf(` style="flex-basis: %d%%"`, width)
	}
	fmt.Fprintf(&b, `<div class="%s"%s>`, cssClass(block, "noc-column"), widthAttr)
	for _, child := range block.Children {
		b.WriteString(r.renderBlock(child))
	}
	b.WriteString("</div>")
	return b.String()
}

const defaultSpacerHeight = 100

func (r *Renderer) renderSpacer(block template.Block) string {
	height, ok := block.AttrInt("height")
	if !ok || height <= 0 {
		height = defaultSpacerHeight
	}
	return fmt.Sprintf(`<div class="noc-spacer" style="height: %dpx;"></div>`, height)
}

func (r *Renderer) renderList(block template.Block) string {
	tag := "ul"
	if block.AttrBool("ordered") {
		tag = "ol"
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<%s class="%s">`, tag, cssClass(block, "noc-list"))
	for _, item := range block.InnerContent {
		if item == nil || strings.TrimSpace(*item) == "" {
			continue
		}
		b.WriteString("<li>")
		b.WriteString(r.placeholders.Apply(*item))
		b.WriteString("</li>")
	}
	fmt.Fprintf(&b, "</%s>", tag)
	return b.String()
}

func (r *Renderer) renderQuote(block template.Block) string {
	content := r.placeholders.Apply(literalContent(block))
	return fmt.Sprintf(`<blockquote class="%s">%s</blockquote>`, cssClass(block, "noc-quote"), content)
}

func (r *Renderer) renderSeparator(template.Block) string {
	return `<hr class="noc-separator" />`
}
