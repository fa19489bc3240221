package document

import (
	"fmt"
	"strings"

	"nocman/internal/domain/settings"
)

// pageStyles is the print stylesheet for generated certificates. Page size
// and margins live here so the PDF engine prints with zero engine margins.
const pageStyles = `
@page {
  size: A4 portrait;
  margin: 2cm 1.5cm;
}
html, body {
  margin: 0;
  padding: 0;
}
body {
  font-family: "Times New Roman", Times, serif;
  font-size: 11pt;
  line-height: 1.6;
  color: #1a1a1a;
}
p { margin: 0 0 0.4em 0; }
h1, h2, h3, h4, h5, h6 { margin: 0.6em 0 0.3em 0; }
.aligncenter { text-align: center; }
.alignright { text-align: right; }
.alignleft { text-align: left; }
figure.aligncenter { text-align: center; margin: 0 auto; }
figure.alignright { text-align: right; }
figure { margin: 0; }
.noc-columns { display: flex; width: 100%; }
.noc-column { flex: 1; padding: 0 4px; }
.noc-spacer { width: 100%; }
.noc-list { margin: 0.4em 0; padding-left: 1.5em; }
.noc-quote {
  margin: 0.6em 0;
  padding-left: 1em;
  border-left: 3px solid #999;
  font-style: italic;
}
.noc-separator {
  border: none;
  border-top: 1px solid #999;
  margin: 1em 0;
}
.noc-page-header { text-align: center; margin-bottom: 1em; }
.noc-page-header img { max-width: 100%; }
.noc-page-footer { text-align: center; margin-top: 1.5em; }
.noc-page-footer img { max-width: 100%; }
`

// Composer wraps a rendered body fragment into the full printable document,
// adding the configured header and footer bands.
type Composer struct {
	images *ImageResolver
}

func NewComposer(images *ImageResolver) *Composer {
	return &Composer{images: images}
}

// Compose produces the complete HTML document handed to the PDF engine.
func (c *Composer) Compose(fragment string, set settings.Settings) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\" />\n<style>")
	b.WriteString(pageStyles)
	b.WriteString("</style>\n</head>\n<body>\n")

	if header := c.images.Resolve(set.HeaderImage()); header != "" {
		fmt.Fprintf(&b, `<div class="noc-page-header"><img src="%s" alt="" /></div>`+"\n", header)
	}

	b.WriteString(fragment)

	if footer := c.images.Resolve(set.FooterImage()); footer != "" {
		fmt.Fprintf(&b, "\n"+`<div class="noc-page-footer"><img src="%s" alt="" /></div>`, footer)
	}

	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}
