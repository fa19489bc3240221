package document

import (
	"strings"
	"testing"

	"nocman/internal/domain/settings"
)

func TestComposeWrapsFragment(t *testing.T) {
	c := NewComposer(newResolver(nil))
	doc := c.Compose(`<p class="">Hello</p>`, settings.Settings{})

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Fatalf("missing doctype: %q", doc[:40])
	}
	if !strings.Contains(doc, `<p class="">Hello</p>`) {
		t.Fatal("fragment missing from composed document")
	}
	if !strings.Contains(doc, "@page") || !strings.Contains(doc, "A4 portrait") {
		t.Fatal("print stylesheet missing")
	}
	if !strings.Contains(doc, "Times New Roman") {
		t.Fatal("base font missing")
	}
	if strings.Contains(doc, `<div class="noc-page-header">`) {
		t.Fatal("header band emitted without a configured image")
	}
	if strings.Contains(doc, `<div class="noc-page-footer">`) {
		t.Fatal("footer band emitted without a configured image")
	}
}

func TestComposeHeaderAndFooterBands(t *testing.T) {
	c := NewComposer(newResolver(map[string][]byte{
		"/var/data/uploads/header.png": pngBytes,
	}))
	set := settings.Settings{
		PDFHeaderImagePath: "/var/data/uploads/header.png",
		PDFFooterImage:     "https://cdn.example.org/footer.png",
	}
	doc := c.Compose("<p>body</p>", set)

	header := `<div class="noc-page-header"><img src="data:image/png;base64,`
	if !strings.Contains(doc, header) {
		t.Fatalf("header image not inlined: %q", doc)
	}
	if !strings.Contains(doc, `<div class="noc-page-footer"><img src="https://cdn.example.org/footer.png"`) {
		t.Fatal("footer image URL missing")
	}

	if strings.Index(doc, "noc-page-header\"><img") > strings.Index(doc, "<p>body</p>") {
		t.Fatal("header band must precede the body")
	}
	if strings.Index(doc, "noc-page-footer\"><img") < strings.Index(doc, "<p>body</p>") {
		t.Fatal("footer band must follow the body")
	}
}
