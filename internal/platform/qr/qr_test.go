package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
)

func TestDataURI(t *testing.T) {
	uri, err := DataURI("https://example.com/api/v1/verify?ref=NOC2025AB12CD34")
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}

	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected prefix: %q", uri[:min(len(uri), 30)])
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != imageSize || bounds.Dy() != imageSize {
		t.Fatalf("expected %dx%d image, got %dx%d", imageSize, imageSize, bounds.Dx(), bounds.Dy())
	}
}

func TestDataURIDeterministic(t *testing.T) {
	first, err := DataURI("NOC2025AB12CD34")
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}
	second, err := DataURI("NOC2025AB12CD34")
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}
	if first != second {
		t.Fatal("same content must encode to the same image")
	}
}
