package request

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestRandomRefFormat(t *testing.T) {
	year := time.Now().Year()
	ref, err := randomRef(year, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prefix := "NOC" + strconv.Itoa(year)
	if !strings.HasPrefix(ref, prefix) {
		t.Fatalf("expected prefix %q, got %q", prefix, ref)
	}
	suffix := strings.TrimPrefix(ref, prefix)
	if len(suffix) != 8 {
		t.Fatalf("expected 8 random characters, got %d in %q", len(suffix), ref)
	}
	for _, r := range suffix {
		if !strings.ContainsRune(refCharset, r) {
			t.Fatalf("character %q outside charset in %q", r, ref)
		}
	}
}

func TestRandomRefFallbackLength(t *testing.T) {
	ref, err := randomRef(2025, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ref) != len("NOC2025")+10 {
		t.Fatalf("expected 10-character suffix, got %q", ref)
	}
}

func TestRandomRefSurvivesNormalization(t *testing.T) {
	ref, err := randomRef(2025, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if NormalizeReference(ref) != ref {
		t.Fatalf("generated reference %q should already be normalized", ref)
	}
}
