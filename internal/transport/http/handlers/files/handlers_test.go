package fileshandler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/certificate"
)

type fakeOpener struct {
	refs map[string][]byte
	last string
}

func (f *fakeOpener) Open(ref string) (string, []byte, error) {
	f.last = ref
	data, ok := f.refs[ref]
	if !ok {
		return "", nil, certificate.ErrFileNotFound
	}
	return "noc-" + ref + ".pdf", data, nil
}

func newRouter(opener *fakeOpener) http.Handler {
	r := chi.NewRouter()
	NewHandler(opener).RegisterRoutes(r)
	return r
}

func TestDownloadServesPDF(t *testing.T) {
	opener := &fakeOpener{refs: map[string][]byte{"NOC2025AB12CD34": []byte("%PDF")}}
	router := newRouter(opener)

	req := httptest.NewRequest(http.MethodGet, "/files/noc-pdfs/noc-NOC2025AB12CD34.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if opener.last != "NOC2025AB12CD34" {
		t.Fatalf("reference extraction failed: %q", opener.last)
	}
	if rec.Body.String() != "%PDF" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestDownloadUnknownFile(t *testing.T) {
	router := newRouter(&fakeOpener{refs: map[string][]byte{}})

	req := httptest.NewRequest(http.MethodGet, "/files/noc-pdfs/noc-NOPE.pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRefFromFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"noc-NOC2025AB12CD34.pdf", "NOC2025AB12CD34", true},
		{"noc-.pdf", "", false},
		{"other.pdf", "", false},
		{"noc-NOC2025.txt", "", false},
		{"noc-..%2F..%2Fetc.pdf", "", false},
		{"noc-NOC2025/../../etc.pdf", "", false},
	}
	for _, tc := range cases {
		got, ok := refFromFileName(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("refFromFileName(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
