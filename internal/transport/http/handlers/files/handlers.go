package fileshandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/certificate"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
)

type Opener interface {
	Open(ref string) (string, []byte, error)
}

// Handler serves generated certificates. Files are stored possibly encrypted,
// so serving goes through the certificate service instead of a static dir.
type Handler struct {
	Certificates Opener
}

func NewHandler(certs Opener) *Handler {
	return &Handler{Certificates: certs}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/files/noc-pdfs/{name}", h.handleDownload)
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	name := chi.URLParam(r, "name")
	ref, ok := refFromFileName(name)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_name", "invalid file name", reqID)
		return
	}

	fileName, data, err := h.Certificates.Open(ref)
	if errors.Is(err, certificate.ErrFileNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "file not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "download_failed", "failed to read file", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// refFromFileName extracts the reference id from a noc-<ref>.pdf name and
// rejects anything that could walk the filesystem.
func refFromFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, "noc-") || !strings.HasSuffix(name, ".pdf") {
		return "", false
	}
	ref := strings.TrimSuffix(strings.TrimPrefix(name, "noc-"), ".pdf")
	if ref == "" {
		return "", false
	}
	for _, r := range ref {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return "", false
		}
	}
	return ref, true
}
