package templatehandler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/template"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
)

const maxTemplateBytes = 512 * 1024

type TemplateStore interface {
	GetRaw(ctx context.Context) ([]byte, error)
	PutRaw(ctx context.Context, raw []byte) error
}

type Previewer interface {
	Preview(ctx context.Context) ([]byte, error)
}

type Handler struct {
	Store     TemplateStore
	Previewer Previewer
}

func NewHandler(store TemplateStore, previewer Previewer) *Handler {
	return &Handler{Store: store, Previewer: previewer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/template", h.handleGet)
	r.Put("/template", h.handlePut)
	r.Post("/template/preview", h.handlePreview)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	raw, err := h.Store.GetRaw(r.Context())
	if errors.Is(err, template.ErrNotFound) {
		defaults, marshalErr := json.Marshal(template.DefaultBlocks())
		if marshalErr != nil {
			api.Fail(w, http.StatusInternalServerError, "template_failed", "failed to load template", reqID)
			return
		}
		api.Success(w, map[string]any{"blocks": json.RawMessage(defaults), "isDefault": true}, reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_failed", "failed to load template", reqID)
		return
	}
	api.Success(w, map[string]any{"blocks": json.RawMessage(raw), "isDefault": false}, reqID)
}

type putPayload struct {
	Blocks json.RawMessage `json:"blocks"`
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxTemplateBytes))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	var payload putPayload
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Blocks) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "a blocks array is required", reqID)
		return
	}

	// The payload must at least be a JSON array. Unknown block kinds are
	// stored as-is; the renderer skips them.
	var probe []template.Block
	if err := json.Unmarshal(payload.Blocks, &probe); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_template", "blocks must be a JSON array of blocks", reqID)
		return
	}

	if err := h.Store.PutRaw(r.Context(), payload.Blocks); err != nil {
		slog.Error("template save failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "template_save_failed", "failed to save template", reqID)
		return
	}
	api.Success(w, map[string]any{"saved": true}, reqID)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	data, err := h.Previewer.Preview(r.Context())
	if errors.Is(err, template.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "template_not_found", "no template found", reqID)
		return
	}
	if err != nil {
		slog.Error("template preview failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "preview_failed", "failed to render preview", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="noc-preview.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
