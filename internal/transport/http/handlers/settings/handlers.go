package settingshandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/settings"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
	"nocman/internal/transport/http/shared"
)

type SettingsStore interface {
	Get(ctx context.Context) (settings.Settings, error)
	Update(ctx context.Context, set settings.Settings) error
}

type Handler struct {
	Store SettingsStore
}

func NewHandler(store SettingsStore) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Put("/settings", h.handlePut)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	set, err := h.Store.Get(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "settings_failed", "failed to load settings", reqID)
		return
	}
	api.Success(w, set, reqID)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Email("companyEmail", payload.CompanyEmail)
	v.Email("emailFromAddress", payload.EmailFromAddress)
	if payload.DateFormat != "" {
		// A usable layout must round-trip a reference date.
		formatted := time.Date(2006, 1, 2, 0, 0, 0, 0, time.UTC).Format(payload.DateFormat)
		if formatted == payload.DateFormat {
			v.Add("dateFormat", "must be a valid Go time layout")
		}
	}
	if v.Reject(w, reqID) {
		return
	}

	if err := h.Store.Update(r.Context(), payload); err != nil {
		slog.Error("settings update failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "settings_save_failed", "failed to save settings", reqID)
		return
	}
	api.Success(w, payload, reqID)
}
