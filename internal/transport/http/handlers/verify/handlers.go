package verifyhandler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
)

type RequestSource interface {
	GetByReference(ctx context.Context, ref string) (request.Request, error)
}

type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

type Handler struct {
	Requests RequestSource
	Settings SettingsSource
}

func NewHandler(requests RequestSource, settingsSrc SettingsSource) *Handler {
	return &Handler{Requests: requests, Settings: settingsSrc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/verify", h.handleVerify)
}

// verification is the public view of a request. It deliberately exposes only
// what is printed on the certificate itself, and only once one was issued.
type verification struct {
	Valid       bool   `json:"valid"`
	ReferenceID string `json:"referenceId,omitempty"`
	FullName    string `json:"fullName,omitempty"`
	Status      string `json:"status,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	LeaveStart  string `json:"leaveStart,omitempty"`
	LeaveEnd    string `json:"leaveEnd,omitempty"`
	IssuedFor   string `json:"issuedFor,omitempty"`
	IssuedAt    string `json:"issuedAt,omitempty"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	ref := strings.TrimSpace(r.URL.Query().Get("ref"))
	if request.NormalizeReference(ref) == "" {
		api.Fail(w, http.StatusBadRequest, "missing_ref", "a reference id is required", reqID)
		return
	}

	stored, err := h.Requests.GetByReference(r.Context(), ref)
	if errors.Is(err, request.ErrNotFound) {
		api.Success(w, verification{Valid: false}, reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "verify_failed", "verification failed", reqID)
		return
	}

	layout := settings.DefaultDateFormat
	if set, err := h.Settings.Get(r.Context()); err == nil {
		layout = set.DateLayout()
	}

	out := verification{
		Valid:       stored.Status == request.StatusApproved,
		ReferenceID: stored.ReferenceID,
		Status:      stored.Status,
	}
	if out.Valid {
		out.FullName = stored.FullName
		out.Purpose = stored.Purpose
		out.IssuedFor = stored.VisitingCountry
		out.IssuedAt = stored.UpdatedAt.Format(layout)
		if stored.LeaveStart != nil {
			out.LeaveStart = stored.LeaveStart.Format(layout)
		}
		if stored.LeaveEnd != nil {
			out.LeaveEnd = stored.LeaveEnd.Format(layout)
		}
	}
	api.Success(w, out, reqID)
}
