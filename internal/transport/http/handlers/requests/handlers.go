package requesthandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/request"
	"nocman/internal/requestctx"
	"nocman/internal/transport/http/api"
	"nocman/internal/transport/http/shared"
)

type RequestStore interface {
	Insert(ctx context.Context, payload request.SubmitPayload, joining, leaveStart, leaveEnd *time.Time) (int64, string, error)
	GetByID(ctx context.Context, id int64) (request.Request, error)
	List(ctx context.Context, filter request.ListFilter) (request.ListResult, error)
	Approve(ctx context.Context, id int64, pdfURL, hrNote string) error
	Reject(ctx context.Context, id int64, hrNote string) error
}

type CertificateService interface {
	Generate(ctx context.Context, requestID int64) (string, error)
	Open(ref string) (string, []byte, error)
}

type Notifier interface {
	Submitted(ctx context.Context, req request.Request)
	Approved(ctx context.Context, req request.Request, pdfName string, pdfData []byte)
	Rejected(ctx context.Context, req request.Request)
}

type Handler struct {
	Store        RequestStore
	Certificates CertificateService
	Notify       Notifier
}

func NewHandler(store RequestStore, certs CertificateService, notify Notifier) *Handler {
	return &Handler{Store: store, Certificates: certs, Notify: notify}
}

// RegisterPublicRoutes mounts the employee-facing submission endpoint.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/requests", h.handleSubmit)
}

// RegisterAdminRoutes mounts the review endpoints. The caller wraps them in
// the admin auth requirement.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/requests", h.handleList)
	r.Get("/requests/{requestID}", h.handleGet)
	r.Post("/requests/{requestID}/approve", h.handleApprove)
	r.Post("/requests/{requestID}/reject", h.handleReject)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	var payload request.SubmitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("fullName", payload.FullName, "full name is required")
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("email", payload.Email, "email is required")
	v.Email("email", payload.Email)
	v.Required("visitingCountry", payload.VisitingCountry, "visiting country is required")
	v.Required("purpose", payload.Purpose, "purpose is required")
	v.Required("leaveStart", payload.LeaveStart, "leave start date is required")
	v.Required("leaveEnd", payload.LeaveEnd, "leave end date is required")

	var leaveStart, leaveEnd time.Time
	if strings.TrimSpace(payload.LeaveStart) != "" {
		leaveStart, _ = v.Date("leaveStart", payload.LeaveStart)
	}
	if strings.TrimSpace(payload.LeaveEnd) != "" {
		leaveEnd, _ = v.Date("leaveEnd", payload.LeaveEnd)
	}
	v.DateOrder("leaveStart", leaveStart, "leaveEnd", leaveEnd)

	var joining time.Time
	if strings.TrimSpace(payload.JoiningDate) != "" {
		joining, _ = v.Date("joiningDate", payload.JoiningDate)
	}

	if v.Reject(w, reqID) {
		return
	}

	id, ref, err := h.Store.Insert(r.Context(), payload, timePtr(joining), timePtr(leaveStart), timePtr(leaveEnd))
	if err != nil {
		slog.Error("request insert failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "submit_failed", "failed to submit request", reqID)
		return
	}

	if stored, err := h.Store.GetByID(r.Context(), id); err == nil {
		h.Notify.Submitted(r.Context(), stored)
	}

	api.Created(w, map[string]any{"id": id, "referenceId": ref}, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())
	query := r.URL.Query()

	filter := request.ListFilter{
		Status: strings.ToLower(strings.TrimSpace(query.Get("status"))),
		Search: strings.TrimSpace(query.Get("search")),
	}
	if raw := query.Get("from"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil && !parsed.IsZero() {
			filter.DateFrom = &parsed
		}
	}
	if raw := query.Get("to"); raw != "" {
		if parsed, err := shared.ParseDate(raw); err == nil && !parsed.IsZero() {
			filter.DateTo = &parsed
		}
	}

	page := shared.ParsePagination(r, 20, 100)
	filter.Limit = page.Limit
	filter.Offset = page.Offset

	result, err := h.Store.List(r.Context(), filter)
	if err != nil {
		slog.Error("request list failed", "err", err, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list requests", reqID)
		return
	}
	if result.Requests == nil {
		result.Requests = []request.Request{}
	}
	api.Success(w, result, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	id, ok := parseRequestID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", reqID)
		return
	}

	stored, err := h.Store.GetByID(r.Context(), id)
	if errors.Is(err, request.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load request", reqID)
		return
	}
	api.Success(w, stored, reqID)
}

type reviewPayload struct {
	HRNote string `json:"hrNote"`
}

// handleApprove generates the certificate before touching the request row.
// A failed generation leaves the request pending so the admin can retry.
func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	id, ok := parseRequestID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", reqID)
		return
	}

	var payload reviewPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	stored, err := h.Store.GetByID(r.Context(), id)
	if errors.Is(err, request.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load request", reqID)
		return
	}
	if !request.CanTransition(stored.Status, request.StatusApproved) {
		api.Fail(w, http.StatusConflict, "invalid_state", "request is not pending", reqID)
		return
	}

	pdfURL, err := h.Certificates.Generate(r.Context(), id)
	if err != nil {
		slog.Error("certificate generation failed", "err", err, "id", id, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to generate certificate", reqID)
		return
	}

	if err := h.Store.Approve(r.Context(), id, pdfURL, payload.HRNote); err != nil {
		if errors.Is(err, request.ErrInvalidState) {
			api.Fail(w, http.StatusConflict, "invalid_state", "request is not pending", reqID)
			return
		}
		slog.Error("request approve failed", "err", err, "id", id, "requestId", reqID)
		api.Fail(w, http.StatusInternalServerError, "approve_failed", "failed to approve request", reqID)
		return
	}

	updated, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		updated = stored
		updated.Status = request.StatusApproved
		updated.PDFURL = pdfURL
	}

	pdfName, pdfData, openErr := h.Certificates.Open(updated.ReferenceID)
	if openErr != nil {
		slog.Warn("certificate open for email failed", "err", openErr, "reference", updated.ReferenceID)
	}
	h.Notify.Approved(r.Context(), updated, pdfName, pdfData)

	api.Success(w, updated, reqID)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	reqID := requestctx.GetRequestID(r.Context())

	id, ok := parseRequestID(r)
	if !ok {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid request id", reqID)
		return
	}

	var payload reviewPayload
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}
	if strings.TrimSpace(payload.HRNote) == "" {
		api.Fail(w, http.StatusBadRequest, "note_required", "a rejection note is required", reqID)
		return
	}

	if err := h.Store.Reject(r.Context(), id, payload.HRNote); err != nil {
		switch {
		case errors.Is(err, request.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", reqID)
		case errors.Is(err, request.ErrInvalidState):
			api.Fail(w, http.StatusConflict, "invalid_state", "request is not pending", reqID)
		default:
			slog.Error("request reject failed", "err", err, "id", id, "requestId", reqID)
			api.Fail(w, http.StatusInternalServerError, "reject_failed", "failed to reject request", reqID)
		}
		return
	}

	updated, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "get_failed", "failed to load request", reqID)
		return
	}
	h.Notify.Rejected(r.Context(), updated)

	api.Success(w, updated, reqID)
}

func parseRequestID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "requestID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
