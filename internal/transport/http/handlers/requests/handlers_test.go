package requesthandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"nocman/internal/domain/request"
)

type fakeStore struct {
	requests   map[int64]request.Request
	nextID     int64
	approved   map[int64]string
	rejected   map[int64]string
	insertErr  error
	listResult request.ListResult
	listFilter request.ListFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: map[int64]request.Request{},
		nextID:   1,
		approved: map[int64]string{},
		rejected: map[int64]string{},
	}
}

func (f *fakeStore) Insert(_ context.Context, payload request.SubmitPayload, joining, leaveStart, leaveEnd *time.Time) (int64, string, error) {
	if f.insertErr != nil {
		return 0, "", f.insertErr
	}
	id := f.nextID
	f.nextID++
	ref := "NOC2025TESTREF1"
	f.requests[id] = request.Request{
		ID:              id,
		ReferenceID:     ref,
		FullName:        payload.FullName,
		EmployeeID:      payload.EmployeeID,
		Email:           payload.Email,
		JoiningDate:     joining,
		VisitingCountry: payload.VisitingCountry,
		Purpose:         payload.Purpose,
		LeaveStart:      leaveStart,
		LeaveEnd:        leaveEnd,
		Status:          request.StatusPending,
	}
	return id, ref, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (request.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return req, nil
}

func (f *fakeStore) List(_ context.Context, filter request.ListFilter) (request.ListResult, error) {
	f.listFilter = filter
	return f.listResult, nil
}

func (f *fakeStore) Approve(_ context.Context, id int64, pdfURL, hrNote string) error {
	req, ok := f.requests[id]
	if !ok {
		return request.ErrNotFound
	}
	if req.Status != request.StatusPending {
		return request.ErrInvalidState
	}
	req.Status = request.StatusApproved
	req.PDFURL = pdfURL
	req.HRNote = hrNote
	f.requests[id] = req
	f.approved[id] = pdfURL
	return nil
}

func (f *fakeStore) Reject(_ context.Context, id int64, hrNote string) error {
	req, ok := f.requests[id]
	if !ok {
		return request.ErrNotFound
	}
	if req.Status != request.StatusPending {
		return request.ErrInvalidState
	}
	req.Status = request.StatusRejected
	req.HRNote = hrNote
	f.requests[id] = req
	f.rejected[id] = hrNote
	return nil
}

type fakeCerts struct {
	generateErr error
	generated   []int64
}

func (f *fakeCerts) Generate(_ context.Context, id int64) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	f.generated = append(f.generated, id)
	return "/files/noc-pdfs/noc-NOC2025TESTREF1.pdf", nil
}

func (f *fakeCerts) Open(string) (string, []byte, error) {
	return "noc-NOC2025TESTREF1.pdf", []byte("pdf"), nil
}

type fakeNotify struct {
	submitted []string
	approved  []string
	rejected  []string
	attached  [][]byte
}

func (f *fakeNotify) Submitted(_ context.Context, req request.Request) {
	f.submitted = append(f.submitted, req.ReferenceID)
}

func (f *fakeNotify) Approved(_ context.Context, req request.Request, _ string, data []byte) {
	f.approved = append(f.approved, req.ReferenceID)
	f.attached = append(f.attached, data)
}

func (f *fakeNotify) Rejected(_ context.Context, req request.Request) {
	f.rejected = append(f.rejected, req.ReferenceID)
}

func newTestRouter(store *fakeStore, certs *fakeCerts, notify *fakeNotify) http.Handler {
	h := NewHandler(store, certs, notify)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	h.RegisterAdminRoutes(r)
	return r
}

func submitBody() []byte {
	body, _ := json.Marshal(map[string]string{
		"fullName":        "Jane Doe",
		"employeeId":      "E-1001",
		"email":           "jane@example.com",
		"visitingCountry": "Japan",
		"purpose":         "Tourism",
		"leaveStart":      "2025-04-01",
		"leaveEnd":        "2025-04-05",
	})
	return body
}

func TestSubmitCreatesRequestAndNotifies(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotify{}
	router := newTestRouter(store, &fakeCerts{}, notify)

	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(submitBody()))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.requests) != 1 {
		t.Fatalf("expected 1 stored request, got %d", len(store.requests))
	}
	if len(notify.submitted) != 1 {
		t.Fatalf("expected submission email, got %d", len(notify.submitted))
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			ReferenceID string `json:"referenceId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || envelope.Data.ReferenceID == "" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestSubmitValidation(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, &fakeCerts{}, &fakeNotify{})

	body, _ := json.Marshal(map[string]string{
		"fullName":   "Jane Doe",
		"email":      "not-an-email",
		"leaveStart": "2025-04-05",
		"leaveEnd":   "2025-04-01",
	})
	req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(store.requests) != 0 {
		t.Fatal("invalid payload must not be stored")
	}
}

func TestApproveGeneratesPDFThenTransitions(t *testing.T) {
	store := newFakeStore()
	certs := &fakeCerts{}
	notify := &fakeNotify{}
	router := newTestRouter(store, certs, notify)

	// seed one pending request
	submit := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(submitBody()))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodPost, "/requests/1/approve", bytes.NewReader([]byte(`{"hrNote":"ok"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(certs.generated) != 1 {
		t.Fatalf("expected one certificate generation, got %d", len(certs.generated))
	}
	if store.requests[1].Status != request.StatusApproved {
		t.Fatalf("expected approved status, got %q", store.requests[1].Status)
	}
	if store.approved[1] == "" {
		t.Fatal("pdf url must be recorded on approval")
	}
	if len(notify.approved) != 1 {
		t.Fatal("expected approval email")
	}
	if len(notify.attached) != 1 || string(notify.attached[0]) != "pdf" {
		t.Fatal("approval email must carry the certificate")
	}
}

func TestApproveFailedGenerationLeavesPending(t *testing.T) {
	store := newFakeStore()
	certs := &fakeCerts{generateErr: context.DeadlineExceeded}
	notify := &fakeNotify{}
	router := newTestRouter(store, certs, notify)

	submit := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(submitBody()))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodPost, "/requests/1/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if store.requests[1].Status != request.StatusPending {
		t.Fatalf("request must stay pending after a failed generation, got %q", store.requests[1].Status)
	}
	if len(notify.approved) != 0 {
		t.Fatal("no approval email after a failed generation")
	}
}

func TestApproveNonPendingConflicts(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(store, &fakeCerts{}, &fakeNotify{})

	submit := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(submitBody()))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	first := httptest.NewRequest(http.MethodPost, "/requests/1/approve", nil)
	router.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/requests/1/approve", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, second)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for repeat approval, got %d", rec.Code)
	}
}

func TestRejectRequiresNote(t *testing.T) {
	store := newFakeStore()
	notify := &fakeNotify{}
	router := newTestRouter(store, &fakeCerts{}, notify)

	submit := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewReader(submitBody()))
	router.ServeHTTP(httptest.NewRecorder(), submit)

	req := httptest.NewRequest(http.MethodPost, "/requests/1/reject", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a note, got %d", rec.Code)
	}
	if store.requests[1].Status != request.StatusPending {
		t.Fatal("request must stay pending")
	}

	withNote := httptest.NewRequest(http.MethodPost, "/requests/1/reject", bytes.NewReader([]byte(`{"hrNote":"incomplete details"}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withNote)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if store.rejected[1] != "incomplete details" {
		t.Fatalf("note not recorded: %q", store.rejected[1])
	}
	if len(notify.rejected) != 1 {
		t.Fatal("expected rejection email")
	}
}

func TestGetUnknownRequest(t *testing.T) {
	router := newTestRouter(newFakeStore(), &fakeCerts{}, &fakeNotify{})

	req := httptest.NewRequest(http.MethodGet, "/requests/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListPassesFilters(t *testing.T) {
	store := newFakeStore()
	store.listResult = request.ListResult{Total: 0}
	router := newTestRouter(store, &fakeCerts{}, &fakeNotify{})

	req := httptest.NewRequest(http.MethodGet, "/requests?status=pending&search=jane&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if store.listFilter.Status != request.StatusPending {
		t.Fatalf("status filter = %q", store.listFilter.Status)
	}
	if store.listFilter.Search != "jane" {
		t.Fatalf("search filter = %q", store.listFilter.Search)
	}
	if store.listFilter.Limit != 5 || store.listFilter.Offset != 10 {
		t.Fatalf("pagination = %d/%d", store.listFilter.Limit, store.listFilter.Offset)
	}
}
