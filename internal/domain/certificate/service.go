package certificate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nocman/internal/domain/document"
	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
	"nocman/internal/domain/template"
	"nocman/internal/platform/crypto"
	"nocman/internal/platform/metrics"
	"nocman/internal/platform/pdf"
	"nocman/internal/platform/qr"
)

var ErrFileNotFound = errors.New("certificate file not found")

// PublicPathPrefix is where generated certificates are served from.
const PublicPathPrefix = "/files/noc-pdfs"

type RequestSource interface {
	GetByID(ctx context.Context, id int64) (request.Request, error)
}

type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

type TemplateSource interface {
	Get(ctx context.Context) ([]template.Block, error)
}

// Service runs the certificate pipeline: load request and template, resolve
// placeholders, render blocks to HTML, print to PDF, persist. Failures leave
// no partial file behind.
type Service struct {
	Requests  RequestSource
	Settings  SettingsSource
	Templates TemplateSource
	Engine    pdf.Engine
	Images    *document.ImageResolver
	Crypto    *crypto.Service
	Metrics   *metrics.Collector

	SiteURL    string
	StorageDir string

	// Now is the clock used for the issue date. Overridable in tests.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Generate renders and persists the certificate for one request and returns
// its public URL path.
func (s *Service) Generate(ctx context.Context, requestID int64) (string, error) {
	req, err := s.Requests.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	data, err := s.render(ctx, req)
	if err != nil {
		return "", err
	}

	name := fileName(req.ReferenceID)
	if err := s.persist(name, data); err != nil {
		return "", fmt.Errorf("persist certificate: %w", err)
	}
	return PublicPathPrefix + "/" + name, nil
}

// Preview renders a certificate for fabricated sample data without touching
// storage. Used by the template editor.
func (s *Service) Preview(ctx context.Context) ([]byte, error) {
	now := s.now()
	start := now.AddDate(0, 0, 7)
	end := now.AddDate(0, 0, 14)
	joined := now.AddDate(-3, 0, 0)

	sample := request.Request{
		ReferenceID:     "NOC2025A1B2C3D4",
		FullName:        "John Doe",
		EmployeeID:      "11111111",
		Email:           "john.doe@example.com",
		JoiningDate:     &joined,
		Position:        "Software Engineer",
		Department:      "Engineering",
		VisitingCountry: "Japan",
		Purpose:         "Tourism",
		LeaveStart:      &start,
		LeaveEnd:        &end,
		Status:          request.StatusApproved,
	}
	return s.render(ctx, sample)
}

func (s *Service) render(ctx context.Context, req request.Request) ([]byte, error) {
	set, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	// No template, no certificate. Seeding installs the stock template on
	// startup, so hitting this means the installation is broken.
	blocks, err := s.Templates.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("load template: %w", template.ErrNotFound)
	}

	// The QR code is best effort. A certificate without one is still valid.
	qrURI := ""
	if req.ReferenceID != "" {
		qrURI, err = qr.DataURI(s.verifyURL(req.ReferenceID))
		if err != nil {
			slog.Warn("qr code generation failed", "reference", req.ReferenceID, "err", err)
			qrURI = ""
		}
	}

	placeholders := document.BuildPlaceholders(req, set, s.Images, qrURI, s.now())
	renderer := document.NewRenderer(placeholders, s.Images, nil)
	fragment := renderer.RenderBlocks(blocks)
	htmlDoc := document.NewComposer(s.Images).Compose(fragment, set)

	data, err := s.Engine.Render(ctx, htmlDoc, pdf.Options{PageSize: "A4", Orientation: "portrait"})
	if s.Metrics != nil {
		s.Metrics.RecordPDF(err)
	}
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return data, nil
}

// Open loads a stored certificate by reference id, decrypting when the file
// was written encrypted.
func (s *Service) Open(ref string) (string, []byte, error) {
	name := fileName(ref)

	if data, err := os.ReadFile(filepath.Join(s.StorageDir, name+".enc")); err == nil {
		plain, err := s.Crypto.Decrypt(data)
		if err != nil {
			return "", nil, fmt.Errorf("decrypt certificate: %w", err)
		}
		return name, plain, nil
	}

	data, err := os.ReadFile(filepath.Join(s.StorageDir, name))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil, ErrFileNotFound
	}
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

func (s *Service) persist(name string, data []byte) error {
	if err := os.MkdirAll(s.StorageDir, 0o755); err != nil {
		return err
	}
	if s.Crypto != nil && s.Crypto.Configured() {
		enc, err := s.Crypto.Encrypt(data)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(s.StorageDir, name+".enc"), enc, 0o600)
	}
	return os.WriteFile(filepath.Join(s.StorageDir, name), data, 0o600)
}

func (s *Service) verifyURL(ref string) string {
	return strings.TrimRight(s.SiteURL, "/") + "/api/v1/verify?ref=" + url.QueryEscape(ref)
}

func fileName(ref string) string {
	return "noc-" + sanitizeFileName(ref) + ".pdf"
}

// sanitizeFileName keeps only characters safe in a filename.
func sanitizeFileName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
