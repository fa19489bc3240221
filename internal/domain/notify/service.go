package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
	"nocman/internal/platform/email"
)

type SettingsSource interface {
	Get(ctx context.Context) (settings.Settings, error)
}

// Service sends the transactional emails around a request's lifecycle. All
// sends are best effort: a failed email never fails the operation that
// triggered it, it only logs.
type Service struct {
	Mailer   email.Mailer
	Settings SettingsSource
	SiteURL  string
}

func NewService(mailer email.Mailer, settings SettingsSource, siteURL string) *Service {
	return &Service{Mailer: mailer, Settings: settings, SiteURL: strings.TrimRight(siteURL, "/")}
}

// Submitted confirms receipt of a new request to the employee.
func (s *Service) Submitted(ctx context.Context, req request.Request) {
	set := s.settings(ctx)
	subject := fmt.Sprintf("NOC Request Received - %s", req.ReferenceID)
	body := s.wrap(set, fmt.Sprintf(`
<p>Dear %s,</p>
<p>We have received your No Objection Certificate request. Your reference
number is <strong>%s</strong>. Please keep it for your records.</p>
%s
<p>You will be notified by email once your request has been reviewed.</p>`,
		html.EscapeString(req.FullName),
		html.EscapeString(req.ReferenceID),
		s.detailsTable(req, set),
	))
	s.send(ctx, req.Email, subject, body)
}

// Approved notifies the employee and attaches the generated certificate when
// its bytes are available.
func (s *Service) Approved(ctx context.Context, req request.Request, pdfName string, pdfData []byte) {
	set := s.settings(ctx)
	subject := fmt.Sprintf("NOC Request Approved - %s", req.ReferenceID)
	body := s.wrap(set, fmt.Sprintf(`
<p>Dear %s,</p>
<p>Your No Objection Certificate request <strong>%s</strong> has been
approved. Your certificate is attached to this email.</p>
%s
<p>The authenticity of the certificate can be confirmed at any time using the
QR code printed on it.</p>`,
		html.EscapeString(req.FullName),
		html.EscapeString(req.ReferenceID),
		s.detailsTable(req, set),
	))

	var attachments []email.Attachment
	if len(pdfData) > 0 {
		attachments = append(attachments, email.Attachment{
			Filename:    pdfName,
			ContentType: "application/pdf",
			Data:        pdfData,
		})
	}
	s.send(ctx, req.Email, subject, body, attachments...)
}

// Rejected notifies the employee, including the reviewer's note when one was
// recorded.
func (s *Service) Rejected(ctx context.Context, req request.Request) {
	set := s.settings(ctx)
	subject := fmt.Sprintf("NOC Request Update - %s", req.ReferenceID)

	note := ""
	if strings.TrimSpace(req.HRNote) != "" {
		note = fmt.Sprintf("<p><strong>Note from HR:</strong> %s</p>", html.EscapeString(req.HRNote))
	}
	body := s.wrap(set, fmt.Sprintf(`
<p>Dear %s,</p>
<p>We regret to inform you that your No Objection Certificate request
<strong>%s</strong> could not be approved at this time.</p>
%s
<p>If you have any questions, please contact the HR department.</p>`,
		html.EscapeString(req.FullName),
		html.EscapeString(req.ReferenceID),
		note,
	))
	s.send(ctx, req.Email, subject, body)
}

func (s *Service) send(ctx context.Context, to, subject, body string, attachments ...email.Attachment) {
	if err := s.Mailer.Send(ctx, to, subject, body, attachments...); err != nil {
		slog.Warn("email send failed", "to", to, "subject", subject, "err", err)
	}
}

func (s *Service) settings(ctx context.Context) settings.Settings {
	set, err := s.Settings.Get(ctx)
	if err != nil {
		slog.Warn("settings load failed for email", "err", err)
		return settings.Settings{}
	}
	return set
}

func (s *Service) detailsTable(req request.Request, set settings.Settings) string {
	layout := set.DateLayout()
	rows := [][2]string{
		{"Reference", req.ReferenceID},
		{"Visiting Country", req.VisitingCountry},
		{"Purpose", req.Purpose},
		{"Leave Period", formatRange(req.LeaveStart, req.LeaveEnd, layout)},
	}
	var b strings.Builder
	b.WriteString(`<table cellpadding="6" cellspacing="0" border="0" style="border-collapse: collapse;">`)
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(&b,
			`<tr><td style="color: #555;">%s</td><td><strong>%s</strong></td></tr>`,
			html.EscapeString(row[0]), html.EscapeString(row[1]))
	}
	b.WriteString("</table>")
	return b.String()
}

func (s *Service) wrap(set settings.Settings, body string) string {
	company := set.CompanyName
	if company == "" {
		company = "HR Department"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; font-size: 14px; color: #1a1a1a;">
<div style="max-width: 600px; margin: 0 auto;">
%s
<p style="margin-top: 24px;">Regards,<br />%s</p>
</div>
</body>
</html>`, body, html.EscapeString(company))
}

func formatRange(start, end *time.Time, layout string) string {
	if start == nil || end == nil {
		return ""
	}
	return start.Format(layout) + " to " + end.Format(layout)
}
