package document

import (
	"html"
	"strconv"
	"strings"
	"time"

	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
)

// Placeholder tokens recognized in template content. Matching is literal
// substring replacement, not template evaluation.
const (
	TokenFullName        = "{{full_name}}"
	TokenEmployeeID      = "{{employee_id}}"
	TokenEmail           = "{{email}}"
	TokenReferenceID     = "{{reference_id}}"
	TokenJoiningDate     = "{{joining_date}}"
	TokenPosition        = "{{position}}"
	TokenDepartment      = "{{department}}"
	TokenVisitingCountry = "{{visiting_country}}"
	TokenPurpose         = "{{purpose}}"
	TokenLeaveStart      = "{{leave_start}}"
	TokenLeaveEnd        = "{{leave_end}}"
	TokenNumberOfDays    = "{{number_of_days}}"
	TokenIssueDate       = "{{issue_date}}"
	TokenQRCode          = "{{qr_code}}"
	TokenCompanyName     = "{{company_name}}"
	TokenCompanyLogo     = "{{company_logo}}"
	TokenCompanyAddress  = "{{company_address}}"
	TokenCompanyPhone    = "{{company_phone}}"
	TokenCompanyEmail    = "{{company_email}}"
	TokenHRName          = "{{hr_name}}"
	TokenHRTitle         = "{{hr_title}}"
	TokenSignature       = "{{signature}}"
)

// Placeholders maps tokens to final, pre-escaped display values for one
// render. Built fresh per generate/preview call and discarded afterwards.
type Placeholders struct {
	values   map[string]string
	replacer *strings.Replacer
}

// BuildPlaceholders resolves every token for one request. Textual values are
// HTML-escaped here so the renderer never re-escapes; image tokens are
// resolved through the image resolver up front.
func BuildPlaceholders(req request.Request, set settings.Settings, images *ImageResolver, qrDataURI string, now time.Time) *Placeholders {
	layout := set.DateLayout()

	values := map[string]string{
		TokenFullName:        html.EscapeString(req.FullName),
		TokenEmployeeID:      html.EscapeString(req.EmployeeID),
		TokenEmail:           html.EscapeString(req.Email),
		TokenReferenceID:     html.EscapeString(req.ReferenceID),
		TokenJoiningDate:     formatDate(req.JoiningDate, layout),
		TokenPosition:        html.EscapeString(req.Position),
		TokenDepartment:      html.EscapeString(req.Department),
		TokenVisitingCountry: html.EscapeString(req.VisitingCountry),
		TokenPurpose:         html.EscapeString(req.Purpose),
		TokenLeaveStart:      formatDate(req.LeaveStart, layout),
		TokenLeaveEnd:        formatDate(req.LeaveEnd, layout),
		TokenNumberOfDays:    strconv.Itoa(request.DayCount(req.LeaveStart, req.LeaveEnd)),
		TokenIssueDate:       now.Format(layout),
		TokenQRCode:          qrDataURI,
		TokenCompanyName:     html.EscapeString(set.CompanyName),
		TokenCompanyLogo:     images.Resolve(set.CompanyLogo),
		TokenCompanyAddress:  html.EscapeString(set.CompanyAddress),
		TokenCompanyPhone:    html.EscapeString(set.CompanyPhone),
		TokenCompanyEmail:    html.EscapeString(set.CompanyEmail),
		TokenHRName:          html.EscapeString(set.HRName),
		TokenHRTitle:         html.EscapeString(set.HRTitle),
		TokenSignature:       images.Resolve(set.Signature()),
	}

	return NewPlaceholders(values)
}

func NewPlaceholders(values map[string]string) *Placeholders {
	pairs := make([]string, 0, len(values)*2)
	for token, value := range values {
		pairs = append(pairs, token, value)
	}
	return &Placeholders{
		values:   values,
		replacer: strings.NewReplacer(pairs...),
	}
}

// Apply substitutes every known token in content. Replacement is a single
// pass: substituted values are never rescanned, and unknown tokens are left
// untouched.
func (p *Placeholders) Apply(content string) string {
	if p == nil || content == "" {
		return content
	}
	return p.replacer.Replace(content)
}

// Get returns the resolved value for one token.
func (p *Placeholders) Get(token string) string {
	if p == nil {
		return ""
	}
	return p.values[token]
}

func formatDate(t *time.Time, layout string) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
