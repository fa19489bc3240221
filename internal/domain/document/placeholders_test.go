package document

import (
	"strings"
	"testing"
	"time"

	"nocman/internal/domain/request"
	"nocman/internal/domain/settings"
)

func sampleRequest() request.Request {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	joined := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	return request.Request{
		ReferenceID:     "NOC2025AB12CD34",
		FullName:        "Jane Doe",
		EmployeeID:      "E-1001",
		Email:           "jane@example.com",
		JoiningDate:     &joined,
		Position:        "Engineer",
		Department:      "R&D",
		VisitingCountry: "Japan",
		Purpose:         "Tourism",
		LeaveStart:      &start,
		LeaveEnd:        &end,
		Status:          request.StatusPending,
	}
}

func TestBuildPlaceholdersValues(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	set := settings.Settings{CompanyName: "Acme Corp", HRName: "Pat Smith"}
	p := BuildPlaceholders(sampleRequest(), set, newResolver(nil), "data:image/png;base64,QR", now)

	if got := p.Get(TokenFullName); got != "Jane Doe" {
		t.Fatalf("full name = %q", got)
	}
	if got := p.Get(TokenNumberOfDays); got != "3" {
		t.Fatalf("number of days = %q, want 3", got)
	}
	if got := p.Get(TokenIssueDate); got != "March 1, 2025" {
		t.Fatalf("issue date = %q", got)
	}
	if got := p.Get(TokenLeaveStart); got != "March 10, 2025" {
		t.Fatalf("leave start = %q", got)
	}
	if got := p.Get(TokenQRCode); got != "data:image/png;base64,QR" {
		t.Fatalf("qr code = %q", got)
	}
	if got := p.Get(TokenDepartment); got != "R&amp;D" {
		t.Fatalf("department should be escaped, got %q", got)
	}
}

func TestBuildPlaceholdersEscapesText(t *testing.T) {
	req := sampleRequest()
	req.FullName = `<script>alert("x")</script>`
	p := BuildPlaceholders(req, settings.Settings{}, newResolver(nil), "", time.Now())

	got := p.Get(TokenFullName)
	if strings.Contains(got, "<script>") {
		t.Fatalf("markup must be escaped, got %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %q", got)
	}
}

func TestApplySubstitutesTokens(t *testing.T) {
	p := NewPlaceholders(map[string]string{
		TokenFullName:    "Jane Doe",
		TokenCompanyName: "Acme Corp",
	})
	got := p.Apply("Hello {{full_name}} of {{company_name}}")
	if got != "Hello Jane Doe of Acme Corp" {
		t.Fatalf("Apply = %q", got)
	}
}

func TestApplyLeavesUnknownTokens(t *testing.T) {
	p := NewPlaceholders(map[string]string{TokenFullName: "Jane Doe"})
	got := p.Apply("{{full_name}} {{unknown_token}}")
	if got != "Jane Doe {{unknown_token}}" {
		t.Fatalf("unknown token must pass through, got %q", got)
	}
}

func TestApplySinglePass(t *testing.T) {
	// A substituted value that happens to contain a token must not be
	// expanded again.
	p := NewPlaceholders(map[string]string{
		TokenFullName:    "{{company_name}}",
		TokenCompanyName: "Acme Corp",
	})
	got := p.Apply("{{full_name}}")
	if got != "{{company_name}}" {
		t.Fatalf("substitution must be single pass, got %q", got)
	}
}

func TestApplyDeterministic(t *testing.T) {
	p := BuildPlaceholders(sampleRequest(), settings.Settings{CompanyName: "Acme"}, newResolver(nil), "", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	input := "{{full_name}} {{reference_id}} {{number_of_days}} {{company_name}}"
	first := p.Apply(input)
	for i := 0; i < 10; i++ {
		if got := p.Apply(input); got != first {
			t.Fatalf("Apply not deterministic: %q vs %q", got, first)
		}
	}
}

func TestFormatDateNil(t *testing.T) {
	p := BuildPlaceholders(request.Request{}, settings.Settings{}, newResolver(nil), "", time.Now())
	if got := p.Get(TokenJoiningDate); got != "" {
		t.Fatalf("nil date should format empty, got %q", got)
	}
	if got := p.Get(TokenNumberOfDays); got != "0" {
		t.Fatalf("missing dates should count 0 days, got %q", got)
	}
}
