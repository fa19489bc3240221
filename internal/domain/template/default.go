package template

func str(s string) *string { return &s }

func text(content string) []*string { return []*string{str(content)} }

// DefaultBlocks is the stock formal-letter template installed on first run.
// Administrators replace it through the template designer.
func DefaultBlocks() []Block {
	return []Block{
		{Kind: KindParagraph, InnerContent: text("<strong>Date:</strong> {{issue_date}}")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 10}},
		{Kind: KindParagraph, InnerContent: text("To whom it may concern")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 10}},
		{Kind: KindParagraph, InnerContent: text("<strong>Subject:</strong> Regarding No Objection Letter for {{full_name}}")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 10}},
		{Kind: KindParagraph, InnerContent: text("This letter is to confirm that <strong>{{full_name}}</strong> (Employee ID: <strong>{{employee_id}}</strong>) is an employee with our company on a full-time basis. He has been with {{company_name}} since {{joining_date}}. He is currently working as <strong>{{position}}</strong> at the <strong>{{department}}</strong> Department of {{company_name}}.")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 8}},
		{Kind: KindParagraph, InnerContent: text("Mr./Ms. {{full_name}} has expressed interest in visiting <strong>{{visiting_country}}</strong>, for {{purpose}}. Our organization has no objection regarding his/her visit to {{visiting_country}}, for <strong>{{number_of_days}}</strong> days. His/her leave for that trip has been sanctioned from <strong>{{leave_start}}</strong> to <strong>{{leave_end}}</strong>. On the expiry of consent, he/she will report for duty as soon as he/she returns.")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 8}},
		{Kind: KindParagraph, InnerContent: text("Please feel free to contact me if your office should require any further information.")},
		{Kind: KindSpacer, Attributes: map[string]any{"height": 20}},
		{Kind: KindImage, Attributes: map[string]any{
			"url":    "{{signature}}",
			"alt":    "HR Signature",
			"align":  "left",
			"width":  100,
			"height": 50,
		}},
		{Kind: KindParagraph, InnerContent: text("{{hr_name}}<br/>{{hr_title}}<br/>{{company_name}}<br/>{{company_address}}<br/>Email: {{company_email}}<br/>Phone: {{company_phone}}<br/>Reference ID: <strong>{{reference_id}}</strong>")},
		{Kind: KindImage, Attributes: map[string]any{
			"url":    "{{qr_code}}",
			"alt":    "QR Code",
			"align":  "center",
			"width":  60,
			"height": 60,
		}},
	}
}
