package settings

// Settings is the singleton organization profile used when rendering
// certificates and sending notifications. Image fields hold a URL or a local
// filesystem path; the *Path variants take precedence when set.
type Settings struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyEmail   string `json:"companyEmail"`
	CompanyLogo    string `json:"companyLogo"`

	HRName             string `json:"hrName"`
	HRTitle            string `json:"hrTitle"`
	SignatureImage     string `json:"signatureImage"`
	SignatureImagePath string `json:"signatureImagePath"`

	PDFHeaderImage     string `json:"pdfHeaderImage"`
	PDFHeaderImagePath string `json:"pdfHeaderImagePath"`
	PDFFooterImage     string `json:"pdfFooterImage"`
	PDFFooterImagePath string `json:"pdfFooterImagePath"`

	EmailFromName    string `json:"emailFromName"`
	EmailFromAddress string `json:"emailFromAddress"`

	// DateFormat is a Go time layout used for all dates shown on the
	// certificate and the verification page.
	DateFormat string `json:"dateFormat"`
}

const DefaultDateFormat = "January 2, 2006"

// Signature returns the preferred signature image reference.
func (s Settings) Signature() string {
	if s.SignatureImagePath != "" {
		return s.SignatureImagePath
	}
	return s.SignatureImage
}

// HeaderImage returns the preferred PDF header image reference.
func (s Settings) HeaderImage() string {
	if s.PDFHeaderImagePath != "" {
		return s.PDFHeaderImagePath
	}
	return s.PDFHeaderImage
}

// FooterImage returns the preferred PDF footer image reference.
func (s Settings) FooterImage() string {
	if s.PDFFooterImagePath != "" {
		return s.PDFFooterImagePath
	}
	return s.PDFFooterImage
}

func (s Settings) DateLayout() string {
	if s.DateFormat == "" {
		return DefaultDateFormat
	}
	return s.DateFormat
}
