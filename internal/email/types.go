package email

// Email is one outgoing message.
type Email struct {
	From     string
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// TemplateData feeds a named template.
type TemplateData map[string]interface{}

const (
	TemplateAgreementCreated = "agreement_created"
	TemplateAgreementSigned  = "agreement_signed"
)
