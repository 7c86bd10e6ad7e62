package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesRender(t *testing.T) {
	tm := NewDefaultTemplateManager()

	body, err := tm.Render(TemplateAgreementCreated, TemplateData{
		"CreativeName": "Liam",
		"PosterName":   "Elara",
		"GigTitle":     "Golden Hour",
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Hi Liam")
	assert.Contains(t, body, "<strong>Golden Hour</strong>")

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestTemplatesEscapeHTML(t *testing.T) {
	tm := NewDefaultTemplateManager()
	body, err := tm.Render(TemplateAgreementSigned, TemplateData{
		"PosterName":   "Elara",
		"CreativeName": "<script>",
		"GigTitle":     "Shoot",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestLogProviderRecordsMessages(t *testing.T) {
	p := NewLogProvider(NewDefaultTemplateManager())

	err := p.SendTemplate([]string{"liam@test.com"}, "Agreement ready", TemplateAgreementCreated, TemplateData{
		"CreativeName": "Liam",
		"PosterName":   "Elara",
		"GigTitle":     "Golden Hour",
	})
	require.NoError(t, err)

	sent := p.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"liam@test.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, "Golden Hour")
}

func TestSMTPProviderValidate(t *testing.T) {
	p := NewSMTPProvider(&SMTPConfig{Host: "", Port: 587, FromEmail: "a@b.c"}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.local", Port: 0, FromEmail: "a@b.c"}, nil)
	assert.Error(t, p.Validate())

	p = NewSMTPProvider(&SMTPConfig{Host: "smtp.local", Port: 587, FromEmail: "a@b.c"}, nil)
	assert.NoError(t, p.Validate())

	assert.Error(t, p.SendTemplate([]string{"x@y.z"}, "s", TemplateAgreementCreated, nil))
}
