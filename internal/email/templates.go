package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// TemplateManager keeps parsed html templates by name.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the agreement notifications.
func NewDefaultTemplateManager() *TemplateManager {
	tm := NewTemplateManager()
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(fmt.Sprintf("builtin email template %s: %v", name, err))
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

var builtinTemplates = map[string]string{
	TemplateAgreementCreated: `<p>Hi {{.CreativeName}},</p>
<p>{{.PosterName}} accepted your application for <strong>{{.GigTitle}}</strong>.</p>
<p>Your agreement is ready to review and sign in The Gallery of Light.</p>`,
	TemplateAgreementSigned: `<p>Hi {{.PosterName}},</p>
<p>{{.CreativeName}} signed the agreement for <strong>{{.GigTitle}}</strong>.</p>
<p>The collaboration is now confirmed.</p>`,
}
