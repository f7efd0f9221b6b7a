package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

const TemplateNotification = "notification"

const notificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  {{if .ProductID}}<p>Product: {{.ProductID}}</p>{{end}}
  {{if .StoreID}}<p>Store: {{.StoreID}}</p>{{end}}
  <p style="color: #888; font-size: 12px;">You can turn off e-mail notifications in your profile settings.</p>
</body>
</html>`

// TemplateManager holds parsed HTML templates.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{templates: make(map[string]*template.Template)}
	template.Must(tm.add(TemplateNotification, notificationTemplate))
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

func (tm *TemplateManager) AddTemplate(name, templateStr string) error {
	_, err := tm.add(name, templateStr)
	return err
}

func (tm *TemplateManager) add(name, templateStr string) (*template.Template, error) {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return tpl, nil
}
