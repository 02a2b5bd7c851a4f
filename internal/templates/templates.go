package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"
)

//go:embed *.html
var templateFiles embed.FS

// funcs are available to every page
var funcs = template.FuncMap{
	"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p) },
}

// TemplateManager manages HTML templates
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a new template manager
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// LoadTemplate loads a template by name, caching it for future use
func (tm *TemplateManager) LoadTemplate(name string) (*template.Template, error) {
	tm.mutex.RLock()
	tmpl, exists := tm.templates[name]
	tm.mutex.RUnlock()

	if exists {
		return tmpl, nil
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	// Double-check after acquiring write lock
	if tmpl, exists := tm.templates[name]; exists {
		return tmpl, nil
	}

	content, err := templateFiles.ReadFile(name + ".html")
	if err != nil {
		return nil, fmt.Errorf("template %q not found: %w", name, err)
	}

	tmpl, err = template.New(name).Funcs(funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	tm.templates[name] = tmpl
	return tmpl, nil
}

// Render executes the named template into w. Output is buffered so a failed
// execution writes nothing.
func (tm *TemplateManager) Render(w io.Writer, name string, data any) error {
	tmpl, err := tm.LoadTemplate(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render template %q: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Global template manager instance
var globalTemplateManager = NewTemplateManager()

// GetTemplate is a convenience function to get templates from the global manager
func GetTemplate(name string) (*template.Template, error) {
	return globalTemplateManager.LoadTemplate(name)
}

// Render renders a template from the global manager
func Render(w io.Writer, name string, data any) error {
	return globalTemplateManager.Render(w, name, data)
}
