package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yml.tmpl
var embeddedFS embed.FS

// Templates returns the embedded configuration templates rooted at the
// template names themselves.
func Templates() (fs.FS, error) {
	sub, err := fs.Sub(embeddedFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("scaffold: embedded templates: %w", err)
	}
	return sub, nil
}

// labelize derives a human label from a machine name. Casers are not safe
// for concurrent use, so each call makes its own.
func labelize(machine string) string {
	s := strings.TrimPrefix(machine, "field_")
	s = strings.ReplaceAll(s, "_", " ")
	return cases.Title(language.English).String(s)
}

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	// label derives a human label from a machine name:
	// "field_hero_image" becomes "Hero Image".
	"label": labelize,
	// yamlString renders a string as a safe single-line YAML scalar,
	// quoting whenever the value needs it.
	"yamlString": func(s string) string {
		s = strings.ReplaceAll(s, "\n", " ")
		out, err := yaml.Marshal(s)
		if err != nil {
			return s
		}
		return strings.TrimRight(string(out), "\n")
	},
}

// Renderer renders Go text/template files with strict mode enabled.
type Renderer interface {
	// Render parses the named template from the filesystem and executes it
	// with the given data. Returns ErrMissingTemplateKey if a key is
	// missing.
	Render(templateName string, data any) ([]byte, error)
}

// renderer is the concrete implementation of Renderer.
type renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by the given filesystem.
func NewRenderer(fsys fs.FS) Renderer {
	return &renderer{fsys: fsys}
}

// Render parses and executes a template with strict mode (missingkey=error).
func (r *renderer) Render(templateName string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateName)
	}

	tmpl, err := template.New(templateName).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}
	return buf.Bytes(), nil
}
