// Package story turns synchronized bundles into markdown tickets a content
// team can pick up: one story per bundle with its field table and
// acceptance criteria, including the permission keys roles will need.
package story

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/template"
	"time"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/pkg/models"
)

//go:embed templates/story.md.tmpl
var embeddedFS embed.FS

const templateName = "templates/story.md.tmpl"

// ErrNilBundle indicates Generate was called without a bundle.
var ErrNilBundle = errors.New("story: nil bundle")

// Generator renders bundle stories from the embedded template.
type Generator struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the generator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithNow overrides the clock (for testing).
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a story Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// storyContext is the template data for one bundle story.
type storyContext struct {
	EntityType  models.EntityType
	Bundle      *models.Bundle
	Fields      []models.FieldDescriptor
	Permissions []string
	Date        string
}

var storyFuncs = template.FuncMap{
	// cardinality renders the storage convention for humans.
	"cardinality": func(n int) string {
		if n == models.CardinalityUnlimited {
			return "unlimited"
		}
		return strconv.Itoa(n)
	},
}

// Generate renders the markdown story for one bundle.
func (g *Generator) Generate(et models.EntityType, b *models.Bundle) ([]byte, error) {
	if b == nil {
		return nil, ErrNilBundle
	}
	if !et.IsValid() {
		return nil, fmt.Errorf("%w: %q", drupal.ErrUnknownEntityType, et)
	}

	tmpl, err := template.New(filepath.Base(templateName)).
		Funcs(storyFuncs).
		Option("missingkey=error").
		ParseFS(embeddedFS, templateName)
	if err != nil {
		return nil, fmt.Errorf("story template: %w", err)
	}

	ctx := storyContext{
		EntityType:  et,
		Bundle:      b,
		Fields:      b.SortedFields(),
		Permissions: drupal.ExpandAll(et, b.ID),
		Date:        g.now().UTC().Format("2006-01-02"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("story render %s.%s: %w", et, b.ID, err)
	}
	return buf.Bytes(), nil
}

// Filename returns the story filename for a bundle, such as
// "node-article.md".
func Filename(et models.EntityType, bundleID string) string {
	return fmt.Sprintf("%s-%s.md", et, bundleID)
}

// WriteFile renders the story and writes it into dir, creating the
// directory as needed. Stories are regenerated wholesale, so an existing
// file is overwritten. Returns the written path.
func (g *Generator) WriteFile(dir string, et models.EntityType, b *models.Bundle) (string, error) {
	data, err := g.Generate(et, b)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("story dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename(et, b.ID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write story %s: %w", path, err)
	}
	g.logger.Info("story written", "entity_type", et, "bundle", b.ID, "path", path)
	return path, nil
}
