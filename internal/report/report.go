// Package report renders schema reports from a synchronized entity index:
// a summary of bundle and field counts per entity type plus one field table
// per bundle. Reports come in a terminal table form and a markdown form
// suitable for committing next to the configuration export.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/drupkit/drupkit/pkg/models"
)

// Generator renders reports over an entity index.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithNow overrides the clock (for testing).
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator creates a report Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// summaryTable builds the per-entity-type bundle/field count table.
func summaryTable(idx *models.EntityIndex) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Entity Type", "Bundles", "Fields"})

	for _, et := range models.AllEntityTypes() {
		bundles := idx.Bundles(et)
		fields := 0
		for _, b := range bundles {
			fields += len(b.Fields)
		}
		t.AppendRow(table.Row{string(et), len(bundles), fields})
	}
	t.AppendFooter(table.Row{"Total", idx.BundleCount(), idx.FieldCount()})
	return t
}

// bundleTable builds the field table of one bundle.
func bundleTable(b *models.Bundle) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Field", "Label", "Type", "Required", "Cardinality"})

	for _, f := range b.SortedFields() {
		required := "no"
		if f.Required {
			required = "yes"
		}
		cardinality := strconv.Itoa(f.Cardinality)
		if f.Cardinality == models.CardinalityUnlimited {
			cardinality = "unlimited"
		}
		t.AppendRow(table.Row{f.Name, f.Label, f.Type, required, cardinality})
	}
	return t
}

// Render produces the terminal report: summary first, then one field table
// per bundle in entity type order.
func (g *Generator) Render(project string, idx *models.EntityIndex) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Schema report: %s (generated %s)\n\n", project, g.now().UTC().Format("2006-01-02"))
	sb.WriteString(summaryTable(idx).Render())
	sb.WriteString("\n")

	for _, et := range models.AllEntityTypes() {
		for _, b := range idx.Bundles(et) {
			fmt.Fprintf(&sb, "\n%s: %s (%s)\n", et, b.Label, b.ID)
			if len(b.Fields) == 0 {
				sb.WriteString("  no fields\n")
				continue
			}
			sb.WriteString(bundleTable(b).Render())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Markdown produces the same report as a markdown document.
func (g *Generator) Markdown(project string, idx *models.EntityIndex) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Schema report: %s\n\n", project)
	fmt.Fprintf(&sb, "Generated %s.\n\n", g.now().UTC().Format("2006-01-02"))
	sb.WriteString("## Summary\n\n")
	sb.WriteString(summaryTable(idx).RenderMarkdown())
	sb.WriteString("\n")

	for _, et := range models.AllEntityTypes() {
		for _, b := range idx.Bundles(et) {
			fmt.Fprintf(&sb, "\n## %s: %s (`%s`)\n\n", et, b.Label, b.ID)
			if len(b.Fields) == 0 {
				sb.WriteString("No fields are attached to this bundle.\n")
				continue
			}
			sb.WriteString(bundleTable(b).RenderMarkdown())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Filename returns the report filename for a project.
func Filename(project string) string {
	return project + "-schema.md"
}

// WriteFile writes the markdown report into dir, creating the directory as
// needed. Reports are regenerated wholesale, so an existing file is
// overwritten. Returns the written path.
func (g *Generator) WriteFile(dir, project string, idx *models.EntityIndex) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, Filename(project))
	if err := os.WriteFile(path, []byte(g.Markdown(project, idx)), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}

// Preview renders markdown for an interactive terminal.
func Preview(markdown string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return out, nil
}
