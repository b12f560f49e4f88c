package scaffold

import (
	"errors"
	"strings"
	"testing"
)

func TestTemplatesEmbedded(t *testing.T) {
	t.Parallel()

	fsys, err := Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}

	want := []string{
		"node_type.yml.tmpl",
		"media_type.yml.tmpl",
		"paragraphs_type.yml.tmpl",
		"taxonomy_vocabulary.yml.tmpl",
		"block_content_type.yml.tmpl",
		"field_storage.yml.tmpl",
		"field_instance.yml.tmpl",
	}
	for _, name := range want {
		if _, err := fsys.Open(name); err != nil {
			t.Errorf("template %s missing: %v", name, err)
		}
	}
}

func TestRendererStrictMode(t *testing.T) {
	t.Parallel()

	fsys, err := Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	r := NewRenderer(fsys)

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render("nope.yml.tmpl", nil)
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("Render(nope) error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render("node_type.yml.tmpl", map[string]any{"ID": "page"})
		if !errors.Is(err, ErrMissingTemplateKey) {
			t.Errorf("Render with partial data error = %v, want ErrMissingTemplateKey", err)
		}
	})

	t.Run("complete data", func(t *testing.T) {
		t.Parallel()
		out, err := r.Render("node_type.yml.tmpl", map[string]any{
			"ID":          "landing_page",
			"Label":       "Landing Page",
			"Description": "Standalone marketing pages.",
		})
		if err != nil {
			t.Fatalf("Render(node_type) error = %v", err)
		}
		got := string(out)
		for _, line := range []string{
			"type: landing_page",
			"name: Landing Page",
			"description: Standalone marketing pages.",
		} {
			if !strings.Contains(got, line) {
				t.Errorf("rendered output missing %q:\n%s", line, got)
			}
		}
	})
}

func TestLabelize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		machine string
		want    string
	}{
		{"field_hero_image", "Hero Image"},
		{"field_body", "Body"},
		{"landing_page", "Landing Page"},
		{"tags", "Tags"},
	}
	for _, tt := range tests {
		t.Run(tt.machine, func(t *testing.T) {
			t.Parallel()
			if got := labelize(tt.machine); got != tt.want {
				t.Errorf("labelize(%q) = %q, want %q", tt.machine, got, tt.want)
			}
		})
	}
}

func TestYAMLStringQuoting(t *testing.T) {
	t.Parallel()

	fn, ok := templateFuncMap["yamlString"].(func(string) string)
	if !ok {
		t.Fatal("yamlString func missing from template func map")
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Landing Page", "Landing Page"},
		{"empty", "", `""`},
		{"colon", "note: internal", `'note: internal'`},
		{"newline flattened", "two\nlines", "two lines"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fn(tt.in); got != tt.want {
				t.Errorf("yamlString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
