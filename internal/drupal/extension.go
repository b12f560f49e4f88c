package drupal

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ExtensionFilename is the document listing the site's enabled extensions.
const ExtensionFilename = "core.extension.yml"

// ExtensionDocument mirrors core.extension.yml: enabled modules and themes
// with their installation weights, plus the installation profile. Top-level
// keys the engine does not model survive a load/save round trip untouched.
type ExtensionDocument struct {
	Module  map[string]int `yaml:"module"`
	Theme   map[string]int `yaml:"theme"`
	Profile string         `yaml:"profile"`
	Rest    map[string]any `yaml:",inline"`
}

// NewExtensionDocument returns an empty extensions document.
func NewExtensionDocument() *ExtensionDocument {
	return &ExtensionDocument{
		Module: make(map[string]int),
		Theme:  make(map[string]int),
	}
}

// HasModule reports whether the named module is enabled.
func (d *ExtensionDocument) HasModule(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.Module[name]
	return ok
}

// EnabledModules returns the enabled module names in ascending order.
func (d *ExtensionDocument) EnabledModules() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Module))
	for name := range d.Module {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReconcileModules returns a copy of doc with the given modules enabled.
// Reconciliation is additive only: modules already present keep their
// weights, new modules enter at weight zero, and themes, the profile and any
// unmodeled keys pass through unchanged. A nil doc starts from an empty
// document. The second result lists the modules that were actually added,
// in input order.
func ReconcileModules(doc *ExtensionDocument, enable []string) (*ExtensionDocument, []string) {
	out := NewExtensionDocument()
	if doc != nil {
		maps.Copy(out.Module, doc.Module)
		maps.Copy(out.Theme, doc.Theme)
		out.Profile = doc.Profile
		if len(doc.Rest) > 0 {
			out.Rest = maps.Clone(doc.Rest)
		}
	}

	var added []string
	for _, name := range enable {
		if _, ok := out.Module[name]; ok {
			continue
		}
		out.Module[name] = 0
		added = append(added, name)
	}
	return out, added
}

// LoadExtensions reads the extensions document at path. A missing file
// yields an empty document so callers can bootstrap a fresh export; any
// other failure is fatal because the caller named this file explicitly.
func LoadExtensions(path string) (*ExtensionDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewExtensionDocument(), nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	doc := NewExtensionDocument()
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrInvalidYAML)
	}
	if doc.Module == nil {
		doc.Module = make(map[string]int)
	}
	if doc.Theme == nil {
		doc.Theme = make(map[string]int)
	}
	return doc, nil
}

// SaveExtensions writes the extensions document to path. Module and theme
// keys serialize in ascending order, which is what the YAML encoder does
// with string-keyed maps.
func SaveExtensions(path string, doc *ExtensionDocument) error {
	data, err := marshalYAML(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// marshalYAML encodes v with two-space indentation. Drupal writes its
// exports that way, and rewriting a tracked file at a different indent
// would turn every save into a whole-file diff.
func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
