package drupal

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func TestReconcileModules(t *testing.T) {
	t.Parallel()

	doc := &ExtensionDocument{
		Module:  map[string]int{"node": 0, "views": 10},
		Theme:   map[string]int{"olivero": 0},
		Profile: "standard",
	}

	out, added := ReconcileModules(doc, []string{"media", "node"})

	if !slices.Equal(added, []string{"media"}) {
		t.Errorf("added = %v, want [media]", added)
	}
	if out.Module["media"] != 0 {
		t.Errorf("new module weight = %d, want 0", out.Module["media"])
	}
	if out.Module["views"] != 10 {
		t.Errorf("existing weight changed: %d", out.Module["views"])
	}
	if out.Profile != "standard" || out.Theme["olivero"] != 0 {
		t.Errorf("unrelated keys changed: %+v", out)
	}

	// The input document is never mutated.
	if _, ok := doc.Module["media"]; ok {
		t.Error("input document mutated")
	}
}

func TestReconcileModulesIdempotent(t *testing.T) {
	t.Parallel()

	enable := []string{"media", "paragraphs", "entity_reference_revisions"}

	first, added := ReconcileModules(nil, enable)
	if len(added) != 3 {
		t.Fatalf("first pass added %v", added)
	}
	second, added := ReconcileModules(first, enable)
	if len(added) != 0 {
		t.Errorf("second pass added %v, want nothing", added)
	}
	if !reflect.DeepEqual(first.Module, second.Module) {
		t.Errorf("second pass changed the module map: %v vs %v", first.Module, second.Module)
	}
}

func TestReconcileModulesNilDocument(t *testing.T) {
	t.Parallel()

	out, added := ReconcileModules(nil, []string{"media"})
	if out.Module == nil || out.Theme == nil {
		t.Fatal("nil doc must start from empty maps")
	}
	if !slices.Equal(added, []string{"media"}) {
		t.Errorf("added = %v", added)
	}
	if out.Profile != "" {
		t.Errorf("profile = %q, want empty", out.Profile)
	}
}

func TestExtensionsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ExtensionFilename)
	content := "_core:\n  default_config_hash: abc123\nmodule:\n  node: 0\n  views: 10\ntheme:\n  olivero: 0\nprofile: standard\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadExtensions(path)
	if err != nil {
		t.Fatalf("LoadExtensions: %v", err)
	}
	if !doc.HasModule("node") || doc.Module["views"] != 10 {
		t.Errorf("modules = %v", doc.Module)
	}

	doc, added := ReconcileModules(doc, []string{"media"})
	if !slices.Equal(added, []string{"media"}) {
		t.Fatalf("added = %v", added)
	}
	if err := SaveExtensions(path, doc); err != nil {
		t.Fatalf("SaveExtensions: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	// Module keys serialize in ascending order.
	if !strings.Contains(out, "module:\n  media: 0\n  node: 0\n  views: 10\n") {
		t.Errorf("module keys not sorted:\n%s", out)
	}
	// The unmodeled _core key survives the round trip.
	if !strings.Contains(out, "default_config_hash: abc123") {
		t.Errorf("unmodeled key dropped:\n%s", out)
	}
	if !strings.Contains(out, "profile: standard") {
		t.Errorf("profile dropped:\n%s", out)
	}

	reloaded, err := LoadExtensions(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.HasModule("media") {
		t.Error("reloaded document lost the added module")
	}
}

func TestLoadExtensionsMissingFile(t *testing.T) {
	t.Parallel()

	doc, err := LoadExtensions(filepath.Join(t.TempDir(), ExtensionFilename))
	if err != nil {
		t.Fatalf("LoadExtensions: %v", err)
	}
	if doc == nil || doc.Module == nil || doc.Theme == nil {
		t.Fatal("missing file must yield an empty document")
	}
	if len(doc.Module) != 0 {
		t.Errorf("modules = %v, want empty", doc.Module)
	}
}

func TestLoadExtensionsMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ExtensionFilename)
	if err := os.WriteFile(path, []byte("module: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadExtensions(path); !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("got %v, want ErrInvalidYAML", err)
	}
}

func TestEnabledModules(t *testing.T) {
	t.Parallel()

	doc := &ExtensionDocument{Module: map[string]int{"views": 10, "node": 0, "media": 0}}
	want := []string{"media", "node", "views"}
	if got := doc.EnabledModules(); !slices.Equal(got, want) {
		t.Errorf("EnabledModules = %v, want %v", got, want)
	}

	var nilDoc *ExtensionDocument
	if got := nilDoc.EnabledModules(); got != nil {
		t.Errorf("nil doc EnabledModules = %v", got)
	}
	if nilDoc.HasModule("node") {
		t.Error("nil doc HasModule = true")
	}
}
