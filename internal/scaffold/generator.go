package scaffold

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/pkg/models"
)

// entityModules names the module owning each entity type, used in generated
// dependency lists.
var entityModules = map[models.EntityType]string{
	models.EntityNode:         "node",
	models.EntityMedia:        "media",
	models.EntityParagraph:    "paragraphs",
	models.EntityTaxonomyTerm: "taxonomy",
	models.EntityBlockContent: "block_content",
}

// bundleTemplates names the template rendering each entity type's bundle
// document.
var bundleTemplates = map[models.EntityType]string{
	models.EntityNode:         "node_type.yml.tmpl",
	models.EntityMedia:        "media_type.yml.tmpl",
	models.EntityParagraph:    "paragraphs_type.yml.tmpl",
	models.EntityTaxonomyTerm: "taxonomy_vocabulary.yml.tmpl",
	models.EntityBlockContent: "block_content_type.yml.tmpl",
}

// fieldTypeModules maps each supported field type to the module providing
// it. An empty value means the type ships with core and needs no module.
var fieldTypeModules = map[string]string{
	"string":            "",
	"string_long":       "",
	"boolean":           "",
	"integer":           "",
	"decimal":           "",
	"float":             "",
	"email":             "",
	"timestamp":         "",
	"entity_reference":  "",
	"text":              "text",
	"text_long":         "text",
	"text_with_summary": "text",
	"datetime":          "datetime",
	"link":              "link",
	"image":             "image",
	"file":              "file",
	"list_string":       "options",
	"list_integer":      "options",
	"telephone":         "telephone",
}

// FieldTypes returns the supported field types in ascending order.
func FieldTypes() []string {
	types := make([]string, 0, len(fieldTypeModules))
	for t := range fieldTypeModules {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// defaultMediaSource is used when a media bundle spec does not name a
// source plugin.
const defaultMediaSource = "image"

// BundleSpec describes a bundle document to scaffold.
type BundleSpec struct {
	EntityType  models.EntityType
	ID          string
	Label       string
	Description string
	// Source is the media source plugin id; ignored for other entity
	// types and defaulted to "image" for media when empty.
	Source string
}

// FieldSpec describes a field storage/instance pair to scaffold.
type FieldSpec struct {
	EntityType  models.EntityType
	Bundle      string
	Name        string
	Type        string
	Label       string
	Description string
	Required    bool
	// Cardinality follows the storage convention: 1 single, -1 unlimited,
	// any other positive integer a fixed maximum. Zero means 1.
	Cardinality int
}

// Result reports what a scaffold operation did.
type Result struct {
	// CreatedFiles lists the configuration files written, relative to the
	// export directory.
	CreatedFiles []string
	// SkippedFiles lists files that already existed and were left alone
	// (a field storage shared with another bundle).
	SkippedFiles []string
	// Modules lists what the new configuration needs enabled in
	// core.extension.yml.
	Modules []string
}

// Generator scaffolds configuration documents into an export directory.
type Generator struct {
	renderer Renderer
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRenderer substitutes the template renderer (for testing).
func WithRenderer(r Renderer) GeneratorOption {
	return func(g *Generator) {
		if r != nil {
			g.renderer = r
		}
	}
}

// WithLogger sets the generator's logger.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator over the embedded templates.
func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	tmpls, err := Templates()
	if err != nil {
		return nil, err
	}
	g := &Generator{
		renderer: NewRenderer(tmpls),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CreateBundle writes a new bundle document into dir. The target file must
// not already exist. The result names the modules the bundle's entity type
// needs enabled.
func (g *Generator) CreateBundle(dir string, spec BundleSpec) (*Result, error) {
	tmpl, ok := bundleTemplates[spec.EntityType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", drupal.ErrUnknownEntityType, spec.EntityType)
	}
	if !drupal.IsMachineName(spec.ID) {
		return nil, fmt.Errorf("%w: bundle id %q", ErrInvalidMachineName, spec.ID)
	}
	if spec.Label == "" {
		spec.Label = labelize(spec.ID)
	}
	if spec.EntityType == models.EntityMedia && spec.Source == "" {
		spec.Source = defaultMediaSource
	}

	filename, err := drupal.BundleFilename(spec.EntityType, spec.ID)
	if err != nil {
		return nil, err
	}

	data, err := g.renderer.Render(tmpl, spec)
	if err != nil {
		return nil, err
	}
	if err := writeNew(filepath.Join(dir, filename), data); err != nil {
		return nil, err
	}

	g.logger.Info("scaffolded bundle", "entity_type", spec.EntityType, "bundle", spec.ID, "file", filename)
	return &Result{
		CreatedFiles: []string{filename},
		Modules:      drupal.RequiredModules(spec.EntityType),
	}, nil
}

// storageContext is the field_storage template data.
type storageContext struct {
	EntityType        models.EntityType
	Name              string
	Type              string
	Cardinality       int
	Module            string
	DependencyModules []string
}

// instanceContext is the field_instance template data.
type instanceContext struct {
	EntityType   models.EntityType
	Bundle       string
	Name         string
	Type         string
	Label        string
	Description  string
	Required     bool
	Module       string
	BundleConfig string
}

// CreateField writes the storage/instance pair binding a field to a bundle.
// A storage document that already exists is reused, not rewritten; that is
// how a field is shared across bundles. An existing instance document is a
// conflict.
func (g *Generator) CreateField(dir string, spec FieldSpec) (*Result, error) {
	if _, ok := entityModules[spec.EntityType]; !ok {
		return nil, fmt.Errorf("%w: %q", drupal.ErrUnknownEntityType, spec.EntityType)
	}
	if !drupal.IsMachineName(spec.Bundle) {
		return nil, fmt.Errorf("%w: bundle %q", ErrInvalidMachineName, spec.Bundle)
	}
	if !drupal.IsMachineName(spec.Name) {
		return nil, fmt.Errorf("%w: field name %q", ErrInvalidMachineName, spec.Name)
	}
	typeModule, ok := fieldTypeModules[spec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFieldType, spec.Type, strings.Join(FieldTypes(), ", "))
	}
	if spec.Label == "" {
		spec.Label = labelize(spec.Name)
	}
	if spec.Cardinality == 0 {
		spec.Cardinality = 1
	}

	storageFile, err := drupal.StorageFilename(spec.EntityType, spec.Name)
	if err != nil {
		return nil, err
	}
	instanceFile, err := drupal.InstanceFilename(spec.EntityType, spec.Bundle, spec.Name)
	if err != nil {
		return nil, err
	}
	bundleFile, err := drupal.BundleFilename(spec.EntityType, spec.Bundle)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	deps := []string{entityModules[spec.EntityType]}
	if typeModule != "" {
		deps = append(deps, typeModule)
		result.Modules = append(result.Modules, typeModule)
	}
	sort.Strings(deps)

	storagePath := filepath.Join(dir, storageFile)
	if _, err := os.Stat(storagePath); err == nil {
		result.SkippedFiles = append(result.SkippedFiles, storageFile)
	} else {
		data, err := g.renderer.Render("field_storage.yml.tmpl", storageContext{
			EntityType:        spec.EntityType,
			Name:              spec.Name,
			Type:              spec.Type,
			Cardinality:       spec.Cardinality,
			Module:            typeModule,
			DependencyModules: deps,
		})
		if err != nil {
			return nil, err
		}
		if err := writeNew(storagePath, data); err != nil {
			return nil, err
		}
		result.CreatedFiles = append(result.CreatedFiles, storageFile)
	}

	data, err := g.renderer.Render("field_instance.yml.tmpl", instanceContext{
		EntityType:   spec.EntityType,
		Bundle:       spec.Bundle,
		Name:         spec.Name,
		Type:         spec.Type,
		Label:        spec.Label,
		Description:  spec.Description,
		Required:     spec.Required,
		Module:       typeModule,
		BundleConfig: strings.TrimSuffix(bundleFile, ".yml"),
	})
	if err != nil {
		return nil, err
	}
	if err := writeNew(filepath.Join(dir, instanceFile), data); err != nil {
		return nil, err
	}
	result.CreatedFiles = append(result.CreatedFiles, instanceFile)

	g.logger.Info("scaffolded field",
		"entity_type", spec.EntityType, "bundle", spec.Bundle, "field", spec.Name, "type", spec.Type)
	return result, nil
}

// writeNew writes data to path, refusing to touch an existing file.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrFileExists, filepath.Base(path))
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
