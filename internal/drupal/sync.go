package drupal

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/drupkit/drupkit/pkg/models"
)

// defaultConcurrency bounds concurrent file parses when not configured.
const defaultConcurrency = 8

// Synchronizer reads a configuration export directory and assembles the
// entity index. File reads within an entity type run concurrently; the index
// itself is assembled sequentially, so a bundle is only ever published with
// its complete field set.
type Synchronizer struct {
	logger      *slog.Logger
	concurrency int
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger *slog.Logger) SyncOption {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency bounds how many files are read and parsed at once.
func WithConcurrency(n int) SyncOption {
	return func(s *Synchronizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSynchronizer creates a Synchronizer. Without options it logs nowhere
// and parses up to eight files at a time.
func NewSynchronizer(opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyncStats summarizes one synchronization pass.
type SyncStats struct {
	// Bundles is the number of bundles indexed.
	Bundles int
	// Fields is the number of merged field descriptors.
	Fields int
	// Skipped counts configuration files ignored after parse or projection
	// failures.
	Skipped int
}

// Sync assembles the schema model from the configuration files in dir.
// A missing directory aborts with ErrConfigDirNotFound; no partial index is
// ever returned. Repeating a pass over unchanged files yields an identical
// index.
func (s *Synchronizer) Sync(ctx context.Context, dir string) (*models.EntityIndex, SyncStats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, SyncStats{}, fmt.Errorf("%w: %s", ErrConfigDirNotFound, dir)
		}
		return nil, SyncStats{}, fmt.Errorf("drupal: stat configuration directory: %w", err)
	}
	if !info.IsDir() {
		return nil, SyncStats{}, fmt.Errorf("%w: %s is not a directory", ErrConfigDirNotFound, dir)
	}
	return s.SyncFS(ctx, os.DirFS(dir))
}

// SyncFS is Sync over an abstract filesystem rooted at the configuration
// directory.
func (s *Synchronizer) SyncFS(ctx context.Context, fsys fs.FS) (*models.EntityIndex, SyncStats, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, SyncStats{}, fmt.Errorf("drupal: list configuration directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), yamlExt) {
			names = append(names, e.Name())
		}
	}

	idx := models.NewEntityIndex()
	var stats SyncStats
	for _, et := range models.AllEntityTypes() {
		if err := ctx.Err(); err != nil {
			return nil, SyncStats{}, err
		}
		if err := s.syncEntityType(ctx, fsys, et, names, idx, &stats); err != nil {
			return nil, SyncStats{}, err
		}
	}

	stats.Bundles = idx.BundleCount()
	stats.Fields = idx.FieldCount()
	return idx, stats, nil
}

// syncEntityType indexes every bundle of one entity type.
func (s *Synchronizer) syncEntityType(ctx context.Context, fsys fs.FS, et models.EntityType, names []string, idx *models.EntityIndex, stats *SyncStats) error {
	storages, err := s.loadStorages(ctx, fsys, et, names, stats)
	if err != nil {
		return err
	}

	bundleFiles := BundleFiles(names, et)
	docs, err := s.readDocuments(ctx, fsys, bundleFiles)
	if err != nil {
		return err
	}

	for i, name := range bundleFiles {
		if docs[i] == nil {
			stats.Skipped++
			continue
		}
		bundle, ok := projectBundle(et, docs[i])
		if !ok {
			s.logger.Warn("skipping bundle document without an id", "file", name)
			stats.Skipped++
			continue
		}
		if err := s.mergeBundle(ctx, fsys, et, bundle, names, storages, stats); err != nil {
			return err
		}
		idx.Add(et, bundle)
	}
	return nil
}

// loadStorages builds the storage lookup for one entity type, keyed by field
// name. Built once per entity type and shared across its bundles.
func (s *Synchronizer) loadStorages(ctx context.Context, fsys fs.FS, et models.EntityType, names []string, stats *SyncStats) (map[string]fieldStorageFragment, error) {
	files := StorageFiles(names, et)
	docs, err := s.readDocuments(ctx, fsys, files)
	if err != nil {
		return nil, err
	}

	storages := make(map[string]fieldStorageFragment, len(files))
	for i, name := range files {
		if docs[i] == nil {
			stats.Skipped++
			continue
		}
		frag := projectFieldStorage(docs[i])
		if frag.Name == "" {
			s.logger.Warn("skipping field storage without a field name", "file", name)
			stats.Skipped++
			continue
		}
		storages[frag.Name] = frag
	}
	return storages, nil
}

// mergeBundle attaches every instance field and base-field override of one
// bundle. The bundle's field map is complete when this returns. A storage
// definition that no instance references is deliberately never surfaced.
func (s *Synchronizer) mergeBundle(ctx context.Context, fsys fs.FS, et models.EntityType, bundle *models.Bundle, names []string, storages map[string]fieldStorageFragment, stats *SyncStats) error {
	instanceFiles := InstanceFiles(names, et, bundle.ID)
	docs, err := s.readDocuments(ctx, fsys, instanceFiles)
	if err != nil {
		return err
	}

	for i, name := range instanceFiles {
		if docs[i] == nil {
			stats.Skipped++
			continue
		}
		instance := projectFieldInstance(docs[i])
		var storage *fieldStorageFragment
		if frag, ok := storages[instance.Name]; ok {
			storage = &frag
		}
		desc, err := mergeField(storage, instance)
		if err != nil {
			s.logger.Warn("skipping field instance", "file", name, "error", err)
			stats.Skipped++
			continue
		}
		bundle.Fields[desc.Name] = desc
	}

	overrideFiles := OverrideFiles(names, et, bundle.ID)
	docs, err = s.readDocuments(ctx, fsys, overrideFiles)
	if err != nil {
		return err
	}
	for i, name := range overrideFiles {
		if docs[i] == nil {
			stats.Skipped++
			continue
		}
		desc, err := overrideDescriptor(projectBaseFieldOverride(docs[i]))
		if err != nil {
			s.logger.Warn("skipping base field override", "file", name, "error", err)
			stats.Skipped++
			continue
		}
		// A configurable field with the same name keeps precedence.
		if _, exists := bundle.Fields[desc.Name]; !exists {
			bundle.Fields[desc.Name] = desc
		}
	}
	return nil
}

// readDocuments reads and parses the named files concurrently. The returned
// slice aligns with files; entries that failed to read or parse are nil and
// have already been logged.
func (s *Synchronizer) readDocuments(ctx context.Context, fsys fs.FS, files []string) ([]map[string]any, error) {
	docs := make([]map[string]any, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				s.logger.Warn("skipping unreadable configuration file", "file", name, "error", err)
				return nil
			}
			doc, ok := parseDocument(data)
			if !ok {
				s.logger.Warn("skipping malformed configuration document", "file", name)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}
