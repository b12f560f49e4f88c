package project

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drupkit/drupkit/pkg/models"
)

// projectsSubdir is the record directory under the drupkit home.
const projectsSubdir = "projects"

// Store reads and writes project records under one drupkit home directory.
type Store struct {
	home   string
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store rooted at the given drupkit home directory.
func NewStore(home string, opts ...StoreOption) *Store {
	s := &Store{
		home:   filepath.Clean(home),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new project and persists its record. The name must be
// usable as a filename; a record with the same name is a conflict, not an
// update.
func (s *Store) Create(name, description, configDir string) (*models.Project, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, err := os.Stat(s.recordPath(name)); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	}

	now := time.Now().UTC()
	p := &models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		ConfigDir:   configDir,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.write(p); err != nil {
		return nil, err
	}

	s.logger.Info("created project record", "name", name, "config_dir", configDir)
	return p, nil
}

// Get loads one project record by name.
func (s *Store) Get(name string) (*models.Project, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	data, err := os.ReadFile(s.recordPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		return nil, fmt.Errorf("read project %s: %w", name, err)
	}

	var p models.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", name, err)
	}
	return &p, nil
}

// List loads every project record, sorted by name. A home without a projects
// directory is an empty kit, not an error.
func (s *Store) List() ([]*models.Project, error) {
	entries, err := os.ReadDir(filepath.Join(s.home, projectsSubdir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []*models.Project
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		p, err := s.Get(name)
		if err != nil {
			s.logger.Warn("skipping unreadable project record", "file", e.Name(), "error", err)
			continue
		}
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

// Save persists an updated record, bumping its UpdatedAt timestamp.
func (s *Store) Save(p *models.Project) error {
	if !validName(p.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, p.Name)
	}
	p.UpdatedAt = time.Now().UTC()
	return s.write(p)
}

// Delete removes a project record. Deleting an absent record reports
// ErrProjectNotFound so callers can distinguish a typo from success.
func (s *Store) Delete(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	err := os.Remove(s.recordPath(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("delete project %s: %w", name, err)
	}

	s.logger.Info("deleted project record", "name", name)
	return nil
}

// recordPath returns the record filename for a project name.
func (s *Store) recordPath(name string) string {
	return filepath.Join(s.home, projectsSubdir, name+".json")
}

// write marshals and atomically persists one record, creating the projects
// directory on first use.
func (s *Store) write(p *models.Project) error {
	dir := filepath.Join(s.home, projectsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create projects directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project %s: %w", p.Name, err)
	}
	data = append(data, '\n')

	return atomicWrite(s.recordPath(p.Name), data)
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".drupkit-project-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}

// validName accepts names that are safe as record filenames: no separators,
// no traversal, nothing hidden.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\:*?"<>|`)
}
