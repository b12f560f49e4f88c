package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/internal/project"
	"github.com/drupkit/drupkit/pkg/models"
)

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getStringSliceFlag retrieves a string slice flag value from the command.
func getStringSliceFlag(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil
	}
	return val
}

// configureFromFlags applies the persistent flags to the dependency
// container and loads the settings. Runs as the root PersistentPreRunE, so
// every command starts from a configured container.
func configureFromFlags(cmd *cobra.Command) error {
	if deps == nil {
		InitDependencies()
	}
	level := slog.LevelWarn
	if getBoolFlag(cmd, "verbose") {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	if err := deps.EnsureSettings(); err != nil {
		return err
	}
	if getBoolFlag(cmd, "no-color") {
		deps.Settings.UI.NoColor = true
	}
	deps.Store = project.NewStore(deps.Home, project.WithLogger(deps.Logger))
	return nil
}

// resolveProject returns the project named by --project, falling back to
// the settings' active project. Having no project at all is not an error
// here; commands that cannot proceed without one use requireProject.
func resolveProject(cmd *cobra.Command) (*models.Project, error) {
	name := getStringFlag(cmd, "project")
	explicit := name != ""
	if name == "" {
		name = deps.Settings.ActiveProject
	}
	if name == "" {
		return nil, nil
	}

	p, err := deps.Store.Get(name)
	if err != nil {
		if !explicit && errors.Is(err, project.ErrProjectNotFound) {
			// Stale active_project entry; continue without a project.
			deps.Logger.Warn("active project record missing", "name", name)
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// requireProject resolves the project and fails when none is selected.
func requireProject(cmd *cobra.Command) (*models.Project, error) {
	p, err := resolveProject(cmd)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("no project selected: create one with 'drupkit project create', activate it with 'drupkit project use', or pass --project")
	}
	return p, nil
}

// resolveConfigDir picks the configuration export directory: the --dir
// flag first, then the project record, then walking up from the current
// directory looking for a core.extension.yml.
func resolveConfigDir(cmd *cobra.Command, proj *models.Project) (string, error) {
	if dir := getStringFlag(cmd, "dir"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve --dir %q: %w", dir, err)
		}
		return abs, nil
	}
	if proj != nil && proj.ConfigDir != "" {
		return proj.ConfigDir, nil
	}
	return project.DetectConfigDirOrCurrent()
}

// requireSyncedSchema returns the project's schema index, failing with a
// hint when the project has never been synchronized.
func requireSyncedSchema(proj *models.Project) (*models.EntityIndex, error) {
	if !proj.Synced() {
		return nil, fmt.Errorf("project %q has no synchronized schema: run 'drupkit sync' first", proj.Name)
	}
	return proj.Schema, nil
}

// storiesDir returns where a project's story markdown lives.
func storiesDir(home, projectName string) string {
	return filepath.Join(home, "stories", projectName)
}

// reportsDir returns where a project's reports live.
func reportsDir(home, projectName string) string {
	return filepath.Join(home, "reports", projectName)
}

// reconcileExtensions enables modules in the directory's core.extension.yml
// and reports which ones were newly added. A nil or empty module list is a
// no-op.
func reconcileExtensions(dir string, modules []string) ([]string, error) {
	if len(modules) == 0 {
		return nil, nil
	}
	path := filepath.Join(dir, drupal.ExtensionFilename)
	doc, err := drupal.LoadExtensions(path)
	if err != nil {
		return nil, err
	}
	doc, added := drupal.ReconcileModules(doc, modules)
	if len(added) == 0 {
		return nil, nil
	}
	if err := drupal.SaveExtensions(path, doc); err != nil {
		return nil, err
	}
	return added, nil
}
