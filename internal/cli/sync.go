package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/drush"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Read the configuration export into the schema index",
	Long: `Read the configuration export directory into the schema index: bundle
documents, field storages, field instances and base field overrides merged
into one picture of every entity type.

The index is saved into the active project's record so stories, reports
and the interactive menu can work offline.

Examples:
  drupkit sync                     Sync the active project
  drupkit sync --dir config/sync   Sync an explicit directory
  drupkit sync --import            Sync, then run 'drush config:import'`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("project", "", "Project name (default: active project)")
	syncCmd.Flags().StringP("dir", "d", "", "Configuration export directory (overrides the project's)")
	syncCmd.Flags().Bool("import", false, "Run 'drush config:import' after a successful sync")
}

func runSync(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	progress := deps.NewProgress()
	spinner := progress.Spinner("Reading configuration from " + dir)
	idx, stats, err := deps.NewSynchronizer().Sync(cmd.Context(), dir)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	pairs := []kvPair{
		{"Directory", dir},
		{"Bundles", fmt.Sprintf("%d", stats.Bundles)},
		{"Fields", fmt.Sprintf("%d", stats.Fields)},
	}
	details := []string{renderKeyValueLines(pairs)}
	if stats.Skipped > 0 {
		details = append(details, "", cliWarn.Render(fmt.Sprintf("%d malformed file(s) skipped; the warnings name the files.", stats.Skipped)))
	}

	if proj != nil {
		proj.Schema = idx
		proj.SyncedAt = time.Now().UTC()
		if err := deps.Store.Save(proj); err != nil {
			return fmt.Errorf("save project %q: %w", proj.Name, err)
		}
		details = append(details, "", fmt.Sprintf("Schema saved to project %q.", proj.Name))
	} else {
		details = append(details, "", cliMuted.Render("No active project; the index was not persisted."))
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Configuration synchronized", details...))

	if getBoolFlag(cmd, "import") {
		return runConfigImport(cmd, dir)
	}
	return nil
}

// runConfigImport pushes the export into the site via drush.
func runConfigImport(cmd *cobra.Command, dir string) error {
	out := cmd.OutOrStdout()

	spinner := deps.NewProgress().Spinner("Importing configuration via drush")
	output, err := drush.ImportConfig(cmd.Context(), deps.NewDrushRunner(dir))
	spinner.Stop()
	if err != nil {
		if output != "" {
			_, _ = fmt.Fprintln(out, output)
		}
		return fmt.Errorf("config import: %w", err)
	}

	if getBoolFlag(cmd, "verbose") && output != "" {
		_, _ = fmt.Fprintln(out, cliMuted.Render(output))
	}
	_, _ = fmt.Fprintln(out, symSuccess()+" Configuration imported.")
	return nil
}
