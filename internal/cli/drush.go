package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/project"
)

var drushCmd = &cobra.Command{
	Use:   "drush [args...]",
	Short: "Run drush against the active project's site",
	Long: `Run drush against the active project's site. Arguments pass through
unchanged; the working directory is the project's configuration export
directory so drush can locate the site root.

The drush binary and base arguments come from the settings file
(drush.bin, drush.args).

Examples:
  drupkit drush cache:rebuild
  drupkit drush config:status`,
	DisableFlagParsing: true,
	RunE:               runDrush,
}

func init() {
	rootCmd.AddCommand(drushCmd)
}

func runDrush(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		return cmd.Help()
	}

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		// Drush locates the site root on its own; the export directory
		// is only a convenient working directory when we know it.
		if !errors.Is(err, project.ErrConfigDirNotDetected) {
			return err
		}
		dir = ""
	}

	runner := deps.NewDrushRunner(dir)
	output, err := runner.Run(cmd.Context(), args...)
	if output != "" {
		_, _ = fmt.Fprintln(out, strings.TrimRight(output, "\n"))
	}
	return err
}
