package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/drupal"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "Manage the exported module list",
}

var modulesEnableCmd = &cobra.Command{
	Use:   "enable <module>...",
	Short: "Enable modules in core.extension.yml",
	Long: `Enable modules in the export's core.extension.yml. Reconciliation is
additive: modules already enabled keep their weights, everything else in
the document passes through unchanged, and running the same command twice
changes nothing.

Examples:
  drupkit modules enable paragraphs entity_reference_revisions
  drupkit modules enable media --dir config/sync`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModulesEnable,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
	modulesCmd.AddCommand(modulesEnableCmd)

	modulesEnableCmd.Flags().String("project", "", "Project name (default: active project)")
	modulesEnableCmd.Flags().StringP("dir", "d", "", "Configuration export directory (overrides the project's)")
}

func runModulesEnable(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, name := range args {
		if !drupal.IsMachineName(name) {
			return fmt.Errorf("invalid module name %q: lowercase letters, digits and underscores only", name)
		}
	}

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	added, err := reconcileExtensions(dir, args)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		_, _ = fmt.Fprintln(out, symSuccess()+" All requested modules were already enabled.")
		return nil
	}

	already := len(args) - len(added)
	details := []string{"Enabled: " + strings.Join(added, ", ")}
	if already > 0 {
		details = append(details, cliMuted.Render(fmt.Sprintf("%d module(s) were already enabled.", already)))
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard("Modules enabled", details...))
	return nil
}
