package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/report"
	"github.com/drupkit/drupkit/pkg/models"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize the synchronized schema",
	Long: `Summarize the synchronized schema: bundle and field counts per entity
type, plus a field table per bundle. The markdown format suits commit
messages and wikis; --write stores it under the drupkit home.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("project", "", "Project name (default: active project)")
	reportCmd.Flags().StringP("format", "f", "table", "Output format: table or markdown")
	reportCmd.Flags().Bool("write", false, "Write the markdown report to a file")
}

func runReport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	proj, err := requireProject(cmd)
	if err != nil {
		return err
	}
	idx, err := requireSyncedSchema(proj)
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "write") {
		gen := report.NewGenerator()
		path, err := gen.WriteFile(reportsDir(deps.Home, proj.Name), proj.Name, idx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, renderSuccessCard("Report written", path))
		return nil
	}

	return printSchemaReport(cmd, proj.Name, idx, getStringFlag(cmd, "format"))
}

// printSchemaReport renders the report in the requested format. Shared by
// the report command and the interactive menu.
func printSchemaReport(cmd *cobra.Command, project string, idx *models.EntityIndex, format string) error {
	out := cmd.OutOrStdout()
	gen := report.NewGenerator()

	switch format {
	case "table":
		_, _ = fmt.Fprintln(out, gen.Render(project, idx))
	case "markdown", "md":
		md := gen.Markdown(project, idx)
		if isatty.IsTerminal(os.Stdout.Fd()) && !deps.Settings.UI.NoColor {
			pretty, err := report.Preview(md, markdownPreviewWidth)
			if err == nil {
				_, _ = fmt.Fprint(out, pretty)
				return nil
			}
			deps.Logger.Debug("markdown preview failed, printing raw", "error", err)
		}
		_, _ = fmt.Fprint(out, md)
	default:
		return fmt.Errorf("unknown format %q: use table or markdown", format)
	}
	return nil
}
