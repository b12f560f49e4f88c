package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/report"
	"github.com/drupkit/drupkit/internal/story"
	"github.com/drupkit/drupkit/pkg/models"
)

var storyCmd = &cobra.Command{
	Use:   "story [bundle]",
	Short: "Generate user story markdown for bundles",
	Long: `Generate user story markdown for bundles in the synchronized schema.
Each story lists the bundle's fields and acceptance criteria, including
the permission keys roles need for the bundle.

Stories are written under the drupkit home, one file per bundle.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStory,
}

func init() {
	rootCmd.AddCommand(storyCmd)
	storyCmd.Flags().String("project", "", "Project name (default: active project)")
	storyCmd.Flags().StringP("type", "t", string(models.EntityNode), "Entity type of the bundle")
	storyCmd.Flags().StringP("bundle", "b", "", "Bundle id (same as the positional argument)")
	storyCmd.Flags().Bool("all", false, "Generate stories for every bundle in the schema")
	storyCmd.Flags().Bool("stdout", false, "Print the story instead of writing a file")
}

func runStory(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	proj, err := requireProject(cmd)
	if err != nil {
		return err
	}
	idx, err := requireSyncedSchema(proj)
	if err != nil {
		return err
	}

	gen := story.NewGenerator(story.WithLogger(deps.Logger))
	dir := storiesDir(deps.Home, proj.Name)

	if getBoolFlag(cmd, "all") {
		var written []string
		for _, et := range models.AllEntityTypes() {
			for _, b := range idx.Bundles(et) {
				path, err := gen.WriteFile(dir, et, b)
				if err != nil {
					return err
				}
				written = append(written, path)
			}
		}
		if len(written) == 0 {
			_, _ = fmt.Fprintln(out, cliMuted.Render("The schema has no bundles; nothing to write."))
			return nil
		}
		lines := make([]string, 0, len(written))
		for _, p := range written {
			lines = append(lines, symSuccess()+" "+p)
		}
		_, _ = fmt.Fprintln(out, renderCard(fmt.Sprintf("%d stories written", len(written)), lines...))
		return nil
	}

	bundleID := getStringFlag(cmd, "bundle")
	if len(args) > 0 {
		bundleID = args[0]
	}
	if bundleID == "" {
		return fmt.Errorf("name a bundle or pass --all")
	}
	et := models.EntityType(getStringFlag(cmd, "type"))
	if !et.IsValid() {
		return fmt.Errorf("unknown entity type %q: valid types are %s", getStringFlag(cmd, "type"), entityTypeList())
	}
	b, ok := idx.Bundle(et, bundleID)
	if !ok {
		return fmt.Errorf("bundle %s/%s is not in the synchronized schema: run 'drupkit sync' after exporting it", et, bundleID)
	}

	if getBoolFlag(cmd, "stdout") {
		md, err := gen.Generate(et, b)
		if err != nil {
			return err
		}
		if isatty.IsTerminal(os.Stdout.Fd()) && !deps.Settings.UI.NoColor {
			pretty, err := report.Preview(string(md), markdownPreviewWidth)
			if err == nil {
				_, _ = fmt.Fprint(out, pretty)
				return nil
			}
			deps.Logger.Debug("markdown preview failed, printing raw", "error", err)
		}
		_, _ = fmt.Fprint(out, string(md))
		return nil
	}

	path, err := gen.WriteFile(dir, et, b)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, renderSuccessCard("Story written", path))
	return nil
}
