package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/project"
	"github.com/drupkit/drupkit/pkg/models"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage tracked Drupal projects",
	Long: `Manage drupkit's project records: named pointers to configuration
export directories, stored as JSON under the drupkit home. Most commands
operate on the active project; 'project use' switches it.`,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Track a new project",
	Long: `Track a new project. The configuration directory defaults to walking up
from the current directory until a core.extension.yml is found.

Examples:
  drupkit project create mysite
  drupkit project create mysite --dir /srv/mysite/config/sync
  drupkit project create mysite --description "Corporate site"`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectCreate,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show one project record",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProjectShow,
}

var projectUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a project the active one",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUse,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a project record",
	Long:  "Delete a project record. The configuration export itself is left untouched.",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectUseCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCreateCmd.Flags().StringP("dir", "d", "", "Configuration export directory (default: auto-detect)")
	projectCreateCmd.Flags().String("description", "", "Short project description")
	projectCreateCmd.Flags().Bool("no-use", false, "Do not make the new project active")
	projectShowCmd.Flags().String("project", "", "Project name (default: active project)")
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	dir := getStringFlag(cmd, "dir")
	if dir == "" {
		detected, err := project.DetectConfigDirOrCurrent()
		if err != nil {
			return err
		}
		dir = detected
	} else {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve --dir %q: %w", dir, err)
		}
		dir = abs
	}

	p, err := deps.Store.Create(name, getStringFlag(cmd, "description"), dir)
	if err != nil {
		if errors.Is(err, project.ErrProjectExists) {
			return fmt.Errorf("project %q already exists: pick another name or delete it first", name)
		}
		return err
	}

	details := []string{renderKeyValueLines([]kvPair{
		{"Name", p.Name},
		{"Config dir", p.ConfigDir},
		{"ID", p.ID},
	})}

	if !getBoolFlag(cmd, "no-use") {
		deps.Settings.ActiveProject = p.Name
		if err := deps.SaveSettings(); err != nil {
			return fmt.Errorf("activate project: %w", err)
		}
		details = append(details, "", fmt.Sprintf("%q is now the active project.", p.Name))
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard("Project created", details...))
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	projects, err := deps.Store.List()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		_, _ = fmt.Fprintln(out, cliMuted.Render("No projects yet. Run 'drupkit project create <name>'."))
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Name", "Config Dir", "Bundles", "Last Sync"})
	for _, p := range projects {
		active := ""
		if p.Name == deps.Settings.ActiveProject {
			active = "*"
		}
		bundles := "-"
		lastSync := "never"
		if p.Synced() {
			bundles = fmt.Sprintf("%d", p.Schema.BundleCount())
			lastSync = p.SyncedAt.Local().Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{active, p.Name, p.ConfigDir, bundles, lastSync})
	}
	_, _ = fmt.Fprintln(out, t.Render())
	return nil
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var p *models.Project
	if len(args) > 0 {
		rec, err := deps.Store.Get(args[0])
		if err != nil {
			return err
		}
		p = rec
	} else {
		rec, err := requireProject(cmd)
		if err != nil {
			return err
		}
		p = rec
	}

	pairs := []kvPair{
		{"Name", p.Name},
		{"ID", p.ID},
		{"Config dir", p.ConfigDir},
		{"Created", p.CreatedAt.Local().Format("2006-01-02 15:04")},
	}
	if p.Description != "" {
		pairs = append(pairs, kvPair{"Description", p.Description})
	}
	if p.Synced() {
		pairs = append(pairs,
			kvPair{"Last sync", p.SyncedAt.Local().Format("2006-01-02 15:04")},
			kvPair{"Bundles", fmt.Sprintf("%d", p.Schema.BundleCount())},
			kvPair{"Fields", fmt.Sprintf("%d", p.Schema.FieldCount())},
		)
	} else {
		pairs = append(pairs, kvPair{"Last sync", "never"})
	}

	_, _ = fmt.Fprintln(out, renderCard("Project "+p.Name, renderKeyValueLines(pairs)))
	return nil
}

func runProjectUse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	if _, err := deps.Store.Get(name); err != nil {
		return err
	}
	deps.Settings.ActiveProject = name
	if err := deps.SaveSettings(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	_, _ = fmt.Fprintln(out, symSuccess()+" Active project is now "+cliPrimary.Render(name))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	if err := deps.Store.Delete(name); err != nil {
		return err
	}
	details := []string{"The configuration export was left untouched."}
	if deps.Settings.ActiveProject == name {
		deps.Settings.ActiveProject = ""
		if err := deps.SaveSettings(); err != nil {
			return fmt.Errorf("clear active project: %w", err)
		}
		details = append(details, "No project is active now.")
	}

	_, _ = fmt.Fprintln(out, renderSuccessCard(fmt.Sprintf("Project %q deleted", name), details...))
	return nil
}
