package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "drupkit",
	Short: "Drupkit: Drupal configuration toolkit",
	Long: `Drupkit reads a Drupal configuration export (config/sync) into a clean
schema picture: content types, media types, paragraph types, vocabularies
and block content types together with their merged fields.

On top of that picture it scaffolds new bundle and field configuration,
reconciles the enabled module list, edits role permissions, and generates
stories and schema reports for the content team.

Run drupkit without arguments on a terminal to open the interactive menu.`,
	Version: version.GetVersion(),
	Args:    cobra.NoArgs,
	RunE:    runRoot,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("drupkit %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return configureFromFlags(cmd)
	}
}

// runRoot opens the interactive menu on a terminal and prints help
// everywhere else (pipes, CI).
func runRoot(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return cmd.Help()
	}
	return runMenuLoop(cmd)
}
