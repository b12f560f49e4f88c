package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "drupkit %s\n", version.GetFullVersion())
	return nil
}
