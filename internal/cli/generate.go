package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/scaffold"
	"github.com/drupkit/drupkit/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Scaffold new configuration documents",
	Long: `Scaffold new configuration documents into the export directory and
reconcile the modules they need into core.extension.yml. Existing files
are never overwritten.`,
}

var generateBundleCmd = &cobra.Command{
	Use:   "bundle <entity-type> <id>",
	Short: "Scaffold a bundle document",
	Long: `Scaffold the bundle document for a new content type, media type,
paragraph type, vocabulary or block content type.

Examples:
  drupkit generate bundle node landing_page --label "Landing Page"
  drupkit generate bundle media gallery_image
  drupkit generate bundle paragraph hero --description "Hero banner"`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerateBundle,
}

var generateFieldCmd = &cobra.Command{
	Use:   "field <entity-type> <bundle> <name>",
	Short: "Scaffold a field storage/instance pair",
	Long: `Scaffold the storage and instance documents attaching a field to a
bundle. An existing storage document is reused, which is how a field is
shared across bundles.

Examples:
  drupkit generate field node article field_summary --type text_long
  drupkit generate field node article field_tags --type entity_reference --cardinality -1
  drupkit generate field media gallery_image field_credit --type string --required`,
	Args: cobra.ExactArgs(3),
	RunE: runGenerateField,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateBundleCmd)
	generateCmd.AddCommand(generateFieldCmd)

	for _, c := range []*cobra.Command{generateBundleCmd, generateFieldCmd} {
		c.Flags().String("project", "", "Project name (default: active project)")
		c.Flags().StringP("dir", "d", "", "Configuration export directory (overrides the project's)")
		c.Flags().String("label", "", "Human label (default: derived from the machine name)")
		c.Flags().String("description", "", "Description shown to editors")
	}
	generateBundleCmd.Flags().String("source", "", "Media source plugin (media only, default: image)")
	generateFieldCmd.Flags().StringP("type", "t", "string", "Field type, see 'drupkit generate field --help'")
	generateFieldCmd.Flags().Bool("required", false, "Make the field required")
	generateFieldCmd.Flags().Int("cardinality", 1, "Value count: 1 single, -1 unlimited, n fixed maximum")
}

func runGenerateBundle(cmd *cobra.Command, args []string) error {
	et := models.EntityType(args[0])
	if !et.IsValid() {
		return fmt.Errorf("unknown entity type %q: valid types are %s", args[0], entityTypeList())
	}

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	gen, err := scaffold.NewGenerator(scaffold.WithLogger(deps.Logger))
	if err != nil {
		return err
	}
	res, err := gen.CreateBundle(dir, scaffold.BundleSpec{
		EntityType:  et,
		ID:          args[1],
		Label:       getStringFlag(cmd, "label"),
		Description: getStringFlag(cmd, "description"),
		Source:      getStringFlag(cmd, "source"),
	})
	if err != nil {
		return err
	}

	return printScaffoldResult(cmd, dir, "Bundle scaffolded", res)
}

func runGenerateField(cmd *cobra.Command, args []string) error {
	et := models.EntityType(args[0])
	if !et.IsValid() {
		return fmt.Errorf("unknown entity type %q: valid types are %s", args[0], entityTypeList())
	}

	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	cardinality, err := cmd.Flags().GetInt("cardinality")
	if err != nil {
		cardinality = 1
	}

	gen, err := scaffold.NewGenerator(scaffold.WithLogger(deps.Logger))
	if err != nil {
		return err
	}
	res, err := gen.CreateField(dir, scaffold.FieldSpec{
		EntityType:  et,
		Bundle:      args[1],
		Name:        args[2],
		Type:        getStringFlag(cmd, "type"),
		Label:       getStringFlag(cmd, "label"),
		Description: getStringFlag(cmd, "description"),
		Required:    getBoolFlag(cmd, "required"),
		Cardinality: cardinality,
	})
	if err != nil {
		return err
	}

	return printScaffoldResult(cmd, dir, "Field scaffolded", res)
}

// printScaffoldResult reconciles the required modules and renders the
// outcome card shared by both generate commands.
func printScaffoldResult(cmd *cobra.Command, dir, title string, res *scaffold.Result) error {
	out := cmd.OutOrStdout()

	added, err := reconcileExtensions(dir, res.Modules)
	if err != nil {
		return fmt.Errorf("reconcile modules: %w", err)
	}

	var details []string
	for _, f := range res.CreatedFiles {
		details = append(details, symSuccess()+" "+f)
	}
	for _, f := range res.SkippedFiles {
		details = append(details, cliMuted.Render("= "+f+" (already present, shared)"))
	}
	if len(added) > 0 {
		details = append(details, "", "Modules enabled: "+strings.Join(added, ", "))
	}
	details = append(details, "", cliMuted.Render("Run 'drupkit sync' to refresh the schema index."))

	_, _ = fmt.Fprintln(out, renderSuccessCard(title, details...))
	return nil
}

// entityTypeList names the valid entity type arguments.
func entityTypeList() string {
	types := models.AllEntityTypes()
	names := make([]string, len(types))
	for i, et := range types {
		names[i] = string(et)
	}
	return strings.Join(names, ", ")
}
