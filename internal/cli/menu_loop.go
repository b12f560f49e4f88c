package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/drupkit/drupkit/internal/cli/menu"
	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/internal/scaffold"
	"github.com/drupkit/drupkit/internal/story"
	"github.com/drupkit/drupkit/pkg/models"
	"github.com/drupkit/drupkit/pkg/version"
)

// runMenuLoop drives the interactive menu until the user quits. Action
// errors are printed and the menu continues; only prompt failures end the
// loop.
func runMenuLoop(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	printBanner(out, version.GetVersion())

	p := menu.NewPrompter()
	for {
		action, err := p.SelectAction()
		if err != nil {
			if errors.Is(err, menu.ErrCancelled) {
				return nil
			}
			return err
		}
		if action == menu.ActionQuit {
			return nil
		}

		if err := dispatchMenuAction(cmd, p, action); err != nil {
			if errors.Is(err, menu.ErrCancelled) {
				_, _ = fmt.Fprintln(out, cliMuted.Render("Cancelled."))
				continue
			}
			_, _ = fmt.Fprintln(out, symError()+" "+err.Error())
		}
	}
}

func dispatchMenuAction(cmd *cobra.Command, p *menu.Prompter, action menu.Action) error {
	switch action {
	case menu.ActionSync:
		return runSync(cmd, nil)
	case menu.ActionGenerateBundle:
		return menuGenerateBundle(cmd, p)
	case menu.ActionGenerateField:
		return menuGenerateField(cmd, p)
	case menu.ActionRoles:
		return menuRoles(cmd, p)
	case menu.ActionStory:
		return menuStory(cmd, p)
	case menu.ActionReport:
		return menuReport(cmd, p)
	case menu.ActionProject:
		return runProjectShow(cmd, nil)
	default:
		return fmt.Errorf("unknown menu action %q", action)
	}
}

func menuGenerateBundle(cmd *cobra.Command, p *menu.Prompter) error {
	et, err := p.SelectEntityType()
	if err != nil {
		return err
	}
	id, err := p.MachineName("Machine name", "lowercase letters, digits and underscores, e.g. landing_page")
	if err != nil {
		return err
	}
	label, err := p.Input("Label", "leave empty to derive it from the machine name", "", false)
	if err != nil {
		return err
	}
	description, err := p.Input("Description", "shown to editors, optional", "", false)
	if err != nil {
		return err
	}
	source := ""
	if et == models.EntityMedia {
		source, err = p.Input("Media source", "source plugin id", "image", false)
		if err != nil {
			return err
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

	gen, err := scaffold.NewGenerator(scaffold.WithLogger(deps.Logger))
	if err != nil {
		return err
	}
	res, err := gen.CreateBundle(dir, scaffold.BundleSpec{
		EntityType:  et,
		ID:          id,
		Label:       label,
		Description: description,
		Source:      source,
	})
	if err != nil {
		return err
	}
	return printScaffoldResult(cmd, dir, "Bundle scaffolded", res)
}

func menuGenerateField(cmd *cobra.Command, p *menu.Prompter) error {
	et, err := p.SelectEntityType()
	if err != nil {
		return err
	}
	bundle, err := menuPickBundle(cmd, p, et)
	if err != nil {
		return err
	}
	name, err := p.MachineName("Field name", "e.g. field_summary")
	if err != nil {
		return err
	}
	fieldType, err := p.Select("Field type", "", menu.FieldTypeChoices())
	if err != nil {
		return err
	}
	label, err := p.Input("Label", "leave empty to derive it from the field name", "", false)
	if err != nil {
		return err
	}
	required, err := p.Confirm("Required?", "editors must fill the field before saving")
	if err != nil {
		return err
	}
	cardText, err := p.Input("Cardinality", "1 single, -1 unlimited, n fixed maximum", "1", false)
	if err != nil {
		return err
	}
	cardinality, err := strconv.Atoi(cardText)
	if err != nil {
		return fmt.Errorf("cardinality must be a number, got %q", cardText)
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
	res, err := gen.CreateField(dir, scaffold.FieldSpec{
		EntityType:  et,
		Bundle:      bundle,
		Name:        name,
		Type:        fieldType,
		Label:       label,
		Required:    required,
		Cardinality: cardinality,
	})
	if err != nil {
		return err
	}
	return printScaffoldResult(cmd, dir, "Field scaffolded", res)
}

func menuRoles(cmd *cobra.Command, p *menu.Prompter) error {
	proj, err := resolveProject(cmd)
	if err != nil {
		return err
	}
	dir, err := resolveConfigDir(cmd, proj)
	if err != nil {
		return err
	}

	ids, err := listRoleIDs(dir)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), cliMuted.Render("No role documents in "+dir))
		return nil
	}

	roleID, err := p.Select("Role", "", menu.RoleChoices(ids))
	if err != nil {
		return err
	}
	op, err := p.Select("Operation", "", []menu.Choice{
		{Label: "Show grants", Value: "show"},
		{Label: "Grant permissions", Value: "grant"},
		{Label: "Revoke permissions", Value: "revoke"},
	})
	if err != nil {
		return err
	}
	if op == "show" {
		return printRoleGrants(cmd, dir, roleID)
	}

	et, err := p.SelectEntityType()
	if err != nil {
		return err
	}
	if len(drupal.PermissionShortNames(et)) == 0 {
		return fmt.Errorf("entity type %s has no bundle permissions", et)
	}
	bundle, err := menuPickBundle(cmd, p, et)
	if err != nil {
		return err
	}
	shorts, err := p.MultiSelect("Permissions", "space selects, enter confirms", menu.PermissionChoices(et))
	if err != nil {
		return err
	}
	if len(shorts) == 0 {
		return fmt.Errorf("no permissions selected")
	}

	revoke := op == "revoke"
	keys, err := resolvePermissionKeys(et, bundle, shorts, revoke)
	if err != nil {
		return err
	}
	return applyRoleEdit(cmd, dir, roleID, et, bundle, keys, revoke)
}

func menuStory(cmd *cobra.Command, p *menu.Prompter) error {
	proj, err := requireProject(cmd)
	if err != nil {
		return err
	}
	idx, err := requireSyncedSchema(proj)
	if err != nil {
		return err
	}

	et, err := p.SelectEntityType()
	if err != nil {
		return err
	}
	bundles := idx.Bundles(et)
	if len(bundles) == 0 {
		return fmt.Errorf("the schema has no %s bundles: run 'drupkit sync' after exporting one", et)
	}
	bundleID, err := p.Select("Bundle", "", menu.BundleChoices(bundles))
	if err != nil {
		return err
	}
	b, ok := idx.Bundle(et, bundleID)
	if !ok {
		return fmt.Errorf("bundle %s/%s is not in the synchronized schema", et, bundleID)
	}

	gen := story.NewGenerator(story.WithLogger(deps.Logger))
	path, err := gen.WriteFile(storiesDir(deps.Home, proj.Name), et, b)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSuccessCard("Story written", path))
	return nil
}

func menuReport(cmd *cobra.Command, p *menu.Prompter) error {
	proj, err := requireProject(cmd)
	if err != nil {
		return err
	}
	idx, err := requireSyncedSchema(proj)
	if err != nil {
		return err
	}

	format, err := p.Select("Format", "", []menu.Choice{
		{Label: "Table", Value: "table"},
		{Label: "Markdown", Value: "markdown"},
	})
	if err != nil {
		return err
	}
	return printSchemaReport(cmd, proj.Name, idx, format)
}

// menuPickBundle selects a bundle from the synchronized schema when the
// active project has one, falling back to free input.
func menuPickBundle(cmd *cobra.Command, p *menu.Prompter, et models.EntityType) (string, error) {
	proj, err := resolveProject(cmd)
	if err != nil {
		return "", err
	}
	if proj != nil && proj.Synced() {
		if bundles := proj.Schema.Bundles(et); len(bundles) > 0 {
			return p.Select("Bundle", "", menu.BundleChoices(bundles))
		}
	}
	return p.MachineName("Bundle", fmt.Sprintf("%s bundle machine name, e.g. %s", et, exampleBundleID(et)))
}

// exampleBundleID names a plausible bundle for prompt hints.
func exampleBundleID(et models.EntityType) string {
	switch et {
	case models.EntityMedia:
		return "gallery_image"
	case models.EntityParagraph:
		return "hero"
	case models.EntityTaxonomyTerm:
		return "topics"
	case models.EntityBlockContent:
		return "promo"
	default:
		return "article"
	}
}
