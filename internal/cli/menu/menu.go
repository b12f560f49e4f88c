package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/drupkit/drupkit/internal/drupal"
	"github.com/drupkit/drupkit/internal/scaffold"
	"github.com/drupkit/drupkit/pkg/models"
)

// entityTypeLabels maps entity types to their menu labels.
var entityTypeLabels = map[models.EntityType]string{
	models.EntityNode:         "Content type",
	models.EntityMedia:        "Media type",
	models.EntityParagraph:    "Paragraph type",
	models.EntityTaxonomyTerm: "Vocabulary",
	models.EntityBlockContent: "Block content type",
}

// ActionChoices returns the top-level menu entries.
func ActionChoices() []Choice {
	return []Choice{
		{Label: "Sync", Value: string(ActionSync), Desc: "read the config export into the schema index"},
		{Label: "Generate bundle", Value: string(ActionGenerateBundle), Desc: "scaffold a new content/media/paragraph type"},
		{Label: "Generate field", Value: string(ActionGenerateField), Desc: "scaffold a field storage/instance pair"},
		{Label: "Roles", Value: string(ActionRoles), Desc: "inspect and edit role permissions"},
		{Label: "Story", Value: string(ActionStory), Desc: "write bundle story markdown"},
		{Label: "Report", Value: string(ActionReport), Desc: "render the schema report"},
		{Label: "Project", Value: string(ActionProject), Desc: "show the active project"},
		{Label: "Quit", Value: string(ActionQuit)},
	}
}

// EntityTypeChoices returns one choice per supported entity type.
func EntityTypeChoices() []Choice {
	types := models.AllEntityTypes()
	choices := make([]Choice, len(types))
	for i, et := range types {
		choices[i] = Choice{Label: entityTypeLabels[et], Value: string(et), Desc: string(et)}
	}
	return choices
}

// BundleChoices returns one choice per bundle, labeled with the human label.
func BundleChoices(bundles []*models.Bundle) []Choice {
	choices := make([]Choice, len(bundles))
	for i, b := range bundles {
		label := b.Label
		if label == "" {
			label = b.ID
		}
		choices[i] = Choice{Label: label, Value: b.ID, Desc: b.ID}
	}
	return choices
}

// FieldTypeChoices returns one choice per supported field type.
func FieldTypeChoices() []Choice {
	types := scaffold.FieldTypes()
	choices := make([]Choice, len(types))
	for i, t := range types {
		choices[i] = Choice{Label: t, Value: t}
	}
	return choices
}

// PermissionChoices returns the entity type's permission vocabulary as
// choices, short names only.
func PermissionChoices(et models.EntityType) []Choice {
	names := drupal.PermissionShortNames(et)
	choices := make([]Choice, len(names))
	for i, n := range names {
		choices[i] = Choice{Label: n, Value: n}
	}
	return choices
}

// RoleChoices returns one choice per role id.
func RoleChoices(ids []string) []Choice {
	choices := make([]Choice, len(ids))
	for i, id := range ids {
		choices[i] = Choice{Label: id, Value: id}
	}
	return choices
}

// Prompter runs menu prompts against the terminal. Each question runs as
// its own huh.Form: huh v0.8.x misplaces the viewport when several groups
// share one form, so the menu never batches questions.
type Prompter struct {
	theme *huh.Theme
}

// NewPrompter creates a Prompter with the drupkit theme.
func NewPrompter() *Prompter {
	return &Prompter{theme: newMenuTheme()}
}

// Select asks the user to pick one of the given choices.
func (p *Prompter) Select(title, description string, choices []Choice) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		key := c.Label
		if c.Desc != "" {
			key = c.Label + " - " + c.Desc
		}
		opts[i] = huh.NewOption(key, c.Value)
	}

	var selected string
	sel := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&selected)

	if err := p.run(sel); err != nil {
		return "", err
	}
	return selected, nil
}

// MultiSelect asks the user to pick any number of the given choices.
func (p *Prompter) MultiSelect(title, description string, choices []Choice) ([]string, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}

	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		key := c.Label
		if c.Desc != "" {
			key = c.Label + " - " + c.Desc
		}
		opts[i] = huh.NewOption(key, c.Value)
	}

	var selected []string
	ms := huh.NewMultiSelect[string]().
		Title(title).
		Description(description).
		Options(opts...).
		Value(&selected)

	if err := p.run(ms); err != nil {
		return nil, err
	}
	return selected, nil
}

// SelectAction asks for the top-level menu action.
func (p *Prompter) SelectAction() (Action, error) {
	v, err := p.Select("What would you like to do?", "", ActionChoices())
	if err != nil {
		return "", err
	}
	return Action(v), nil
}

// SelectEntityType asks for one of the supported entity types.
func (p *Prompter) SelectEntityType() (models.EntityType, error) {
	v, err := p.Select("Entity type", "", EntityTypeChoices())
	if err != nil {
		return "", err
	}
	return models.EntityType(v), nil
}

// Input asks for a free-form value. Empty input falls back to placeholder;
// required inputs reject empty values.
func (p *Prompter) Input(title, description, placeholder string, required bool) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value)

	if placeholder != "" {
		inp = inp.Placeholder(placeholder)
	}
	inp = inp.Validate(func(val string) error {
		v := strings.TrimSpace(val)
		if v == "" && placeholder != "" {
			v = placeholder
		}
		if required && v == "" {
			return errors.New("a value is required")
		}
		return nil
	})

	if err := p.run(inp); err != nil {
		return "", err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		value = placeholder
	}
	return value, nil
}

// MachineName asks for a machine name and validates it.
func (p *Prompter) MachineName(title, description string) (string, error) {
	var value string
	inp := huh.NewInput().
		Title(title).
		Description(description).
		Value(&value).
		Validate(func(val string) error {
			if !drupal.IsMachineName(strings.TrimSpace(val)) {
				return errors.New("lowercase letters, digits and underscores only, starting with a letter")
			}
			return nil
		})

	if err := p.run(inp); err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(title, description string) (bool, error) {
	var confirmed bool
	c := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirmed)

	if err := p.run(c); err != nil {
		return false, err
	}
	return confirmed, nil
}

// run executes a single field as its own form, mapping user aborts to
// ErrCancelled.
func (p *Prompter) run(field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("menu error: %w", err)
	}
	return nil
}
