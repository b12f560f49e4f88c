// Package menu provides the interactive prompt shell for drupkit: a
// top-level action select plus the per-action questions, each rendered as
// its own huh form with drupkit branding.
package menu

import "errors"

// Action identifies one top-level menu entry.
type Action string

const (
	// ActionSync runs the configuration synchronizer.
	ActionSync Action = "sync"
	// ActionGenerateBundle scaffolds a new bundle document.
	ActionGenerateBundle Action = "generate-bundle"
	// ActionGenerateField scaffolds a field storage/instance pair.
	ActionGenerateField Action = "generate-field"
	// ActionRoles manages role permissions.
	ActionRoles Action = "roles"
	// ActionStory generates bundle story markdown.
	ActionStory Action = "story"
	// ActionReport renders the schema report.
	ActionReport Action = "report"
	// ActionProject switches or inspects projects.
	ActionProject Action = "project"
	// ActionQuit leaves the menu.
	ActionQuit Action = "quit"
)

// Choice is one selectable menu option.
type Choice struct {
	Label string // Display label
	Value string // Actual value stored
	Desc  string // Optional description
}

// Error definitions for the menu package.
var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("menu cancelled by user")
	// ErrNoChoices is returned when a select has nothing to offer.
	ErrNoChoices = errors.New("no choices available")
)
