// Package ui provides terminal output components for drupkit: an animated
// spinner and progress bar for interactive sessions, and plain log-line
// fallbacks when stdout is not a TTY or color is disabled.
package ui

// ColorPalette holds the drupkit brand colors as hex strings.
type ColorPalette struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme carries the render options shared by all UI components.
type Theme struct {
	NoColor bool
	Colors  ColorPalette
}

// DefaultTheme returns the drupkit terminal theme.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ColorPalette{
			Primary:   "#2563EB",
			Secondary: "#7C3AED",
			Success:   "#10B981",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
	}
}

// Progress creates progress indicators appropriate for the current terminal.
type Progress interface {
	// Start creates a determinate progress bar with the given total.
	Start(title string, total int) ProgressBar
	// Spinner creates an indeterminate spinner.
	Spinner(title string) Spinner
}

// ProgressBar is a determinate progress indicator.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// Spinner is an indeterminate progress indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}
