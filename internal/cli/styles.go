package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// markdownPreviewWidth is the word wrap width for glamour previews.
const markdownPreviewWidth = 100

// CLI output styles for consistent drupkit-themed terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#2563EB"})
)

// cliCard frames command results.
var cliCard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}).
	Padding(0, 2)

func symSuccess() string { return cliSuccess.Render("✓") }
func symError() string   { return cliError.Render("✗") }
func symWarning() string { return cliWarn.Render("!") }

// kvPair is one key/value line of a card body.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines aligns keys into a muted left column.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = cliMuted.Render(fmt.Sprintf("%-*s", width, p.key)) + "  " + p.value
	}
	return strings.Join(lines, "\n")
}

// renderCard draws a bordered card with a title line and body lines.
func renderCard(title string, lines ...string) string {
	parts := append([]string{cliPrimary.Bold(true).Render(title)}, lines...)
	return cliCard.Render(strings.Join(parts, "\n"))
}

// renderSuccessCard draws a card with a success-styled title.
func renderSuccessCard(title string, lines ...string) string {
	head := symSuccess() + " " + cliSuccess.Bold(true).Render(title)
	parts := append([]string{head}, lines...)
	return cliCard.Render(strings.Join(parts, "\n"))
}

// printBanner writes the interactive shell header.
func printBanner(w io.Writer, version string) {
	_, _ = fmt.Fprintln(w, cliPrimary.Bold(true).Render("drupkit")+" "+cliMuted.Render(version))
	_, _ = fmt.Fprintln(w, cliMuted.Render("Drupal configuration toolkit"))
	_, _ = fmt.Fprintln(w)
}
