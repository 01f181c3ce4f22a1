package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
	Error   lipgloss.Color // Failure color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Error:   lipgloss.Color("#ff5f5f"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Stage   lipgloss.Style
	Bar     lipgloss.Style
	BarDim  lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Stage:   lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Bar:     lipgloss.NewStyle().Foreground(t.Primary),
		BarDim:  lipgloss.NewStyle().Foreground(t.Dim),
		Message: lipgloss.NewStyle().Foreground(t.Dim),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
	}
}

// ProgressBar renders in-place progress updates on a single terminal line.
type ProgressBar struct {
	Styles Styles
	Width  int // bar width in cells, 0 for the default

	w        io.Writer
	lastLine int
}

// NewProgressBar creates a progress bar writing to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	return &ProgressBar{
		Styles: NewStyles(DefaultTheme),
		Width:  30,
		w:      w,
	}
}

// Update redraws the bar with the given stage, percentage, and message.
func (p *ProgressBar) Update(stage string, percent int, message string) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	width := p.Width
	if width <= 0 {
		width = 30
	}
	filled := width * percent / 100

	bar := p.Styles.Bar.Render(strings.Repeat("█", filled)) +
		p.Styles.BarDim.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf("%s %s %3d%%",
		p.Styles.Stage.Render(fmt.Sprintf("%-10s", stage)), bar, percent)
	if message != "" {
		line += " " + p.Styles.Message.Render(message)
	}

	p.redraw(line)
}

// Fail redraws the bar as a failure line.
func (p *ProgressBar) Fail(message string) {
	p.redraw(p.Styles.Error.Render("✗ " + message))
}

// Done finishes the bar, moving the cursor to the next line.
func (p *ProgressBar) Done() {
	fmt.Fprintln(p.w)
	p.lastLine = 0
}

func (p *ProgressBar) redraw(line string) {
	// Clear the previous render before writing the new one.
	if p.lastLine > 0 {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.lastLine))
	} else {
		fmt.Fprint(p.w, "\r")
	}
	fmt.Fprint(p.w, line)
	p.lastLine = lipgloss.Width(line)
}
