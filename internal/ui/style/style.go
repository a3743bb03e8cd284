// Package style holds the colors and icons shared by the logger and the
// build reporter.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors.
var (
	Success = lipgloss.Color("#22A06B")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
	Muted   = lipgloss.Color("#667085")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
)

// Paint colors s for out. The color is downsampled to the output profile, so
// an Ascii output returns s unchanged.
func Paint(out *termenv.Output, s string, c lipgloss.Color) string {
	return out.String(s).Foreground(out.Color(string(c))).String()
}

// Faint dims s for out.
func Faint(out *termenv.Output, s string) string {
	return out.String(s).Faint().String()
}
