package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim   = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
)

// printer writes styled status lines to one writer, stdout in production.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func (p printer) title(s string) {
	fmt.Fprintln(p.w, StyleTitle.Render(s))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// swatches renders each color as a two-cell block followed by its hex code.
func swatches(palette []colorful.Color) string {
	var s string
	for i, c := range palette {
		if i > 0 {
			s += " "
		}
		hex := c.Clamped().Hex()
		s += lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + StyleDim.Render(hex)
	}
	return s
}
