package cli

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type frameMsg struct {
	index, count int
	view         string
}

type doneMsg struct {
	err error
}

// playerModel shows frames rendered by the animator as they arrive.
type playerModel struct {
	view         string
	index, count int
	done         bool
	err          error
}

func newPlayerModel() playerModel {
	return playerModel{}
}

func (m playerModel) Init() tea.Cmd {
	return nil
}

func (m playerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
	case frameMsg:
		m.view = msg.view
		m.index, m.count = msg.index, msg.count
	case doneMsg:
		m.done = true
		m.err = msg.err
	}
	return m, nil
}

func (m playerModel) View() string {
	var b strings.Builder
	b.WriteString(m.view)
	b.WriteString("\n")
	status := fmt.Sprintf("frame %d/%d", m.index+1, max(m.count, 1))
	if m.done {
		status += "  done"
	}
	if m.err != nil {
		status += "  " + m.err.Error()
	}
	b.WriteString(StyleDim.Render(status + "  q quit"))
	b.WriteString("\n")
	return b.String()
}

// renderHalfBlocks draws two image rows per terminal line: the upper pixel
// as the foreground of "▀", the lower one as its background.
func renderHalfBlocks(img *image.NRGBA) string {
	r := img.Bounds()
	var b strings.Builder
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(cellHex(img, x, y)))
			if y+1 < r.Max.Y {
				style = style.Background(lipgloss.Color(cellHex(img, x, y+1)))
			}
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cellHex returns the pixel at (x, y) composited over black as "#rrggbb".
func cellHex(img *image.NRGBA, x, y int) string {
	c := img.NRGBAAt(x, y)
	a := float64(c.A) / 255.0
	return colorful.Color{
		R: float64(c.R) / 255.0 * a,
		G: float64(c.G) / 255.0 * a,
		B: float64(c.B) / 255.0 * a,
	}.Hex()
}
