package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Heatmap colours: -1 near-white, +1 red.
var (
	colorDown = lipgloss.Color("#F4F4F8")
	colorUp   = lipgloss.Color("#FF0000")

	styleDown  = lipgloss.NewStyle().Background(colorDown).Foreground(lipgloss.Color("#0F1923"))
	styleUp    = lipgloss.NewStyle().Background(colorUp).Foreground(lipgloss.Color("#FFFFFF"))
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleFrame = lipgloss.NewStyle().Border(lipgloss.NormalBorder())
)

// RenderSnapshot draws spins as a two-colour grid. Rows are emitted last
// row first so row 0 sits at the bottom, with the title above the frame.
func RenderSnapshot(title string, spins [][]int) string {
	rows := make([]string, 0, len(spins))
	for i := len(spins) - 1; i >= 0; i-- {
		var b strings.Builder
		for _, s := range spins[i] {
			if s > 0 {
				b.WriteString(styleUp.Render("+ "))
			} else {
				b.WriteString(styleDown.Render("- "))
			}
		}
		rows = append(rows, b.String())
	}
	grid := styleFrame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Center, styleTitle.Render(title), grid)
}
