package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepgd/internal/ui/theme"
)

// PaletteState is a question's answer progress as shown in the palette.
type PaletteState int

const (
	PaletteUnvisited PaletteState = iota
	PaletteVisited
	PaletteAnswered
)

// PaletteCell is one question slot in the palette grid.
type PaletteCell struct {
	Number  int
	State   PaletteState
	Marked  bool
	Current bool
}

var (
	cellUnvisited = lipgloss.NewStyle().Foreground(theme.TextDim)
	cellVisited   = lipgloss.NewStyle().Foreground(theme.Accent)
	cellAnswered  = lipgloss.NewStyle().Foreground(theme.Success)
	cellMarked    = lipgloss.NewStyle().Foreground(theme.Marked).Bold(true)
	cellCurrent   = lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Primary).Bold(true)
)

// RenderPalette lays the cells out as a grid, perRow cells per line.
// A mark overrides the state color; the current cell is highlighted
// over everything else.
func RenderPalette(cells []PaletteCell, perRow int) string {
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for _, c := range cells {
		row = append(row, renderCell(c))
		if len(row) == perRow {
			rows = append(rows, strings.Join(row, " "))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, " "))
	}
	return strings.Join(rows, "\n")
}

func renderCell(c PaletteCell) string {
	label := fmt.Sprintf("%2d", c.Number)
	if c.Marked {
		label += "●"
	} else {
		label += " "
	}

	switch {
	case c.Current:
		return cellCurrent.Render(label)
	case c.Marked:
		return cellMarked.Render(label)
	case c.State == PaletteAnswered:
		return cellAnswered.Render(label)
	case c.State == PaletteVisited:
		return cellVisited.Render(label)
	default:
		return cellUnvisited.Render(label)
	}
}

// PaletteLegend describes the palette colors for the exam sidebar.
func PaletteLegend() string {
	entries := []string{
		cellAnswered.Render("■") + " answered",
		cellVisited.Render("■") + " seen",
		cellUnvisited.Render("■") + " not seen",
		cellMarked.Render("●") + " marked",
	}
	return strings.Join(entries, "  ")
}
