package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const emptyCell = "."

// named colours map onto the basic ANSI palette; anything else is handed to
// termenv as is ("#0000ff", "12").
var ansiColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// Renderer draws a game view as text. Labels and the status line are shown
// in their colours and the winning line in reverse video, as far as the
// output profile allows.
type Renderer struct {
	output *termenv.Output
}

func New(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{
		output: termenv.NewOutput(w, opts...),
	}
}

func (that *Renderer) Render(view *entity.View) error {
	if _, err := io.WriteString(that.output, that.Board(view)); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

// Board returns the rendered view: column header, rows with row numbers,
// then the status line.
func (that *Renderer) Board(view *entity.View) string {
	var sb strings.Builder

	header := make([]string, view.BoardSize)
	divider := make([]string, view.BoardSize)
	for col := 0; col < view.BoardSize; col++ {
		header[col] = fmt.Sprintf(" %-2d", col)
		divider[col] = "---"
	}

	sb.WriteString(strings.TrimRight("   "+strings.Join(header, " "), " "))
	sb.WriteString("\n")

	for row, cells := range view.Cells {
		line := make([]string, len(cells))
		for col, cell := range cells {
			line[col] = " " + that.cell(cell) + " "
		}

		sb.WriteString(strings.TrimRight(fmt.Sprintf("%2d ", row)+strings.Join(line, "|"), " "))
		sb.WriteString("\n")

		if row < len(view.Cells)-1 {
			sb.WriteString("   " + strings.Join(divider, "+") + "\n")
		}
	}

	sb.WriteString(that.output.String(view.Status).Foreground(that.color(view.StatusColor)).String())
	sb.WriteString("\n")

	return sb.String()
}

func (that *Renderer) cell(cell entity.CellView) string {
	if cell.Label == entity.EmptyLabel {
		return emptyCell
	}

	style := that.output.String(cell.Label).Foreground(that.color(cell.Color)).Bold()
	if cell.Highlight {
		style = style.Reverse()
	}

	return style.String()
}

func (that *Renderer) color(name string) termenv.Color {
	if code, ok := ansiColors[strings.ToLower(name)]; ok {
		name = code
	}

	return that.output.Color(name)
}
