package staging

import (
	"fmt"
	"strconv"

	"station-request-api-server/internal/models"
)

type Orientation string

const (
	// Vertical lays rows (A, B, ...) top to bottom with columns (1, 2, ...) across.
	Vertical Orientation = "vertical"
	// Horizontal lays columns top to bottom with rows across.
	Horizontal Orientation = "horizontal"
)

// GridCell addresses one slot of the rendered grid. Cell is nil when the
// area has no cell at that position.
type GridCell struct {
	RowLabel  string              `json:"rowLetter"`
	ColNumber int                 `json:"colNumber"`
	Cell      *models.StagingCell `json:"cell"`
}

type GridLine struct {
	Label string     `json:"label"`
	Cells []GridCell `json:"cells"`
}

type Grid struct {
	AreaID       string      `json:"areaId"`
	Orientation  Orientation `json:"orientation"`
	HeaderLabels []string    `json:"headerLabels"`
	Lines        []GridLine  `json:"lines"`
	Summary      Summary     `json:"summary"`
}

// BuildGrid arranges the cells of area for the given orientation. Cell
// addresses (row letter, column number) do not depend on orientation.
func BuildGrid(area models.StagingArea, orientation Orientation) (Grid, error) {
	if orientation == "" {
		orientation = Vertical
	}
	if orientation != Vertical && orientation != Horizontal {
		return Grid{}, fmt.Errorf("grid orientation %q: %w", orientation, models.ErrInvalidEnum)
	}

	index := make(map[[2]int]int, len(area.Cells))
	for i, c := range area.Cells {
		index[[2]int{c.Row, c.Col}] = i
	}

	outer, inner := area.Rows, area.Cols
	if orientation == Horizontal {
		outer, inner = area.Cols, area.Rows
	}

	g := Grid{
		AreaID:       area.ID,
		Orientation:  orientation,
		HeaderLabels: make([]string, 0, inner),
		Lines:        make([]GridLine, 0, outer),
		Summary:      Summarize(area),
	}
	for i := 0; i < inner; i++ {
		g.HeaderLabels = append(g.HeaderLabels, axisLabel(orientation, false, i))
	}

	for o := 0; o < outer; o++ {
		line := GridLine{Label: axisLabel(orientation, true, o), Cells: make([]GridCell, 0, inner)}
		for in := 0; in < inner; in++ {
			row, col := o, in
			if orientation == Horizontal {
				row, col = in, o
			}
			gc := GridCell{RowLabel: RowLabel(row), ColNumber: col + 1}
			if idx, ok := index[[2]int{row, col}]; ok {
				cell := area.Cells[idx]
				gc.Cell = &cell
			}
			line.Cells = append(line.Cells, gc)
		}
		g.Lines = append(g.Lines, line)
	}
	return g, nil
}

func axisLabel(o Orientation, outer bool, i int) string {
	// rows carry letters, columns carry numbers
	rowAxis := outer == (o == Vertical)
	if rowAxis {
		return RowLabel(i)
	}
	return strconv.Itoa(i + 1)
}
