// Package staging lays out staging-area grids and summarises their occupancy.
package staging

import (
	"fmt"
	"math"

	"station-request-api-server/internal/models"
)

// BuildCells generates a rows x cols grid in row-major order. Every 7th
// cell is occupied by a trolley, every 5th of the rest is reserved.
func BuildCells(rows, cols int) []models.StagingCell {
	cells := make([]models.StagingCell, 0, rows*cols)
	for i := 0; i < rows*cols; i++ {
		cell := models.StagingCell{
			ID:     fmt.Sprintf("cell-%d", i),
			Row:    i / cols,
			Col:    i % cols,
			Status: models.CellEmpty,
		}
		switch {
		case i%7 == 0:
			cell.Status = models.CellOccupied
			cell.Material = "Widget A – T1"
			cell.TrolleyID = fmt.Sprintf("TR-%d", 100+i)
		case i%5 == 0:
			cell.Status = models.CellReserved
		}
		cells = append(cells, cell)
	}
	return cells
}

// RowLabel maps a zero-based row index to its letter label: A..Z, AA..AZ,
// BA.. and so on.
func RowLabel(idx int) string {
	if idx < 0 {
		return ""
	}
	label := ""
	for n := idx; ; n = n/26 - 1 {
		label = string(rune('A'+n%26)) + label
		if n < 26 {
			break
		}
	}
	return label
}

type Summary struct {
	Occupied int `json:"occupied"`
	Reserved int `json:"reserved"`
	Used     int `json:"used"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

func Summarize(area models.StagingArea) Summary {
	s := Summary{Total: area.Rows * area.Cols}
	for _, c := range area.Cells {
		switch c.Status {
		case models.CellOccupied:
			s.Occupied++
		case models.CellReserved:
			s.Reserved++
		}
	}
	s.Used = s.Occupied + s.Reserved
	if s.Total > 0 {
		s.Percent = int(math.Round(float64(s.Used) / float64(s.Total) * 100))
	}
	return s
}

// IsActive reports whether any cell of the area is occupied.
func IsActive(area models.StagingArea) bool {
	for _, c := range area.Cells {
		if c.Status == models.CellOccupied {
			return true
		}
	}
	return false
}

type Tab string

const (
	TabAll      Tab = "all"
	TabActive   Tab = "active"
	TabInactive Tab = "inactive"
)

func Filter(areas []models.StagingArea, tab Tab) ([]models.StagingArea, error) {
	switch tab {
	case TabAll, "", TabActive, TabInactive:
	default:
		return nil, fmt.Errorf("staging tab %q: %w", tab, models.ErrInvalidEnum)
	}
	out := []models.StagingArea{}
	for _, a := range areas {
		if tab == TabActive && !IsActive(a) || tab == TabInactive && IsActive(a) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ForStation keeps the areas whose id is in ids, preserving area order.
func ForStation(areas []models.StagingArea, ids []string) []models.StagingArea {
	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	out := []models.StagingArea{}
	for _, a := range areas {
		if _, ok := allowed[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}

// CellAt returns the cell at row/col.
func CellAt(area models.StagingArea, row, col int) (models.StagingCell, bool) {
	for _, c := range area.Cells {
		if c.Row == row && c.Col == col {
			return c, true
		}
	}
	return models.StagingCell{}, false
}

// EditState is the state shown in the cell edit panel.
type EditState string

const (
	EditAvailable EditState = "available"
	EditReserved  EditState = "reserved"
	EditBlocked   EditState = "blocked"
)

func EditStateFor(cell models.StagingCell) EditState {
	switch cell.Status {
	case models.CellEmpty:
		return EditAvailable
	case models.CellReserved:
		return EditReserved
	default:
		return EditBlocked
	}
}
