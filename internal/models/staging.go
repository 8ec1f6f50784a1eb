// server/internal/models/staging.go
package models

type CellStatus string

const (
	CellEmpty    CellStatus = "empty"
	CellReserved CellStatus = "reserved"
	CellOccupied CellStatus = "occupied"
)

func (s CellStatus) Valid() bool {
	return s == CellEmpty || s == CellReserved || s == CellOccupied
}

type StagingCell struct {
	ID        string     `bson:"id" json:"id"`
	Row       int        `bson:"row" json:"row"`
	Col       int        `bson:"col" json:"col"`
	Status    CellStatus `bson:"status" json:"status"`
	Material  string     `bson:"material,omitempty" json:"material,omitempty"`
	TrolleyID string     `bson:"trolleyId,omitempty" json:"trolleyId,omitempty"`
}

// StagingArea is a named grid of cells used for placement tracking.
type StagingArea struct {
	ID    string        `bson:"id" json:"id"`
	Name  string        `bson:"name" json:"name"`
	Rows  int           `bson:"rows" json:"rows"`
	Cols  int           `bson:"cols" json:"cols"`
	Cells []StagingCell `bson:"cells" json:"cells"`
}
