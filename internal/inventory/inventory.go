// Package inventory classifies and filters the WIP inventory view.
package inventory

import (
	"fmt"
	"strings"

	"station-request-api-server/internal/models"
)

// FinishingSoonAt is the highest available count still shown as finishing soon.
const FinishingSoonAt = 4

func Classify(row models.InventoryRow) models.InventoryStatus {
	switch {
	case row.Available <= 0:
		return models.InventoryOutOfStock
	case row.Available <= FinishingSoonAt:
		return models.InventoryFinishingSoon
	default:
		return models.InventoryAvailable
	}
}

// Row is an inventory line together with its stock status.
type Row struct {
	models.InventoryRow `bson:",inline"`
	Status              models.InventoryStatus `json:"status"`
}

// Tab is "all" or one of the inventory statuses.
type Tab string

const TabAll Tab = "all"

func ParseTab(s string) (Tab, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TabAll, nil
	}
	if Tab(s) == TabAll || models.InventoryStatus(s).Valid() {
		return Tab(s), nil
	}
	return "", fmt.Errorf("inventory tab %q: %w", s, models.ErrInvalidEnum)
}

func Classified(rows []models.InventoryRow) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, Row{InventoryRow: r, Status: Classify(r)})
	}
	return out
}

func Filter(rows []Row, tab Tab) []Row {
	out := []Row{}
	for _, r := range rows {
		if tab == TabAll || models.InventoryStatus(tab) == r.Status {
			out = append(out, r)
		}
	}
	return out
}

// Search matches q case-insensitively against SKU and sub-SKU type.
func Search(rows []Row, q string) []Row {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []Row{}
	for _, r := range rows {
		if q == "" ||
			strings.Contains(strings.ToLower(r.SKU), q) ||
			strings.Contains(strings.ToLower(r.SubSKUType), q) {
			out = append(out, r)
		}
	}
	return out
}

type Totals struct {
	Produced      int `json:"produced"`
	PreProcessing int `json:"preProcessing"`
	Available     int `json:"available"`
	Reserved      int `json:"reserved"`
	InTransit     int `json:"inTransit"`
	Consumed      int `json:"consumed"`
	Total         int `json:"total"`
}

func Sum(rows []Row) Totals {
	var t Totals
	for _, r := range rows {
		t.Produced += r.Produced
		t.PreProcessing += r.PreProcessing
		t.Available += r.Available
		t.Reserved += r.Reserved
		t.InTransit += r.InTransit
		t.Consumed += r.Consumed
		t.Total += r.Total
	}
	return t
}

// Overview counts rows per status.
type Overview struct {
	Available     int `json:"available"`
	FinishingSoon int `json:"finishing_soon"`
	OutOfStock    int `json:"out_of_stock"`
}

func Summarize(rows []Row) Overview {
	var o Overview
	for _, r := range rows {
		switch r.Status {
		case models.InventoryAvailable:
			o.Available++
		case models.InventoryFinishingSoon:
			o.FinishingSoon++
		case models.InventoryOutOfStock:
			o.OutOfStock++
		}
	}
	return o
}

// View is the inventory page: the filtered rows plus totals over them and an
// overview over every row.
type View struct {
	Rows     []Row    `json:"rows"`
	Totals   Totals   `json:"totals"`
	Overview Overview `json:"overview"`
}

func Build(rows []models.InventoryRow, tab Tab, q string) View {
	all := Classified(rows)
	shown := Search(Filter(all, tab), q)
	return View{Rows: shown, Totals: Sum(shown), Overview: Summarize(all)}
}
