// Package catalog flattens the material catalog into the rows a requester
// picks from and turns container subtype picks into container cart items.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"station-request-api-server/internal/models"
)

var (
	ErrUnknownSubSKU    = errors.New("unknown sub-SKU type")
	ErrUnknownContainer = errors.New("unknown container subtype")
)

// Row is one selectable sub-SKU type with its parent material.
type Row struct {
	models.SubSKUType `bson:",inline"`
	SKUID             string `json:"skuId"`
	SKUName           string `json:"skuName"`
	SKUCode           string `json:"skuCode"`
}

// Label is the cart line label of the row.
func (r Row) Label() string {
	return r.SKUName + " – " + r.Name
}

func Flatten(materials []models.MaterialSKU) []Row {
	out := []Row{}
	for _, m := range materials {
		for _, sst := range m.SubSKUTypes {
			out = append(out, Row{SubSKUType: sst, SKUID: m.ID, SKUName: m.Name, SKUCode: m.Code})
		}
	}
	return out
}

// Search matches q case-insensitively on the sub-SKU name and code and the
// parent SKU name.
func Search(rows []Row, q string) []Row {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []Row{}
	for _, r := range rows {
		if q == "" ||
			strings.Contains(strings.ToLower(r.Name), q) ||
			strings.Contains(strings.ToLower(r.Code), q) ||
			strings.Contains(strings.ToLower(r.SKUName), q) {
			out = append(out, r)
		}
	}
	return out
}

// FindSubSKU locates a sub-SKU type and its material.
func FindSubSKU(materials []models.MaterialSKU, subSKUTypeID string) (models.MaterialSKU, models.SubSKUType, error) {
	for _, m := range materials {
		if sst, ok := m.SubSKU(subSKUTypeID); ok {
			return m, sst, nil
		}
	}
	return models.MaterialSKU{}, models.SubSKUType{}, fmt.Errorf("%s: %w", subSKUTypeID, ErrUnknownSubSKU)
}

// CartItem builds the material cart line for a sub-SKU type, bounded by the
// catalog's max quantity.
func CartItem(materials []models.MaterialSKU, subSKUTypeID string, quantity int) (models.CartItem, error) {
	m, sst, err := FindSubSKU(materials, subSKUTypeID)
	if err != nil {
		return models.CartItem{}, err
	}
	return models.CartItemFor(m, sst, quantity)
}

// SelectContainers turns the chosen subtypes of c into container cart items
// of quantity 1, in the order given. Duplicate ids are kept once.
func SelectContainers(c models.Container, subtypeIDs []string) ([]models.ContainerCartItem, error) {
	out := []models.ContainerCartItem{}
	seen := make(map[string]bool, len(subtypeIDs))
	for _, id := range subtypeIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		st, ok := c.Subtype(id)
		if !ok {
			return nil, fmt.Errorf("%s in %s: %w", id, c.ID, ErrUnknownContainer)
		}
		item, err := models.NewContainerCartItem(c, st, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// FindContainer returns the container with the given id.
func FindContainer(containers []models.Container, id string) (models.Container, error) {
	for _, c := range containers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Container{}, fmt.Errorf("%s: %w", id, ErrUnknownContainer)
}
