// server/internal/models/cart_item.go
package models

import "fmt"

// CartItem is a material line item of the request in progress.
// Invariant: 1 <= Quantity <= MaxQty.
type CartItem struct {
	SubSKUTypeID   string `bson:"subSkuTypeId" json:"subSkuTypeId"`
	SubSKUTypeName string `bson:"subSkuTypeName" json:"subSkuTypeName"`
	SKUName        string `bson:"skuName" json:"skuName"`
	Quantity       int    `bson:"quantity" json:"quantity"`
	MaxQty         int    `bson:"maxQty" json:"maxQty"`
}

// NewCartItem builds a CartItem and enforces the quantity bounds.
func NewCartItem(subSKUTypeID, subSKUTypeName, skuName string, quantity, maxQty int) (CartItem, error) {
	item := CartItem{
		SubSKUTypeID:   subSKUTypeID,
		SubSKUTypeName: subSKUTypeName,
		SKUName:        skuName,
		Quantity:       quantity,
		MaxQty:         maxQty,
	}
	if err := item.Validate(); err != nil {
		return CartItem{}, err
	}
	return item, nil
}

// CartItemFor builds a CartItem for a sub-SKU type of a material.
func CartItemFor(sku MaterialSKU, sst SubSKUType, quantity int) (CartItem, error) {
	return NewCartItem(sst.ID, sst.Name, sku.Name, quantity, sst.MaxQty)
}

func (i CartItem) Validate() error {
	if i.SubSKUTypeID == "" {
		return fmt.Errorf("cart item: %w", ErrInvalidID)
	}
	if i.MaxQty < 1 {
		return fmt.Errorf("cart item %s: %w", i.SubSKUTypeID, ErrInvalidMaxQty)
	}
	if i.Quantity < 1 || i.Quantity > i.MaxQty {
		return fmt.Errorf("cart item %s: quantity %d not in [1, %d]: %w", i.SubSKUTypeID, i.Quantity, i.MaxQty, ErrInvalidQuantity)
	}
	return nil
}

// Label is the display text of the line, e.g. "Widget A – Sub-SKU Type 1".
func (i CartItem) Label() string {
	return i.SKUName + " – " + i.SubSKUTypeName
}

// ContainerCartItem is a container line item of the request in progress.
type ContainerCartItem struct {
	ContainerID   string        `bson:"containerId" json:"containerId"`
	ContainerType ContainerType `bson:"containerType" json:"containerType"`
	SubtypeID     string        `bson:"subtypeId" json:"subtypeId"`
	SubtypeName   string        `bson:"subtypeName" json:"subtypeName"`
	Quantity      int           `bson:"quantity" json:"quantity"`
}

func NewContainerCartItem(c Container, subtype ContainerSubtype, quantity int) (ContainerCartItem, error) {
	item := ContainerCartItem{
		ContainerID:   c.ID,
		ContainerType: c.Type,
		SubtypeID:     subtype.ID,
		SubtypeName:   subtype.Name,
		Quantity:      quantity,
	}
	if err := item.Validate(); err != nil {
		return ContainerCartItem{}, err
	}
	return item, nil
}

func (i ContainerCartItem) Validate() error {
	if i.ContainerID == "" || i.SubtypeID == "" {
		return fmt.Errorf("container cart item: %w", ErrInvalidID)
	}
	if !i.ContainerType.Valid() {
		return fmt.Errorf("container cart item %s: type %q: %w", i.SubtypeID, i.ContainerType, ErrInvalidEnum)
	}
	if i.Quantity < 1 {
		return fmt.Errorf("container cart item %s: quantity %d: %w", i.SubtypeID, i.Quantity, ErrInvalidQuantity)
	}
	return nil
}
