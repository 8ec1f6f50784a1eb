// server/internal/models/inventory.go
package models

// InventoryRow is one WIP inventory line per sub-SKU type.
type InventoryRow struct {
	SKU           string `bson:"sku" json:"sku"`
	SubSKUType    string `bson:"subSkuType" json:"subSkuType"`
	Produced      int    `bson:"produced" json:"produced"`
	PreProcessing int    `bson:"preProcessing" json:"preProcessing"`
	Available     int    `bson:"available" json:"available"`
	Reserved      int    `bson:"reserved" json:"reserved"`
	InTransit     int    `bson:"inTransit" json:"inTransit"`
	Consumed      int    `bson:"consumed" json:"consumed"`
	Total         int    `bson:"total" json:"total"`
}
