// server/internal/models/catalog.go
package models

// SubSKUType is the orderable sub-variant of a material SKU.
type SubSKUType struct {
	ID              string `bson:"id" json:"id"`
	Name            string `bson:"name" json:"name"`
	Code            string `bson:"code" json:"code"`
	Available       int    `bson:"available" json:"available"`
	Reserved        int    `bson:"reserved" json:"reserved"`
	MaxQty          int    `bson:"maxQty" json:"maxQty"`
	Active          bool   `bson:"active" json:"active"`
	InPreProcessing bool   `bson:"inPreProcessing" json:"inPreProcessing"` // manufactured, pre-processing not done yet
}

type MaterialSKU struct {
	ID          string       `bson:"id" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Code        string       `bson:"code" json:"code"`
	SubSKUTypes []SubSKUType `bson:"subSkuTypes" json:"subSkuTypes"`
}

// SubSKU returns the sub-SKU type with the given id.
func (m MaterialSKU) SubSKU(id string) (SubSKUType, bool) {
	for _, s := range m.SubSKUTypes {
		if s.ID == id {
			return s, true
		}
	}
	return SubSKUType{}, false
}

type ContainerType string

const (
	ContainerTrolley ContainerType = "trolley"
	ContainerPallet  ContainerType = "pallet"
	ContainerBin     ContainerType = "bin"
)

func (t ContainerType) Valid() bool {
	switch t {
	case ContainerTrolley, ContainerPallet, ContainerBin:
		return true
	}
	return false
}

type ContainerSubtype struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Available int    `bson:"available" json:"available"`
}

type Container struct {
	ID       string             `bson:"id" json:"id"`
	Type     ContainerType      `bson:"type" json:"type"`
	Subtypes []ContainerSubtype `bson:"subtypes" json:"subtypes"`
}

func (c Container) Subtype(id string) (ContainerSubtype, bool) {
	for _, s := range c.Subtypes {
		if s.ID == id {
			return s, true
		}
	}
	return ContainerSubtype{}, false
}
