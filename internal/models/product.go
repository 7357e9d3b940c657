package models

// Unit is the measure a product is ordered in
type Unit string

const (
	UnitUnits Unit = "units"
	UnitKg    Unit = "kg"
)

// Valid reports whether u is a known unit
func (u Unit) Valid() bool {
	return u == UnitUnits || u == UnitKg
}

// Product represents an item the bakery produces
type Product struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Unit     Unit   `json:"unit" yaml:"unit"`
}

// FindProduct returns the product with the given id, or nil
func FindProduct(products []Product, id string) *Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
