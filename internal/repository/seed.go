package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bakeryhq/orderdesk/internal/models"
)

// Seed is the catalog used when the store holds no products or clients yet
type Seed struct {
	Products []models.Product `yaml:"products"`
	Clients  []models.Client  `yaml:"clients"`
}

// DefaultSeed returns the built-in starter catalog
func DefaultSeed() Seed {
	return Seed{
		Products: []models.Product{
			{ID: "1", Name: "Pan Francés", Category: "Panes", Unit: models.UnitUnits},
			{ID: "2", Name: "Mignon", Category: "Panes", Unit: models.UnitKg},
			{ID: "3", Name: "Factura Medialuna", Category: "Bollería", Unit: models.UnitUnits},
			{ID: "4", Name: "Pan de Molde Blanco", Category: "Panes", Unit: models.UnitUnits},
			{ID: "5", Name: "Bizcochitos de Grasa", Category: "Secos", Unit: models.UnitKg},
			{ID: "6", Name: "Integral con Semillas", Category: "Panes", Unit: models.UnitUnits},
		},
		Clients: []models.Client{
			{ID: "c1", Name: "Supermercado Central"},
			{ID: "c2", Name: "Cafetería El Faro"},
			{ID: "c3", Name: "Restaurante Gourmet"},
		},
	}
}

// LoadSeedFile reads a YAML seed catalog. An empty path yields DefaultSeed.
func LoadSeedFile(path string) (Seed, error) {
	if path == "" {
		return DefaultSeed(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, p := range seed.Products {
		if p.ID == "" || p.Name == "" {
			return Seed{}, fmt.Errorf("seed product needs id and name: %+v", p)
		}
		if !p.Unit.Valid() {
			return Seed{}, fmt.Errorf("seed product %s has invalid unit %q", p.ID, p.Unit)
		}
	}
	for _, c := range seed.Clients {
		if c.ID == "" || c.Name == "" {
			return Seed{}, fmt.Errorf("seed client needs id and name: %+v", c)
		}
	}
	return seed, nil
}
