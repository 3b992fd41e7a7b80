// Package catalog loads the read-only advice catalog. The default catalog is
// embedded in the binary and can be replaced by a YAML file of the same shape.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/diegoclair/advice-rotation-bot/internal/domain"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

//go:embed data/advice.yaml
var defaultCatalog []byte

type document struct {
	Countries []entity.Country `yaml:"countries"`
}

// Catalog is an in-memory catalog keyed by country code
type Catalog struct {
	countries []entity.Country
	byCode    map[string][]entity.Section
}

// New loads the catalog from path, or the embedded catalog when path is empty
func New(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		data = raw
	}

	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if len(doc.Countries) == 0 {
		return nil, fmt.Errorf("catalog has no countries")
	}

	c := &Catalog{byCode: make(map[string][]entity.Section, len(doc.Countries))}
	for _, country := range doc.Countries {
		country.Code = strings.ToLower(strings.TrimSpace(country.Code))
		if err := validate(country); err != nil {
			return nil, err
		}
		if _, exists := c.byCode[country.Code]; exists {
			return nil, fmt.Errorf("country %s is defined twice", country.Code)
		}

		c.byCode[country.Code] = country.Sections
		c.countries = append(c.countries, country)
	}

	return c, nil
}

func validate(country entity.Country) error {
	if country.Code == "" {
		return fmt.Errorf("country without code")
	}

	seen := map[string]bool{}
	for _, section := range country.Sections {
		if section.ID == "" {
			return fmt.Errorf("country %s has a section without id", country.Code)
		}
		for _, item := range section.Items {
			if item.ID == "" || strings.TrimSpace(item.Text) == "" {
				return fmt.Errorf("section %s has an item without id or text", section.ID)
			}
			if seen[item.ID] {
				return fmt.Errorf("item id %s is duplicated in country %s", item.ID, country.Code)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

// Sections returns the sections of a country in catalog order
func (c *Catalog) Sections(country string) ([]entity.Section, error) {
	sections, ok := c.byCode[strings.ToLower(country)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCountry, country)
	}
	return sections, nil
}

func (c *Catalog) Countries() []entity.Country {
	return c.countries
}
