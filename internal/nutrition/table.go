// Package nutrition estimates meal calories from a static reference table.
package nutrition

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

const (
	CategoryVegetables = "vegetables"
	CategoryProteins   = "proteins"
	CategoryStarches   = "starches"
	CategoryCondiments = "condiments"
	CategoryBeverages  = "beverages"
)

const (
	fallbackVegetableKey = "other"
	fallbackProteinKey   = "chicken"
	fallbackStarchKey    = "rice"
)

var (
	ErrNegativeCalories   = errors.New("negative calories in reference table")
	ErrMissingReference   = errors.New("reference entry missing")
	ErrEmptyNutritionData = errors.New("nutrition data is empty")
)

//go:embed data/calories.json
var bundledCalories []byte

// CalorieInfo is the calorie count of a reference amount of one food.
type CalorieInfo struct {
	AmountGrams float64 `json:"amount"`
	Calories    float64 `json:"calories"`
}

// Table maps category -> subtype -> reference entry. A Table is treated as
// read-only once loaded.
type Table map[string]map[string]CalorieInfo

var loadBundled = sync.OnceValues(func() (Table, error) {
	return ParseTable(bundledCalories)
})

// BundledTable returns the reference table shipped with the binary. It is
// parsed on first use and shared afterwards.
func BundledTable() (Table, error) {
	return loadBundled()
}

func ParseTable(raw []byte) (Table, error) {
	table := Table{}
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse nutrition data: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// Validate checks that every entry is non-negative and that the fallback
// entries used by the engine exist.
func (table Table) Validate() error {
	if len(table) == 0 {
		return ErrEmptyNutritionData
	}

	for _, category := range table.Categories() {
		for subtype, info := range table[category] {
			if info.Calories < 0 || info.AmountGrams < 0 {
				return fmt.Errorf("%w: %s.%s", ErrNegativeCalories, category, subtype)
			}
		}
	}

	required := [][2]string{
		{CategoryVegetables, fallbackVegetableKey},
		{CategoryProteins, fallbackProteinKey},
		{CategoryStarches, fallbackStarchKey},
	}
	for _, entry := range required {
		if _, ok := table.Lookup(entry[0], entry[1]); !ok {
			return fmt.Errorf("%w: %s.%s", ErrMissingReference, entry[0], entry[1])
		}
	}
	return nil
}

func (table Table) Lookup(category string, subtype string) (CalorieInfo, bool) {
	entries, ok := table[category]
	if !ok {
		return CalorieInfo{}, false
	}
	info, ok := entries[subtype]
	return info, ok
}

func (table Table) Categories() []string {
	categories := make([]string, 0, len(table))
	for category := range table {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
