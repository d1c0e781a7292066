package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DietaryLabel is one entry of the closed dietary enumeration. Unknown values
// are rejected on input, never coerced or dropped.
type DietaryLabel string

const (
	DietaryVegetarian DietaryLabel = "vegetarian"
	DietaryVegan      DietaryLabel = "vegan"
	DietaryGlutenFree DietaryLabel = "gluten-free"
	DietaryDairyFree  DietaryLabel = "dairy-free"
	DietaryNutFree    DietaryLabel = "nut-free"
)

// ValidDietaryLabel reports whether l belongs to the enumeration.
func ValidDietaryLabel(l DietaryLabel) bool {
	switch l {
	case DietaryVegetarian, DietaryVegan, DietaryGlutenFree, DietaryDairyFree, DietaryNutFree:
		return true
	}
	return false
}

// DietaryLabelSet is stored as a JSONB array. Membership is validated at the
// write boundary via ParseDietaryLabels; Scan trusts stored rows.
type DietaryLabelSet []DietaryLabel

// ParseDietaryLabels validates a transport-level string list into a label set.
// A single unknown value invalidates the whole field.
func ParseDietaryLabels(values []string) (DietaryLabelSet, error) {
	set := make(DietaryLabelSet, 0, len(values))
	seen := make(map[DietaryLabel]bool, len(values))
	for _, v := range values {
		l := DietaryLabel(v)
		if !ValidDietaryLabel(l) {
			return nil, fmt.Errorf("unknown dietary label %q", v)
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		set = append(set, l)
	}
	return set, nil
}

// Contains reports set membership.
func (s DietaryLabelSet) Contains(l DietaryLabel) bool {
	for _, v := range s {
		if v == l {
			return true
		}
	}
	return false
}

// Value implements the driver.Valuer interface
func (s DietaryLabelSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *DietaryLabelSet) Scan(value interface{}) error {
	if value == nil {
		*s = DietaryLabelSet{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported dietary label column type %T", value)
	}

	return json.Unmarshal(bytes, s)
}
