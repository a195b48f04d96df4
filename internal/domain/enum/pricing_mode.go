package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PricingMode decides how a line item is billed
type PricingMode string

const (
	// PricingModeUnit bills quantity * price.
	PricingModeUnit PricingMode = "unit"
	// PricingModeArea bills width * length * quantity * price.
	PricingModeArea PricingMode = "area"
)

// IsValid reports whether m is one of the two known modes. The empty mode is
// what older records carry; callers classify those by name.
func (m PricingMode) IsValid() bool {
	return m == PricingModeUnit || m == PricingModeArea
}

func (m PricingMode) String() string {
	return string(m)
}

// UnmarshalJSON accepts any string; unknown values decode as the empty mode.
func (m *PricingMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("pricing mode must be a string: %w", err)
	}
	*m = PricingMode(str)
	if !m.IsValid() {
		*m = ""
	}
	return nil
}

func (m PricingMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PricingMode) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m = ""
	case string:
		*m = PricingMode(v)
	case []byte:
		*m = PricingMode(v)
	}
	if !m.IsValid() {
		*m = ""
	}
	return nil
}
