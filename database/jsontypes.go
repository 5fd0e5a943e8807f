package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RankMap stores category name → rank (lower is better) as a JSONB column.
type RankMap map[string]int

// Value implements driver.Valuer for JSONB storage
func (m RankMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval
func (m *RankMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// FeatureMap stores feature-category name → feature list as a JSONB column.
type FeatureMap map[string][]string

// Value implements driver.Valuer for JSONB storage
func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval
func (m *FeatureMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// JSONDocument stores an opaque, pre-marshaled JSON payload as a JSONB
// column and re-emits it verbatim when the row is serialized.
type JSONDocument []byte

// Value implements driver.Valuer for JSONB storage
func (d JSONDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

// Scan implements sql.Scanner for JSONB retrieval
func (d *JSONDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*d = append((*d)[:0], v...)
		return nil
	case string:
		*d = JSONDocument(v)
		return nil
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
}

// MarshalJSON emits the stored document inline rather than base64-encoded.
func (d JSONDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON keeps the raw document bytes.
func (d *JSONDocument) UnmarshalJSON(data []byte) error {
	*d = append((*d)[:0], data...)
	return nil
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
}
