package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray stores a list of strings as a JSON document. It keeps the
// column portable between Postgres (jsonb) and the SQLite test databases.
type StringArray []string

// Value implements driver.Valuer.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		a = StringArray{}
	}
	data, err := json.Marshal([]string(a))
	if err != nil {
		return nil, fmt.Errorf("marshal string array: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(src any) error {
	if src == nil {
		*a = StringArray{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported string array source %T", src)
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("unmarshal string array: %w", err)
	}
	*a = StringArray(out)
	return nil
}

// GormDataType hints the column type for migrations run through GORM.
func (StringArray) GormDataType() string {
	return "jsonb"
}
