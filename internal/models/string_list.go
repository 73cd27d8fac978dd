package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList maps a json column holding an array of strings. Legacy rows may
// store a single string or NULL; both decode without failing the entire query.
type StringList []string

func (s *StringList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch typed := src.(type) {
	case []byte:
		data = typed
	case string:
		data = []byte(typed)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}

	if len(data) == 0 {
		*s = nil
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*s = values
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		if value == "" {
			*s = []string{}
			return nil
		}
		*s = []string{value}
		return nil
	}

	return fmt.Errorf("cannot decode %q into StringList", data)
}

// Value always stores the list as a json array, keeping new writes consistent
// even when legacy rows used a bare string.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
