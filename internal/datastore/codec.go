package datastore

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/fluwatch/fluwatch-go/internal/errors"
)

// JSONStrings stores a string slice as a JSON text column. Both SQLite and
// MySQL lack a native string-array type, so the slice is serialized on write
// and parsed on read.
type JSONStrings []string

// Value implements driver.Valuer.
func (j JSONStrings) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(j))
	if err != nil {
		return nil, errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (j *JSONStrings) Scan(src any) error {
	var data []byte
	switch s := src.(type) {
	case nil:
		*j = nil
		return nil
	case string:
		data = []byte(s)
	case []byte:
		data = s
	default:
		return errors.Newf("cannot scan %T into JSONStrings", src).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	if len(data) == 0 {
		*j = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return errors.New(err).
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}
	*j = out
	return nil
}
