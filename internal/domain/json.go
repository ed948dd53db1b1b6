package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// JSON stores an opaque JSON document in a jsonb column without reshaping it.
// The bytes written to and read from the database are exactly the bytes the
// caller provided, which keeps the stored event a lossless capture.
type JSON []byte

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// Scan implements sql.Scanner
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
		return nil
	case []byte:
		*j = append((*j)[:0], v...)
		return nil
	case string:
		*j = JSON(v)
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// MarshalJSON returns the document as-is.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON keeps the raw bytes without decoding them.
func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return errors.New("domain.JSON: UnmarshalJSON on nil pointer")
	}
	*j = append((*j)[:0], data...)
	return nil
}
