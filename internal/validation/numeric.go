package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Numeric is a number that may arrive as a multipart string or as a JSON
// number or string. Validate it with the "number" or "numeric" tags, then
// read it with Int or Float.
type Numeric string

// NumericError is returned for JSON values that are neither numbers nor strings.
type NumericError struct {
	Value string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("expected a number, got %s", e.Value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(strings.TrimSpace(s))
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*n = Numeric(data)
	default:
		return &NumericError{Value: string(data)}
	}
	return nil
}

// IsSet reports whether a value was supplied.
func (n Numeric) IsSet() bool {
	return n != ""
}

// Int returns the value as an int, or 0 when empty or malformed.
func (n Numeric) Int() int {
	v, err := strconv.Atoi(string(n))
	if err != nil {
		f, ferr := strconv.ParseFloat(string(n), 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return v
}

// Float returns the value as a float64, or 0 when empty or malformed.
func (n Numeric) Float() float64 {
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0
	}
	return v
}
