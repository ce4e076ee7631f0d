package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Year is an optional, free-form publication year.
// The zero value is absent. An empty string in a payload is also absent.
type Year struct {
	value string
	set   bool
}

// YearOf returns a present year. An empty string yields an absent year.
func YearOf(v string) Year {
	if v == "" {
		return Year{}
	}
	return Year{value: v, set: true}
}

// NoYear returns an absent year.
func NoYear() Year {
	return Year{}
}

// Get returns the year and whether it is present.
func (y Year) Get() (string, bool) {
	return y.value, y.set
}

// IsPresent reports whether the year is set.
func (y Year) IsPresent() bool {
	return y.set
}

// IsZero reports whether the year is absent. Used by omitzero/omitempty.
func (y Year) IsZero() bool {
	return !y.set
}

// String returns the year, or "" when absent.
func (y Year) String() string {
	return y.value
}

// MarshalJSON encodes an absent year as null.
func (y Year) MarshalJSON() ([]byte, error) {
	if !y.set {
		return []byte("null"), nil
	}
	return json.Marshal(y.value)
}

// UnmarshalJSON accepts a string, a number or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*y = Year{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("year: %w", err)
		}
		*y = YearOf(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: %w: %s", ErrInvalidInput, data)
	}
	*y = YearOf(n.String())
	return nil
}

// MarshalYAML encodes an absent year as null.
func (y Year) MarshalYAML() (interface{}, error) {
	if !y.set {
		return nil, nil
	}
	return y.value, nil
}

// UnmarshalYAML decodes scalar years. Numbers keep their literal form.
func (y *Year) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	switch v := raw.(type) {
	case nil:
		*y = Year{}
	case string:
		*y = YearOf(v)
	case int, int64, uint64, float64:
		*y = YearOf(fmt.Sprint(v))
	default:
		return fmt.Errorf("year: %w: unexpected %T", ErrInvalidInput, raw)
	}
	return nil
}
