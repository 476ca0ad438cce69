package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// NullableNumber represents a numeric field that may be absent from a payload.
// Prices and quantities arrive under varying keys and sometimes as strings;
// an unresolvable value stays absent rather than collapsing to zero.
type NullableNumber struct {
	Value float64
	Valid bool // Valid is true if Value was present and finite
}

// Float64 returns the numeric value if valid, or 0 if absent.
func (nn NullableNumber) Float64() float64 {
	if nn.Valid {
		return nn.Value
	}
	return 0
}

// IsNil returns true if the value is absent.
func (nn NullableNumber) IsNil() bool {
	return !nn.Valid
}

// Set assigns a value and marks the field present.
// Non-finite values are rejected and leave the field absent.
func (nn *NullableNumber) Set(value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		nn.Value = 0
		nn.Valid = false
		return
	}
	nn.Value = value
	nn.Valid = true
}

// MarshalJSON implements the json.Marshaler interface.
// Returns the numeric value as JSON if valid, or null if absent.
func (nn NullableNumber) MarshalJSON() ([]byte, error) {
	if nn.Valid {
		return json.Marshal(nn.Value)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Accepts numbers and numeric strings; null or anything unparseable leaves
// the field absent.
func (nn *NullableNumber) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(data) == 0 || s == "null" {
		nn.Value = 0
		nn.Valid = false
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		nn.Value = 0
		nn.Valid = false
		return nil
	}
	nn.Set(v)
	return nil
}

// NullableNumberFrom creates a present NullableNumber from a float64 value.
// Non-finite inputs yield an absent value.
func NullableNumberFrom(v float64) NullableNumber {
	var nn NullableNumber
	nn.Set(v)
	return nn
}

// NullNumber creates a NullableNumber that represents an absent value.
func NullNumber() NullableNumber {
	return NullableNumber{}
}

var _ json.Marshaler = &NullableNumber{}
var _ json.Unmarshaler = &NullableNumber{}
var _ Nullable = &NullableNumber{}
