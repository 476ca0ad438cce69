package types

import "encoding/json"

// NullableString represents a string field that may be absent from a payload.
// It distinguishes between an empty string and a missing value, which matters
// for display records where "no title" renders differently from "".
type NullableString struct {
	Value string
	Valid bool // Valid is true if Value was present
}

// String returns the string value if valid, or an empty string if absent.
func (ns NullableString) String() string {
	if ns.Valid {
		return ns.Value
	}
	return ""
}

// IsNil returns true if the value is absent or empty.
func (ns NullableString) IsNil() bool {
	return !ns.Valid || ns.Value == ""
}

// Set assigns a value and marks the field present.
func (ns *NullableString) Set(value string) {
	ns.Value = value
	ns.Valid = true
}

// MarshalJSON implements the json.Marshaler interface.
// Returns the string value as JSON if valid, or null if absent.
func (ns NullableString) MarshalJSON() ([]byte, error) {
	if ns.Valid {
		return json.Marshal(ns.Value)
	}
	return json.Marshal(nil)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// A JSON null leaves the field absent.
func (ns *NullableString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		ns.Value = ""
		ns.Valid = false
		return nil
	}
	ns.Valid = true
	return json.Unmarshal(data, &ns.Value)
}

// NullableStringFrom creates a present NullableString from a string value.
func NullableStringFrom(s string) NullableString {
	return NullableString{Value: s, Valid: true}
}

// NullString creates a NullableString that represents an absent value.
func NullString() NullableString {
	return NullableString{}
}

var _ json.Marshaler = &NullableString{}
var _ json.Unmarshaler = &NullableString{}
var _ Nullable = &NullableString{}
