// Package types provides nullable value types used as absent markers in
// normalized API records. Server payloads routinely omit or null out fields;
// these types let callers distinguish "field absent" from a genuine zero value.
package types

// Nullable defines the interface for types that can represent an absent value.
type Nullable interface {
	// IsNil returns true if the value is absent, false otherwise.
	IsNil() bool
}
