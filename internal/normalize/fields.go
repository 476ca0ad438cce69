package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/brixmarket/brix/pkg/types"
)

// CandidateFieldSet is an ordered sequence of alternate gjson paths that may
// hold one logical field in an arbitrarily-shaped record. Evaluation stops at
// the first candidate yielding a non-null value. Paths may reach into
// relations ("product.title") or array elements ("images.0.url").
type CandidateFieldSet []string

// First returns the first candidate present with a non-null value.
// The zero result is returned when no candidate matches.
func (cs CandidateFieldSet) First(r gjson.Result) gjson.Result {
	for _, path := range cs {
		if v := r.Get(path); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// FirstString projects the first matching candidate to a string.
// Non-string scalars are stringified; objects and arrays are absent.
func (cs CandidateFieldSet) FirstString(r gjson.Result) types.NullableString {
	v := cs.First(r)
	switch v.Type {
	case gjson.String:
		if s := strings.TrimSpace(v.String()); s != "" {
			return types.NullableStringFrom(s)
		}
	case gjson.Number, gjson.True, gjson.False:
		return types.NullableStringFrom(v.String())
	}
	return types.NullString()
}

// FirstNumber projects the first matching candidate to a number. Numeric
// strings are accepted; non-finite results and unparseable values are absent.
func (cs CandidateFieldSet) FirstNumber(r gjson.Result) types.NullableNumber {
	return coerceNumber(cs.First(r))
}

// FirstDate projects the first matching candidate to a YYYY-MM-DD date.
// See coerceDate for the accepted input shapes.
func (cs CandidateFieldSet) FirstDate(r gjson.Result) types.NullableString {
	if s, ok := coerceDate(cs.First(r)); ok {
		return types.NullableStringFrom(s)
	}
	return types.NullString()
}

// coerceNumber converts a decoded value to a finite float64. Strings go
// through strconv so that "abc" is rejected rather than collapsing to 0.
func coerceNumber(v gjson.Result) types.NullableNumber {
	switch v.Type {
	case gjson.Number:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return types.NullNumber()
		}
		return types.NullableNumberFrom(f)
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return types.NullNumber()
		}
		return types.NullableNumberFrom(f)
	}
	return types.NullNumber()
}
