// Package normalize turns raw Brix API response bodies into the canonical
// records in pkg/api. The backend's payload shapes vary across endpoints and
// versions: field names differ, arrays arrive bare, wrapped, or paginated,
// and display data is sometimes missing. Everything here is total — malformed
// input degrades to absent values, never to an error, so a partial payload
// can never take down a caller.
package normalize

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// Envelope is a leniently decoded response body. An empty, whitespace, or
// unparseable body yields a null envelope; all accessors on a null envelope
// return zero values.
type Envelope struct {
	root  gjson.Result
	valid bool
}

// ParseEnvelope decodes a raw response body. It never fails: anything that
// is not valid JSON comes back as a null envelope.
func ParseEnvelope(body []byte) Envelope {
	if len(bytes.TrimSpace(body)) == 0 {
		return Envelope{}
	}
	if !gjson.ValidBytes(body) {
		return Envelope{}
	}
	return Envelope{root: gjson.ParseBytes(body), valid: true}
}

// IsNull reports whether the body was empty or unparseable.
func (e Envelope) IsNull() bool {
	return !e.valid
}

// Status returns the conventional status field, or 0 when absent.
func (e Envelope) Status() int {
	return int(e.root.Get("status").Int())
}

// Message returns the conventional message field, or "" when absent.
func (e Envelope) Message() string {
	return e.root.Get("message").String()
}

// Root returns the decoded body as-is.
func (e Envelope) Root() gjson.Result {
	return e.root
}

// Data returns the conventional data field when present, otherwise the root
// value. Detail endpoints sometimes return the record bare and sometimes as
// a one-element array; callers use firstRecord for that case.
func (e Envelope) Data() gjson.Result {
	if d := e.root.Get("data"); d.Exists() {
		return d
	}
	return e.root
}

// arrayProbes is the fixed priority order for locating the record array in a
// decoded envelope: paginated container, double wrap, single-wrap paginated
// container, plain wrap, bare array.
var arrayProbes = []string{
	"data.data.content",
	"data.data",
	"data.content",
	"data",
}

// Records locates the record array in the envelope, accommodating paginated,
// double-wrapped, and bare-array server conventions uniformly. If no array
// is found the result is empty.
func (e Envelope) Records() []gjson.Result {
	if !e.valid {
		return nil
	}
	for _, probe := range arrayProbes {
		if v := e.root.Get(probe); v.IsArray() {
			return v.Array()
		}
	}
	if e.root.IsArray() {
		return e.root.Array()
	}
	return nil
}

// firstRecord unwraps a detail payload that may arrive as a bare object or a
// one-element array. Anything else yields a non-existent result.
func firstRecord(v gjson.Result) gjson.Result {
	if v.IsArray() {
		arr := v.Array()
		if len(arr) == 0 {
			return gjson.Result{}
		}
		return arr[0]
	}
	if v.IsObject() {
		return v
	}
	return gjson.Result{}
}
