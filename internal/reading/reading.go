// Package reading defines the Reading Vector: one CPU utilization value per
// logical core, in core index order, as delivered by the backend.
package reading

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/rileyhilliard/cpubars/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Vector holds the readings of one refresh cycle. Index i is core i.
// Values are opaque measurements: nominally 0-100 but never clamped.
// A Vector is rebuilt on every refresh and never modified after decode.
type Vector []float64

// Cores returns the number of cores in the reading.
func (v Vector) Cores() int {
	return len(v)
}

// String formats the vector compactly for log lines.
func (v Vector) String() string {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.2f", x)
	}
	b.WriteByte(']')
	return b.String()
}

// Decode parses a JSON array of numbers into a Vector.
// Anything else (an object, null, a string element, a null element,
// truncated input) is a DECODE error. An empty array is a valid
// zero-core reading.
func Decode(data []byte) (Vector, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.Decode(nil, "empty payload, expected a JSON array of numbers")
	}
	if trimmed[0] != '[' {
		return nil, errors.Decode(nil, "payload is not a JSON array (starts with %q)", trimmed[0])
	}

	var raw []*float64
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Decode(err, "payload is not a JSON array of numbers")
	}

	v := make(Vector, len(raw))
	for i, p := range raw {
		if p == nil {
			return nil, errors.Decode(nil, "reading for core %d is null", i)
		}
		v[i] = *p
	}
	return v, nil
}
