// Package decode maps raw CSV payloads onto the configured series set.
package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FailureKind discriminates why a payload was rejected.
type FailureKind int

const (
	WrongFieldCount FailureKind = iota
	NotNumeric
	NotFinite
)

func (k FailureKind) String() string {
	switch k {
	case NotNumeric:
		return "not_numeric"
	case NotFinite:
		return "not_finite"
	default:
		return "wrong_field_count"
	}
}

// DecodeError is a normal return value, never a panic: a malformed message
// is dropped by the caller, not propagated.
type DecodeError struct {
	Kind   FailureKind
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %s", e.Kind, e.Reason)
}

// Decoder parses comma-separated payloads into named values, one field per
// configured series in declared order.
type Decoder struct {
	series []string
}

// New creates a Decoder for the given series order.
func New(series []string) *Decoder {
	names := make([]string, len(series))
	copy(names, series)
	return &Decoder{series: names}
}

// Decode splits payload on commas and parses every field as a finite
// float64. NaN and infinities are rejected so one bad reading cannot poison
// a consumer's value scale.
func (d *Decoder) Decode(payload []byte) (map[string]float64, error) {
	fields := strings.Split(strings.TrimSpace(string(payload)), ",")
	if len(fields) != len(d.series) {
		return nil, &DecodeError{
			Kind:   WrongFieldCount,
			Reason: fmt.Sprintf("got %d fields, want %d", len(fields), len(d.series)),
		}
	}

	values := make(map[string]float64, len(d.series))
	for i, raw := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &DecodeError{
				Kind:   NotNumeric,
				Reason: fmt.Sprintf("field %d (%s): %q is not a number", i, d.series[i], raw),
			}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &DecodeError{
				Kind:   NotFinite,
				Reason: fmt.Sprintf("field %d (%s): %q is not finite", i, d.series[i], raw),
			}
		}
		values[d.series[i]] = v
	}
	return values, nil
}
