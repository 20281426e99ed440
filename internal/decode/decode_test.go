package decode

import (
	"errors"
	"testing"

	"github.com/alx-cc/sensor-scope/internal/domain"
)

func newTestDecoder() *Decoder {
	return New(domain.DefaultSeries())
}

func TestDecodeValidPayload(t *testing.T) {
	d := newTestDecoder()

	values, err := d.Decode([]byte("21.4,21.1,101.3,101.0"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := map[string]float64{
		"temperature":     21.4,
		"temperature_avg": 21.1,
		"pressure":        101.3,
		"pressure_avg":    101.0,
	}
	for name, v := range want {
		if values[name] != v {
			t.Fatalf("expected %s=%v, got %v", name, v, values[name])
		}
	}
}

func TestDecodeTrimsWhitespace(t *testing.T) {
	d := newTestDecoder()

	values, err := d.Decode([]byte("  1.0, 2.0 ,3.0,4.0\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values["temperature_avg"] != 2.0 {
		t.Fatalf("expected temperature_avg=2.0, got %v", values["temperature_avg"])
	}
}

func TestDecodeNegativeAndExponentFields(t *testing.T) {
	d := newTestDecoder()

	values, err := d.Decode([]byte("-3.5,1e2,0,.5"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values["temperature"] != -3.5 || values["temperature_avg"] != 100 {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestDecodeWrongFieldCount(t *testing.T) {
	d := newTestDecoder()

	for _, payload := range []string{"1.0,2.0,3.0", "1,2,3,4,5", "", "21.4"} {
		_, err := d.Decode([]byte(payload))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("payload %q: expected DecodeError, got %v", payload, err)
		}
		if de.Kind != WrongFieldCount {
			t.Fatalf("payload %q: expected WrongFieldCount, got %s", payload, de.Kind)
		}
	}
}

func TestDecodeNonNumericField(t *testing.T) {
	d := newTestDecoder()

	_, err := d.Decode([]byte("x,1,2,3"))
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if de.Kind != NotNumeric {
		t.Fatalf("expected NotNumeric, got %s", de.Kind)
	}
}

func TestDecodeRejectsNonFiniteValues(t *testing.T) {
	d := newTestDecoder()

	// strconv accepts these spellings, so they must be rejected explicitly.
	for _, payload := range []string{"NaN,1,2,3", "1,Inf,2,3", "1,2,-Inf,3", "1,2,3,+Inf"} {
		_, err := d.Decode([]byte(payload))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("payload %q: expected DecodeError, got %v", payload, err)
		}
		if de.Kind != NotFinite {
			t.Fatalf("payload %q: expected NotFinite, got %s", payload, de.Kind)
		}
	}
}

func TestDecodeNeverPanicsOnGarbage(t *testing.T) {
	d := newTestDecoder()

	for _, payload := range []string{",,,", "garbage", "\x00\x01\x02", "1,2,3,"} {
		if _, err := d.Decode([]byte(payload)); err == nil {
			t.Fatalf("payload %q: expected error", payload)
		}
	}
}
