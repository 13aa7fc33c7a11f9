package model

import (
	"encoding/json"
	"testing"
)

func TestQuantityDecodings(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"decimal string", `"1000000000000000000"`, "1000000000000000000"},
		{"hex string", `"0xde0b6b3a7640000"`, "1000000000000000000"},
		{"hex upper prefix", `"0X1f"`, "31"},
		{"bare number", `12345`, "12345"},
		{"bare zero", `0`, "0"},
		{"empty hex", `"0x"`, "0"},
		{"negative decimal", `"-42"`, "-42"},
		{"huge value", `"115792089237316195423570985008687907853269984665640564039457584007913129639935"`, "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}

	for _, tc := range cases {
		var q Quantity
		if err := json.Unmarshal([]byte(tc.input), &q); err != nil {
			t.Fatalf("%s: unmarshal failed: %v", tc.name, err)
		}
		if got := q.BigInt().String(); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestQuantityPrecisionSurvivesBareNumbers(t *testing.T) {
	// 2^70 loses its low bits as a float64; the decoder must not go
	// through one.
	input := []byte(`1180591620717411303424`)
	var q Quantity
	if err := json.Unmarshal(input, &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := q.BigInt().String(); got != "1180591620717411303424" {
		t.Fatalf("precision lost: got %s", got)
	}
}

func TestQuantityInvalid(t *testing.T) {
	for _, input := range []string{`"abc"`, `"0xzz"`, `"1.5"`, `1.5`, `true`} {
		var q Quantity
		if err := json.Unmarshal([]byte(input), &q); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}

func TestQuantityAbsent(t *testing.T) {
	var q Quantity
	if err := json.Unmarshal([]byte(`null`), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if q.IsSet() {
		t.Fatalf("null should leave the quantity unset")
	}
	if got := q.BigInt().String(); got != "0" {
		t.Fatalf("unset quantity should read as zero, got %s", got)
	}
}

func TestQuantityUint64(t *testing.T) {
	var q Quantity
	if err := json.Unmarshal([]byte(`"0x5208"`), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	gas, err := q.Uint64()
	if err != nil {
		t.Fatalf("uint64 failed: %v", err)
	}
	if gas != 21000 {
		t.Fatalf("got %d, want 21000", gas)
	}

	var huge Quantity
	if err := json.Unmarshal([]byte(`"18446744073709551616"`), &huge); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, err := huge.Uint64(); err == nil {
		t.Fatalf("expected overflow error")
	}

	var negative Quantity
	if err := json.Unmarshal([]byte(`"-1"`), &negative); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, err := negative.Uint64(); err == nil {
		t.Fatalf("expected error for negative value")
	}
}

func TestQuantityMarshal(t *testing.T) {
	var q Quantity
	if err := json.Unmarshal([]byte(`"0xde0b6b3a7640000"`), &q); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	b, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"1000000000000000000"` {
		t.Fatalf("got %s", b)
	}
}
