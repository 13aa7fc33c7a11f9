package model

import (
	"encoding/json"
	"testing"
)

func TestParseCallKind(t *testing.T) {
	cases := []struct {
		input string
		want  CallKind
	}{
		{"CALL", KindCall},
		{"call", KindCall},
		{" Call ", KindCall},
		{"DELEGATECALL", KindDelegateCall},
		{"delegatecall", KindDelegateCall},
		{"STATICCALL", KindStaticCall},
		{"CALLCODE", KindCallCode},
		{"CREATE", KindOther},
		{"SELFDESTRUCT", KindOther},
		{"", KindOther},
		{"weird", KindOther},
	}

	for _, tc := range cases {
		if got := ParseCallKind(tc.input); got != tc.want {
			t.Fatalf("ParseCallKind(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCallKindStringRoundTrip(t *testing.T) {
	for _, kind := range CallKinds() {
		if got := ParseCallKind(kind.String()); got != kind {
			t.Fatalf("%v did not round trip through its string form", kind)
		}
	}
}

func TestCallKindJSON(t *testing.T) {
	b, err := json.Marshal(KindDelegateCall)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(b) != `"DELEGATECALL"` {
		t.Fatalf("got %s", b)
	}

	var kind CallKind
	if err := json.Unmarshal([]byte(`"staticcall"`), &kind); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if kind != KindStaticCall {
		t.Fatalf("got %v, want KindStaticCall", kind)
	}
}

func TestFunctionName(t *testing.T) {
	cases := []struct {
		record CallRecord
		want   string
	}{
		{CallRecord{FunctionSignature: "execTransaction(address,uint256,bytes)"}, "execTransaction"},
		{CallRecord{FunctionSignature: "claim()"}, "claim"},
		{CallRecord{FunctionSignature: "balanceOf"}, "balanceOf"},
		{CallRecord{FunctionSelector: "0xa9059cbb"}, "0xa9059cbb"},
		{CallRecord{}, "unknown"},
	}

	for _, tc := range cases {
		if got := tc.record.FunctionName(); got != tc.want {
			t.Fatalf("FunctionName() = %q, want %q", got, tc.want)
		}
	}
}

func TestCanonicalAddress(t *testing.T) {
	mixed := "0x3E5C63644E683549055b9BE8653de26E0B4CD36E"
	lower := "0x3e5c63644e683549055b9be8653de26e0b4cd36e"
	if got := CanonicalAddress(mixed); got != lower {
		t.Fatalf("got %s, want %s", got, lower)
	}
	if got := CanonicalAddress(lower); got != lower {
		t.Fatalf("canonical form should be stable, got %s", got)
	}
	if got := CanonicalAddress(" NOT-AN-ADDRESS "); got != "not-an-address" {
		t.Fatalf("non-address input should lowercase, got %q", got)
	}
}
