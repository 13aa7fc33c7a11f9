package model

import (
	"encoding/json"
	"strings"
)

// CallKind is the EVM instruction class of an inter-contract call.
type CallKind int

const (
	KindCall CallKind = iota
	KindDelegateCall
	KindStaticCall
	KindCallCode
	KindOther
)

// ParseCallKind maps a tracer call-type string onto a CallKind.
// Unrecognized spellings map to KindOther so the call is kept rather
// than silently dropped.
func ParseCallKind(input string) CallKind {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "CALL":
		return KindCall
	case "DELEGATECALL":
		return KindDelegateCall
	case "STATICCALL":
		return KindStaticCall
	case "CALLCODE":
		return KindCallCode
	default:
		return KindOther
	}
}

// String returns the canonical wire spelling of the kind.
func (k CallKind) String() string {
	switch k {
	case KindCall:
		return "CALL"
	case KindDelegateCall:
		return "DELEGATECALL"
	case KindStaticCall:
		return "STATICCALL"
	case KindCallCode:
		return "CALLCODE"
	default:
		return "OTHER"
	}
}

// CallKinds lists every kind in canonical order for deterministic
// iteration.
func CallKinds() []CallKind {
	return []CallKind{KindCall, KindDelegateCall, KindStaticCall, KindCallCode, KindOther}
}

// MarshalJSON encodes the kind as its wire spelling.
func (k CallKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its wire spelling.
func (k *CallKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*k = ParseCallKind(s)
	return nil
}
