package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// Quantity is an integer amount that arrives as a decimal string, a
// 0x-prefixed hex string, or a bare JSON number. Wei values overflow
// float64 long before they overflow big.Int, so decoding never goes
// through a float.
type Quantity struct {
	Int *big.Int
}

// BigInt returns the parsed value, treating an absent value as zero.
func (q Quantity) BigInt() *big.Int {
	if q.Int == nil {
		return new(big.Int)
	}
	return q.Int
}

// IsSet reports whether the field was present in the source document.
func (q Quantity) IsSet() bool {
	return q.Int != nil
}

// Uint64 converts the value for fields that are semantically uint64,
// such as gas counters.
func (q Quantity) Uint64() (uint64, error) {
	if q.Int == nil {
		return 0, nil
	}
	if q.Int.Sign() < 0 || !q.Int.IsUint64() {
		return 0, fmt.Errorf("quantity %s does not fit in uint64", q.Int)
	}
	return q.Int.Uint64(), nil
}

// MarshalJSON encodes the value as a decimal string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.BigInt().String())
}

// UnmarshalJSON decodes a decimal string, a 0x hex string, or a bare
// number without precision loss. JSON null leaves the quantity unset.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		q.Int = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return q.setString(s)
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	return q.setString(n.String())
}

func (q *Quantity) setString(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		q.Int = nil
		return nil
	}

	base := 10
	digits := input
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
		if digits == "" {
			q.Int = new(big.Int)
			return nil
		}
	}

	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return fmt.Errorf("invalid quantity %q", input)
	}
	if negative {
		value.Neg(value)
	}
	q.Int = value
	return nil
}
