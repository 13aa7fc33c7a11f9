package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// CanonicalAddress lowers an address into its canonical form so that
// spellings differing only in letter case collapse to one node
// identity. Well-formed hex addresses are normalized through
// common.Address; anything else is kept as trimmed lowercase text.
func CanonicalAddress(input string) string {
	input = strings.TrimSpace(input)
	if common.IsHexAddress(input) {
		return strings.ToLower(common.HexToAddress(input).Hex())
	}
	return strings.ToLower(input)
}
