package chain

import (
	"strings"
	"testing"
)

func TestParseTxHash(t *testing.T) {
	valid := "0x0e34b47e1ed0a81ef806eb4a269bea64d1b1a6f1230d31c7c6b2d8b4b00e387c"

	hash, err := ParseTxHash(valid)
	if err != nil {
		t.Fatalf("ParseTxHash(%q): %v", valid, err)
	}
	if got := strings.ToLower(hash.Hex()); got != valid {
		t.Errorf("hash = %s, want %s", got, valid)
	}

	if _, err := ParseTxHash("  " + valid + "  "); err != nil {
		t.Errorf("surrounding whitespace should be accepted: %v", err)
	}

	invalid := []string{
		"",
		"0x",
		"0x1234",
		"0e34b47e1ed0a81ef806eb4a269bea64d1b1a6f1230d31c7c6b2d8b4b00e387c",
		"0xzz34b47e1ed0a81ef806eb4a269bea64d1b1a6f1230d31c7c6b2d8b4b00e387c",
		valid + "00",
	}
	for _, input := range invalid {
		if _, err := ParseTxHash(input); err == nil {
			t.Errorf("ParseTxHash(%q) should fail", input)
		}
	}
}
