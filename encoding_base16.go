package torcrypto

import (
	"encoding/hex"
	"strings"
)

// HexEncode returns the uppercase hex encoding of src, matching
// crypto.c's base16_encode (which always produces uppercase digits).
func HexEncode(src []byte) string {
	return strings.ToUpper(hex.EncodeToString(src))
}

// HexDecode decodes a hex string, accepting either case, matching
// base16_decode's tolerant input handling.
func HexDecode(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidEncoding
	}
	return b, nil
}
