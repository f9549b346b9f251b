package torcrypto

import (
	"encoding/base32"
	"fmt"
)

// base32Alphabet is RFC 3548's lowercase alphabet, matching crypto.c's
// BASE32_CHARS ("abcdefghijklmnopqrstuvwxyz234567").
const base32Alphabet = "abcdefghijklmnopqrstuvwxyz234567"

// base32Encoding is stdlib encoding/base32 with the RFC 3548 alphabet
// substituted for the default RFC 4648 one, and padding removed (the
// reference encoder never emits '=').
var base32Encoding = base32.NewEncoding(base32Alphabet).WithPadding(base32.NoPadding)

// Base32Encode encodes src without padding. The length of src is not
// checked: when len(src)*8 is not a multiple of 5, the last character
// carries the leftover bits filled out with zero bits.
func Base32Encode(src []byte) string {
	return base32Encoding.EncodeToString(src)
}

// Base32Decode decodes s, requiring len(s)*5 to be a multiple of 8, and
// rejecting any character outside base32Alphabet.
func Base32Decode(s string) ([]byte, error) {
	if (len(s)*5)%8 != 0 {
		return nil, fmt.Errorf("torcrypto: base32 decode: %w: length not a multiple of 8 bits", ErrInvalidEncoding)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= '2' && c <= '7')) {
			return nil, fmt.Errorf("torcrypto: base32 decode: %w: illegal character %q", ErrInvalidEncoding, c)
		}
	}
	out, err := base32Encoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("torcrypto: base32 decode: %w", ErrInvalidEncoding)
	}
	return out, nil
}
