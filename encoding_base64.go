package torcrypto

import (
	"encoding/base64"
	"fmt"
)

// Base64Encode returns the standard base64 encoding (with '=' padding)
// of src. The required caller capacity for a from-scratch C buffer would
// be ((len(src)/48)+1)*66 bytes per crypto.c's base64_encode; callers of
// this Go API receive a string and need not reason about that bound.
func Base64Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// Base64Decode is the facade's permissive base64 decoder, hand-rolled
// directly from crypto.c's base64_decode_table/base64_decode state
// machine: encoding/base64 rejects interior whitespace and unterminated/
// miscounted padding by design, and this decoder must accept exactly
// what the reference implementation accepts (spec §4.I, §9 Open
// Question). Internal TAB/LF/VT/CR/SP are skipped, '=' ends decoding
// early, any other out-of-alphabet byte is an error, and the padding
// count is never verified.
func Base64Decode(src string) ([]byte, error) {
	out := make([]byte, 0, (len(src)*3)/4+3)
	var n uint32
	nIdx := 0

loop:
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\r':
			continue
		case c == '=':
			break loop
		case c >= 'A' && c <= 'Z':
			n = (n << 6) | uint32(c-'A')
		case c >= 'a' && c <= 'z':
			n = (n << 6) | uint32(c-'a'+26)
		case c >= '0' && c <= '9':
			n = (n << 6) | uint32(c-'0'+52)
		case c == '+':
			n = (n << 6) | 62
		case c == '/':
			n = (n << 6) | 63
		default:
			return nil, fmt.Errorf("torcrypto: base64 decode: %w: illegal character %q", ErrInvalidEncoding, c)
		}
		if c != '=' {
			nIdx++
			if nIdx == 4 {
				out = append(out, byte(n>>16), byte(n>>8), byte(n))
				nIdx = 0
				n = 0
			}
		}
	}

	switch nIdx {
	case 0:
		// no leftover bits
	case 1:
		return nil, fmt.Errorf("torcrypto: base64 decode: %w: 6 leftover bits cannot form a byte", ErrInvalidEncoding)
	case 2:
		out = append(out, byte(n>>4))
	case 3:
		out = append(out, byte(n>>10), byte(n>>2))
	}
	return out, nil
}

// Base64DigestLen is the length of DigestToBase64's unpadded, newline-
// free output.
func DigestToBase64(digest []byte) (string, error) {
	if len(digest) != DigestLen {
		return "", fmt.Errorf("torcrypto: digest to base64: input must be %d bytes", DigestLen)
	}
	return base64.RawStdEncoding.EncodeToString(digest)[:Base64DigestLen], nil
}

// DigestFromBase64 decodes a Base64DigestLen-character unpadded digest
// string, matching digest_from_base64's append-"=\n"-then-decode
// behavior.
func DigestFromBase64(d64 string) ([]byte, error) {
	if len(d64) != Base64DigestLen {
		return nil, fmt.Errorf("torcrypto: digest from base64: input must be %d characters", Base64DigestLen)
	}
	decoded, err := Base64Decode(d64 + "=\n")
	if err != nil {
		return nil, err
	}
	if len(decoded) != DigestLen {
		return nil, fmt.Errorf("torcrypto: digest from base64: %w", ErrInvalidEncoding)
	}
	return decoded, nil
}
