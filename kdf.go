package torcrypto

import (
	"crypto/sha1"
	"fmt"

	"golang.org/x/crypto/openpgp/s2k"
)

// S2KSpecifierLen is the length of an RFC 2440 s2k_specifier: 8 salt
// bytes plus 1 iteration-count byte.
const S2KSpecifierLen = 9

// ExpandKeyMaterial expands keyIn into exactly len(out) bytes of key
// material by taking the first len(out) bytes of H(K‖0x00)‖H(K‖0x01)‖…,
// matching crypto_expand_key_material. len(out) must be <=
// maxExpandKeyBytes (20*256), beyond which blocks would repeat.
func ExpandKeyMaterial(keyIn, out []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if len(out) > maxExpandKeyBytes {
		return ErrRequestedOutputTooLarge
	}
	tmp := make([]byte, len(keyIn)+1)
	defer zero(tmp)
	copy(tmp, keyIn)

	var digest [DigestLen]byte
	for i, written := 0, 0; written < len(out); i, written = i+1, written+DigestLen {
		if i > 255 {
			return fmt.Errorf("torcrypto: expand key material: counter overflow")
		}
		tmp[len(keyIn)] = byte(i)
		Digest(digest[:], tmp)
		n := copy(out[written:], digest[:])
		_ = n
	}
	zero(digest[:])
	return nil
}

// S2K implements RFC 2440's iterated-salted string-to-key conversion.
// s2kSpecifier must be S2KSpecifierLen bytes: 8 bytes of salt followed by
// a 1-byte count descriptor c, where count = (16 + (c&0xF)) << ((c>>4)+6).
// salt‖secret is absorbed repeatedly until count bytes have passed
// through a single running SHA-1 context; the first len(out) (<=
// DigestLen) bytes of the digest are returned.
//
// Built on golang.org/x/crypto/openpgp/s2k's Iterated helper, which
// implements exactly RFC 4880's (successor to RFC 2440's) salted-iterated
// S2K over a caller-supplied hash constructor; plugging sha1.New in
// reproduces secret_to_key byte-for-byte, including the documented
// 1024-zero-byte test vector.
func S2K(out []byte, secret []byte, s2kSpecifier []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if len(s2kSpecifier) != S2KSpecifierLen {
		return fmt.Errorf("torcrypto: s2k: specifier must be %d bytes", S2KSpecifierLen)
	}
	if len(out) > DigestLen {
		return fmt.Errorf("torcrypto: s2k: requested output exceeds %d bytes", DigestLen)
	}
	salt := s2kSpecifier[:8]
	c := s2kSpecifier[8]
	count := (16 + int(c&15)) << (uint32(c>>4) + 6)

	buf := make([]byte, DigestLen)
	s2k.Iterated(buf, sha1.New(), secret, salt, count)
	copy(out, buf[:len(out)])
	return nil
}
