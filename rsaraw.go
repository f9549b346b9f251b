package torcrypto

import (
	"crypto/rsa"
	"fmt"
	"math/big"
)

// rsaNoPaddingEncrypt and rsaNoPaddingDecrypt implement RSA_NO_PADDING:
// the raw modular exponentiation with no padding at all, used when
// spec.md's Padding is PaddingNone. crypto/rsa does not expose this mode
// (it always pads), so it is hand-rolled directly over math/big, the same
// primitive the DH module (module G) uses for its discrete-log math.
func rsaNoPaddingEncrypt(pub *rsa.PublicKey, data []byte) ([]byte, error) {
	k := (pub.N.BitLen() + 7) / 8
	m := new(big.Int).SetBytes(data)
	if m.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("torcrypto: rsa no-padding encrypt: message too large for modulus")
	}
	c := new(big.Int).Exp(m, big.NewInt(int64(pub.E)), pub.N)
	return leftPadBytes(c.Bytes(), k), nil
}

func rsaNoPaddingDecrypt(priv *rsa.PrivateKey, data []byte) ([]byte, error) {
	k := (priv.N.BitLen() + 7) / 8
	c := new(big.Int).SetBytes(data)
	if c.Cmp(priv.N) >= 0 {
		return nil, fmt.Errorf("torcrypto: rsa no-padding decrypt: ciphertext too large for modulus")
	}
	m := new(big.Int).Exp(c, priv.D, priv.N)
	return leftPadBytes(m.Bytes(), k), nil
}

// rsaPKCS1v15PrivateEncrypt implements RSA_private_encrypt with
// RSA_PKCS1_PADDING: a type-1 ("signing") PKCS#1 v1.5 block, 00 01 FF..FF
// 00 data, raised to the d'th power. This is "textbook" RSA signing of
// arbitrary bytes (spec §4.E PrivateSign / spec §9's note that checksig/
// sign do not hash internally) and has no stdlib equivalent: crypto/rsa
// only exposes the hashed SignPKCS1v15 entry point.
func rsaPKCS1v15PrivateEncrypt(priv *rsa.PrivateKey, data []byte) ([]byte, error) {
	k := (priv.N.BitLen() + 7) / 8
	if len(data) > k-11 {
		return nil, fmt.Errorf("torcrypto: rsa pkcs1 private encrypt: %w", ErrInputTooLarge)
	}
	eb := make([]byte, k)
	eb[0] = 0x00
	eb[1] = 0x01
	psLen := k - 3 - len(data)
	for i := 0; i < psLen; i++ {
		eb[2+i] = 0xFF
	}
	eb[2+psLen] = 0x00
	copy(eb[3+psLen:], data)

	m := new(big.Int).SetBytes(eb)
	c := new(big.Int).Exp(m, priv.D, priv.N)
	return leftPadBytes(c.Bytes(), k), nil
}

// rsaPKCS1v15PublicDecrypt implements RSA_public_decrypt with
// RSA_PKCS1_PADDING: the inverse of rsaPKCS1v15PrivateEncrypt, raising
// sig to the e'th power and stripping the type-1 padding. Matches
// crypto_pk_public_checksig's textbook-RSA signature check.
func rsaPKCS1v15PublicDecrypt(pub *rsa.PublicKey, sig []byte) ([]byte, error) {
	k := (pub.N.BitLen() + 7) / 8
	c := new(big.Int).SetBytes(sig)
	if c.Cmp(pub.N) >= 0 {
		return nil, fmt.Errorf("torcrypto: rsa pkcs1 public decrypt: signature too large for modulus")
	}
	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)
	eb := leftPadBytes(m.Bytes(), k)

	if len(eb) < 11 || eb[0] != 0x00 || eb[1] != 0x01 {
		return nil, fmt.Errorf("torcrypto: rsa pkcs1 public decrypt: %w", ErrInvalidSignature)
	}
	i := 2
	for i < len(eb) && eb[i] == 0xFF {
		i++
	}
	if i >= len(eb) || eb[i] != 0x00 || i == 2 {
		return nil, fmt.Errorf("torcrypto: rsa pkcs1 public decrypt: %w", ErrInvalidSignature)
	}
	return eb[i+1:], nil
}

// leftPadBytes pads b with leading zeros to exactly size bytes, matching
// BN_bn2bin's fixed-width output convention used throughout crypto.c.
func leftPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b[len(b)-size:]
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}
