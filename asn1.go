package torcrypto

import (
	"crypto/rsa"
	"encoding/asn1"
	"fmt"
	"math/big"
)

// pkcs1PublicKey is the bespoke RSAPublicKey ::= SEQUENCE { modulus
// INTEGER, publicExponent INTEGER } DER shape, grounded directly on
// other_examples/OpenBazaar-openbazaar-go__rsa.go's EncodePublicKeyDER,
// which marshals *rsa.PublicKey as-is because its field layout already
// matches this SEQUENCE. Defining the struct explicitly here (rather than
// marshaling *rsa.PublicKey directly) keeps the encoding independent of
// whatever unexported behavior a future stdlib version might add to
// rsa.PublicKey.
type pkcs1PublicKey struct {
	N *big.Int
	E int
}

// ASN1Encode returns the DER encoding of pk's public key.
func (pk *PublicKey) ASN1Encode() ([]byte, error) {
	if !pk.publicKeyValid() {
		return nil, ErrNoPublicKey
	}
	der, err := asn1.Marshal(pkcs1PublicKey{N: pk.s.pub.N, E: pk.s.pub.E})
	if err != nil {
		return nil, logErr("encoding public key", err)
	}
	return der, nil
}

// ASN1Decode replaces pk's key with the public key decoded from der,
// dropping any private key previously loaded.
func (pk *PublicKey) ASN1Decode(der []byte) error {
	var k pkcs1PublicKey
	rest, err := asn1.Unmarshal(der, &k)
	if err != nil {
		return logErr("decoding public key", err)
	}
	if len(rest) != 0 {
		return fmt.Errorf("torcrypto: asn1 decode: %d trailing bytes", len(rest))
	}
	pk.s.pub = &rsa.PublicKey{N: k.N, E: k.E}
	pk.s.priv = nil
	return nil
}
