package torcrypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"sync/atomic"
)

// pemPrivateBlockType and pemPublicBlockType match crypto.c's PEM_read/
// PEM_write calls against RSAPrivateKey/RSAPublicKey, i.e. PKCS#1 (not
// SubjectPublicKeyInfo).
const (
	pemPrivateBlockType = "RSA PRIVATE KEY"
	pemPublicBlockType  = "RSA PUBLIC KEY"
)

// pkShared is the reference-counted body of a PublicKey, standing in for
// crypto_pk_env_t's refs+key fields. Every PublicKey value sharing this
// pointer is a "dup" of the same underlying key; PublicKey.CopyFull
// allocates a fresh pkShared instead.
type pkShared struct {
	refs int32
	pub  *rsa.PublicKey
	priv *rsa.PrivateKey
}

// PublicKey is the facade's reference-counted RSA keypair/public-key
// object (spec component E). The zero value is not usable; construct with
// New.
type PublicKey struct {
	s *pkShared
}

// New allocates an empty, refcount-1 PublicKey with no key material
// loaded yet.
func New() *PublicKey {
	return &PublicKey{s: &pkShared{refs: 1}}
}

// Dup bumps the shared refcount and returns a PublicKey pointing at the
// same underlying key (shared ownership), matching crypto_pk_dup_key.
func (pk *PublicKey) Dup() *PublicKey {
	atomic.AddInt32(&pk.s.refs, 1)
	return &PublicKey{s: pk.s}
}

// CopyFull makes an independent deep copy of pk: a public-only key if pk
// is public-only, a full private copy if pk's private predicate holds.
// Matches crypto_pk_copy_full's RSAPrivateKey_dup/RSAPublicKey_dup split.
func (pk *PublicKey) CopyFull() (*PublicKey, error) {
	if !pk.publicKeyValid() {
		return nil, ErrNoPublicKey
	}
	out := New()
	if pk.privateKeyValid() {
		priv := new(rsa.PrivateKey)
		*priv = *pk.s.priv
		priv.N = new(big.Int).Set(pk.s.priv.N)
		priv.E = pk.s.priv.E
		priv.D = new(big.Int).Set(pk.s.priv.D)
		priv.Primes = make([]*big.Int, len(pk.s.priv.Primes))
		for i, p := range pk.s.priv.Primes {
			priv.Primes[i] = new(big.Int).Set(p)
		}
		priv.Precompute()
		out.s.priv = priv
		out.s.pub = &priv.PublicKey
	} else {
		out.s.pub = &rsa.PublicKey{N: new(big.Int).Set(pk.s.pub.N), E: pk.s.pub.E}
	}
	return out, nil
}

// Free decrements the shared refcount. The last release zeroizes the
// private exponent and primes before dropping the reference, matching
// spec §3's "last release zeroizes and frees the underlying key".
func (pk *PublicKey) Free() {
	if atomic.AddInt32(&pk.s.refs, -1) > 0 {
		return
	}
	if pk.s.priv != nil {
		zeroBigInt(pk.s.priv.D)
		for _, p := range pk.s.priv.Primes {
			zeroBigInt(p)
		}
	}
	pk.s.priv = nil
	pk.s.pub = nil
}

func zeroBigInt(b *big.Int) {
	if b == nil {
		return
	}
	words := b.Bits()
	for i := range words {
		words[i] = 0
	}
}

// publicKeyValid implements "public key valid" ≡ n is set.
func (pk *PublicKey) publicKeyValid() bool {
	return pk.s.pub != nil && pk.s.pub.N != nil
}

// privateKeyValid implements "private key valid" ≡ p is also set.
func (pk *PublicKey) privateKeyValid() bool {
	return pk.s.priv != nil && len(pk.s.priv.Primes) > 0 && pk.s.priv.Primes[0] != nil
}

// Generate replaces pk's key with a fresh RSA keypair of the given bit
// size. Only the default public exponent (65537, per DefaultPublicExp) is
// supported, matching crypto/rsa's own fixed-exponent key generator; a
// non-default e is rejected rather than silently ignored.
func (pk *PublicKey) Generate(bits, e int) error {
	if err := requireInit(); err != nil {
		return err
	}
	if e != DefaultPublicExp {
		return fmt.Errorf("torcrypto: generate: unsupported public exponent %d (only %d is supported)", e, DefaultPublicExp)
	}
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return logErr("generating rsa key", err)
	}
	pk.s.priv = priv
	pk.s.pub = &priv.PublicKey
	return nil
}

// ReadPrivateFromString loads a PKCS#1 PEM-encoded private key.
func (pk *PublicKey) ReadPrivateFromString(pemStr string) error {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil || block.Type != pemPrivateBlockType {
		return fmt.Errorf("torcrypto: read private key: %w", ErrInvalidEncoding)
	}
	priv, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return logErr("parsing pkcs1 private key", err)
	}
	pk.s.priv = priv
	pk.s.pub = &priv.PublicKey
	return nil
}

// ReadPrivateFromFile reads and parses a PKCS#1 PEM private key file.
func (pk *PublicKey) ReadPrivateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return logErr("reading private key file", err)
	}
	return pk.ReadPrivateFromString(string(data))
}

// WritePrivateToString renders pk's private key as PKCS#1 PEM.
func (pk *PublicKey) WritePrivateToString() (string, error) {
	if !pk.privateKeyValid() {
		return "", ErrNoPrivateKey
	}
	der := x509.MarshalPKCS1PrivateKey(pk.s.priv)
	block := &pem.Block{Type: pemPrivateBlockType, Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// WritePrivateToFile writes pk's private key as PKCS#1 PEM to path.
func (pk *PublicKey) WritePrivateToFile(path string) error {
	s, err := pk.WritePrivateToString()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0600); err != nil {
		return logErr("writing private key file", err)
	}
	return nil
}

// ReadPublicFromString loads a PKCS#1 PEM-encoded public key.
func (pk *PublicKey) ReadPublicFromString(pemStr string) error {
	block, _ := pem.Decode([]byte(pemStr))
	if block == nil || block.Type != pemPublicBlockType {
		return fmt.Errorf("torcrypto: read public key: %w", ErrInvalidEncoding)
	}
	pub, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return logErr("parsing pkcs1 public key", err)
	}
	pk.s.pub = pub
	return nil
}

// WritePublicToString renders pk's public key as PKCS#1 PEM.
func (pk *PublicKey) WritePublicToString() (string, error) {
	if !pk.publicKeyValid() {
		return "", ErrNoPublicKey
	}
	der := x509.MarshalPKCS1PublicKey(pk.s.pub)
	block := &pem.Block{Type: pemPublicBlockType, Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// CheckKey runs the full RSA sanity check (prime/congruence validation)
// on the loaded private key, matching crypto_pk_check_key's RSA_check_key.
func (pk *PublicKey) CheckKey() error {
	if err := requireInit(); err != nil {
		return err
	}
	if !pk.privateKeyValid() {
		return ErrNoPrivateKey
	}
	if err := pk.s.priv.Validate(); err != nil {
		return logErr("checking rsa key", err)
	}
	return nil
}

// Compare implements a total order over valid public keys: lexicographic
// by modulus, then by exponent. A nil or key-less operand compares as
// "different" (-1), matching crypto_pk_cmp_keys's "!a || !b" early return.
func Compare(a, b *PublicKey) int {
	if a == nil || b == nil || !a.publicKeyValid() || !b.publicKeyValid() {
		return -1
	}
	if c := a.s.pub.N.Cmp(b.s.pub.N); c != 0 {
		return c
	}
	ae, be := big.NewInt(int64(a.s.pub.E)), big.NewInt(int64(b.s.pub.E))
	return ae.Cmp(be)
}

// KeySize returns the modulus size in bytes.
func (pk *PublicKey) KeySize() (int, error) {
	if !pk.publicKeyValid() {
		return 0, ErrNoPublicKey
	}
	return (pk.s.pub.N.BitLen() + 7) / 8, nil
}

// GetDigest writes the SHA-1 digest of the DER-encoded public key into
// out (DigestLen bytes).
func (pk *PublicKey) GetDigest(out []byte) error {
	der, err := pk.ASN1Encode()
	if err != nil {
		return err
	}
	sum := sha1.Sum(der)
	copy(out, sum[:])
	return nil
}

// GetFingerprint returns the uppercase-hex fingerprint of pk's public
// key: 40 characters, or 49 (with a space every 4 chars) if addSpace.
func (pk *PublicKey) GetFingerprint(addSpace bool) (string, error) {
	var digest [DigestLen]byte
	if err := pk.GetDigest(digest[:]); err != nil {
		return "", err
	}
	hexDigest := HexEncode(digest[:])
	if !addSpace {
		return hexDigest, nil
	}
	return addFingerprintSpaces(hexDigest), nil
}

// addFingerprintSpaces inserts a space after every 4 hex characters,
// matching add_spaces_to_fp exactly (no trailing space).
func addFingerprintSpaces(hexDigest string) string {
	var b []byte
	n := 0
	for i := 0; i < len(hexDigest); i++ {
		b = append(b, hexDigest[i])
		n++
		if n == 4 && i+1 < len(hexDigest) {
			b = append(b, ' ')
			n = 0
		}
	}
	return string(b)
}

// CheckFingerprintSyntax reports whether s is exactly 49 characters, with
// hex digits (either case) at positions 0-3,5-8,... and whitespace at positions
// 4,9,14,19,..., and no trailing characters.
func CheckFingerprintSyntax(s string) bool {
	if len(s) != FingerprintLen {
		return false
	}
	for i := 0; i < FingerprintLen; i++ {
		c := s[i]
		if i%5 == 4 {
			if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\v' && c != '\f' {
				return false
			}
		} else if !isHexDigit(c) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// PublicEncrypt RSA-encrypts from under pk's public key with the given
// padding, writing to out. Overhead/length contracts per spec §4.E.
func (pk *PublicKey) PublicEncrypt(out, from []byte, padding Padding) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.publicKeyValid() {
		return 0, ErrNoPublicKey
	}
	keysize, _ := pk.KeySize()
	overhead := padding.Overhead()
	if overhead < 0 {
		return 0, ErrInvalidPadding
	}
	if len(from)+overhead > keysize {
		return 0, ErrInputTooLarge
	}
	if padding == PaddingNone && len(from) != keysize {
		return 0, ErrInputTooLarge
	}

	var ct []byte
	var err error
	switch padding {
	case PaddingNone:
		ct, err = rsaNoPaddingEncrypt(pk.s.pub, from)
	case PaddingPKCS1:
		ct, err = rsa.EncryptPKCS1v15(rand.Reader, pk.s.pub, from)
	case PaddingOAEP:
		ct, err = rsa.EncryptOAEP(sha1.New(), rand.Reader, pk.s.pub, from, nil)
	}
	if err != nil {
		return 0, logErr("rsa public encrypt", err)
	}
	if len(out) < len(ct) {
		return 0, ErrBufferTooSmall
	}
	copy(out, ct)
	return len(ct), nil
}

// PrivateDecrypt inverts PublicEncrypt. Fails with ErrNoPrivateKey if pk
// has no private key loaded.
func (pk *PublicKey) PrivateDecrypt(out, from []byte, padding Padding) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.privateKeyValid() {
		return 0, ErrNoPrivateKey
	}
	var pt []byte
	var err error
	switch padding {
	case PaddingNone:
		pt, err = rsaNoPaddingDecrypt(pk.s.priv, from)
	case PaddingPKCS1:
		pt, err = rsa.DecryptPKCS1v15(rand.Reader, pk.s.priv, from)
	case PaddingOAEP:
		pt, err = rsa.DecryptOAEP(sha1.New(), rand.Reader, pk.s.priv, from, nil)
	default:
		return 0, ErrInvalidPadding
	}
	if err != nil {
		return 0, logErr("rsa private decrypt", err)
	}
	if len(out) < len(pt) {
		return 0, ErrBufferTooSmall
	}
	copy(out, pt)
	return len(pt), nil
}

// PublicChecksig performs textbook RSA "decrypt" with PKCS1 v1.5 padding
// of an arbitrary (non-hashed) signed blob, matching
// crypto_pk_public_checksig.
func (pk *PublicKey) PublicChecksig(out, sig []byte) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.publicKeyValid() {
		return 0, ErrNoPublicKey
	}
	pt, err := rsaPKCS1v15PublicDecrypt(pk.s.pub, sig)
	if err != nil {
		return 0, logErr("checking rsa signature", err)
	}
	if len(out) < len(pt) {
		return 0, ErrBufferTooSmall
	}
	copy(out, pt)
	return len(pt), nil
}

// PrivateSign performs textbook RSA "encrypt" with PKCS1 v1.5 padding of
// an arbitrary blob, matching crypto_pk_private_sign.
func (pk *PublicKey) PrivateSign(out, from []byte) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.privateKeyValid() {
		return 0, ErrNoPrivateKey
	}
	ct, err := rsaPKCS1v15PrivateEncrypt(pk.s.priv, from)
	if err != nil {
		return 0, logErr("generating rsa signature", err)
	}
	if len(out) < len(ct) {
		return 0, ErrBufferTooSmall
	}
	copy(out, ct)
	return len(ct), nil
}

// PublicChecksigDigest verifies that sig is a valid PKCS1-v1.5 "signature"
// (textbook RSA) of SHA1(data), matching crypto_pk_public_checksig_digest.
func (pk *PublicKey) PublicChecksigDigest(data, sig []byte) error {
	digest := sha1.Sum(data)
	buf := make([]byte, PKBytes+1)
	n, err := pk.PublicChecksig(buf, sig)
	if err != nil {
		return err
	}
	if n != DigestLen {
		return ErrInvalidSignature
	}
	for i := 0; i < DigestLen; i++ {
		if buf[i] != digest[i] {
			return ErrInvalidSignature
		}
	}
	return nil
}

// PrivateSignDigest signs SHA1(data) with PKCS1-v1.5 textbook RSA,
// matching crypto_pk_private_sign_digest.
func (pk *PublicKey) PrivateSignDigest(out, data []byte) (int, error) {
	digest := sha1.Sum(data)
	defer func() {
		for i := range digest {
			digest[i] = 0
		}
	}()
	return pk.PrivateSign(out, digest[:])
}
