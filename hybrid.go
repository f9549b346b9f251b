package torcrypto

import "fmt"

// HybridEncrypt implements the facade's non-standard hybrid envelope
// (spec §4.F): an RSA block carrying a symmetric key plus a data prefix,
// followed by an AES-CTR tail for everything that doesn't fit.
//
// Grounded byte-for-byte on crypto.c's crypto_pk_public_hybrid_encrypt;
// cross-checked against other_examples/gravitational-teleport__hybrid_decrypt.go's
// documentation of the general RSA-wraps-symmetric-key shape (that file
// documents a standard hybrid KEM, not this protocol's exact layout, so
// only the shape is borrowed, not the wire format).
func (pk *PublicKey) HybridEncrypt(to, from []byte, padding Padding, force bool) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.publicKeyValid() {
		return 0, ErrNoPublicKey
	}
	overhead := padding.Overhead()
	if overhead < 0 {
		return 0, ErrInvalidPadding
	}
	keysize, _ := pk.KeySize()

	if padding == PaddingNone && len(from) < keysize {
		return 0, ErrInputTooLarge
	}
	if !force && len(from)+overhead <= keysize {
		return pk.PublicEncrypt(to, from, padding)
	}

	threshold := keysize - overhead // T
	if threshold < CipherKeyLen {
		return 0, fmt.Errorf("torcrypto: hybrid encrypt: key too small for chosen padding")
	}

	// dataLen is how much of from's prefix rides inside the RSA block
	// alongside the symmetric key. It must leave at least one byte for the
	// AES tail: a forced envelope whose tail is empty would encrypt to
	// exactly keysize bytes, indistinguishable from (and undecryptable as
	// anything but) a plain PublicEncrypt block by HybridDecrypt's
	// length-based branch. A message too short to leave a tail cannot be
	// forced into the hybrid envelope at all.
	dataLen := threshold - CipherKeyLen
	if len(from) <= dataLen {
		return 0, fmt.Errorf("torcrypto: hybrid encrypt: forced hybrid envelope requires at least %d bytes of message, got %d", dataLen+1, len(from))
	}

	cipherState := NewCipherState()
	if err := cipherState.GenerateKey(); err != nil {
		return 0, err
	}
	// The RSA-encrypted plaintext (symmetric key || data prefix) must be
	// strictly less than the modulus; clearing the symmetric key's top bit
	// under no-padding makes it effectively a 127-bit key so the leading
	// byte of the plaintext block can never push it past N.
	if padding == PaddingNone {
		cipherState.Key()[0] &= 0x7f
	}
	if err := cipherState.EncryptInit(); err != nil {
		return 0, err
	}

	buf := make([]byte, CipherKeyLen+dataLen)
	defer zero(buf)
	copy(buf[:CipherKeyLen], cipherState.Key())
	copy(buf[CipherKeyLen:], from[:dataLen])

	tailLen := len(from) - dataLen

	outLen, err := pk.PublicEncrypt(to, buf, padding)
	if err != nil {
		return 0, err
	}
	if outLen != keysize {
		return 0, fmt.Errorf("torcrypto: hybrid encrypt: unexpected rsa block length %d, want %d", outLen, keysize)
	}
	if len(to) < outLen+tailLen {
		return 0, ErrBufferTooSmall
	}
	if err := cipherState.Encrypt(to[outLen:outLen+tailLen], from[dataLen:]); err != nil {
		return 0, err
	}
	return outLen + tailLen, nil
}

// HybridDecrypt inverts HybridEncrypt exactly, matching
// crypto_pk_private_hybrid_decrypt.
func (pk *PublicKey) HybridDecrypt(to, from []byte, padding Padding) (int, error) {
	if err := requireInit(); err != nil {
		return 0, err
	}
	if !pk.privateKeyValid() {
		return 0, ErrNoPrivateKey
	}
	keysize, _ := pk.KeySize()

	if len(from) <= keysize {
		return pk.PrivateDecrypt(to, from, padding)
	}

	buf := make([]byte, keysize+1)
	defer zero(buf)
	outLen, err := pk.PrivateDecrypt(buf, from[:keysize], padding)
	if err != nil {
		return 0, err
	}
	if outLen < CipherKeyLen {
		return 0, fmt.Errorf("torcrypto: hybrid decrypt: %w: rsa block too short to hold symmetric key", ErrCiphertextTooShort)
	}

	cipherState := NewCipherState()
	if err := cipherState.SetKey(buf[:CipherKeyLen]); err != nil {
		return 0, err
	}
	if err := cipherState.DecryptInit(); err != nil {
		return 0, err
	}

	prefixLen := outLen - CipherKeyLen
	tailLen := len(from) - keysize
	if len(to) < prefixLen+tailLen {
		return 0, ErrBufferTooSmall
	}
	copy(to[:prefixLen], buf[CipherKeyLen:outLen])
	if err := cipherState.Decrypt(to[prefixLen:prefixLen+tailLen], from[keysize:]); err != nil {
		return 0, err
	}
	return prefixLen + tailLen, nil
}
