package torcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// CipherState is an AES-128-CTR stream: a 16-byte key and a stream
// position owned exclusively by this object.
//
// Grounded on crypto.c's crypto_cipher_env_t: SetKey/GenerateKey mirror
// crypto_cipher_set_key/crypto_cipher_generate_key, EncryptInit/
// DecryptInit mirror crypto_cipher_encrypt_init_cipher (identical for
// CTR, since encrypt and decrypt are the same XOR), and Encrypt/Decrypt
// mirror crypto_cipher_encrypt/crypto_cipher_decrypt.
type CipherState struct {
	key    [CipherKeyLen]byte
	iv     [CipherIVLen]byte
	stream cipher.Stream
}

// NewCipherState returns a CipherState with a zero key and no installed
// stream, matching the reference object's state immediately after
// crypto_new_cipher_env.
func NewCipherState() *CipherState {
	return &CipherState{}
}

// SetKey installs exactly CipherKeyLen bytes of key material. It does not
// install the stream; call EncryptInit/DecryptInit afterward.
func (c *CipherState) SetKey(key []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if len(key) != CipherKeyLen {
		return fmt.Errorf("torcrypto: cipher set key: want %d bytes, got %d", CipherKeyLen, len(key))
	}
	copy(c.key[:], key)
	c.stream = nil
	return nil
}

// GenerateKey fills the key buffer from the CSPRNG.
func (c *CipherState) GenerateKey() error {
	if err := RandomBytes(c.key[:]); err != nil {
		return err
	}
	c.stream = nil
	return nil
}

// Key returns the installed key bytes, for callers (e.g. the hybrid
// envelope) that need to inspect or mutate it before EncryptInit.
func (c *CipherState) Key() []byte {
	return c.key[:]
}

// SetIV installs a CipherIVLen-byte counter block and (re)installs the
// keystream. CTR's keystream depends only on key and IV, so this doubles
// as both encrypt-init and decrypt-init once a key is set.
func (c *CipherState) SetIV(iv []byte) error {
	if len(iv) != CipherIVLen {
		return fmt.Errorf("torcrypto: cipher set iv: want %d bytes, got %d", CipherIVLen, len(iv))
	}
	copy(c.iv[:], iv)
	return c.initStream()
}

// EncryptInit installs the key into the stream with a zero IV. Identical
// to DecryptInit: CTR mode is its own inverse.
func (c *CipherState) EncryptInit() error {
	c.iv = [CipherIVLen]byte{}
	return c.initStream()
}

// DecryptInit is EncryptInit's alias, matching the reference's identical
// encrypt/decrypt init paths for CTR.
func (c *CipherState) DecryptInit() error {
	return c.EncryptInit()
}

func (c *CipherState) initStream() error {
	if err := requireInit(); err != nil {
		return err
	}
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return logErr("cipher init", err)
	}
	c.stream = cipher.NewCTR(block, c.iv[:])
	return nil
}

// Encrypt XORs the keystream onto in, writing len(in) bytes to out, and
// advances the counter. Encrypt and Decrypt are the same operation.
func (c *CipherState) Encrypt(out, in []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if c.stream == nil {
		return fmt.Errorf("torcrypto: cipher encrypt: stream not initialized")
	}
	if len(out) < len(in) {
		return ErrBufferTooSmall
	}
	c.stream.XORKeyStream(out[:len(in)], in)
	return nil
}

// Decrypt is Encrypt's alias.
func (c *CipherState) Decrypt(out, in []byte) error {
	return c.Encrypt(out, in)
}

// EncryptInPlace XORs the keystream directly onto buf.
func (c *CipherState) EncryptInPlace(buf []byte) error {
	return c.Encrypt(buf, buf)
}

// DecryptInPlace is EncryptInPlace's alias.
func (c *CipherState) DecryptInPlace(buf []byte) error {
	return c.EncryptInPlace(buf)
}

// EnvelopeEncrypt generates a fresh IV, writes it to out[0:CipherIVLen],
// installs it, and encrypts in into out[CipherIVLen:]. out must be at
// least len(in)+CipherIVLen bytes; returns the total length written.
func (c *CipherState) EnvelopeEncrypt(out, in []byte) (int, error) {
	if len(out) < len(in)+CipherIVLen {
		return 0, ErrBufferTooSmall
	}
	iv := make([]byte, CipherIVLen)
	if err := RandomBytes(iv); err != nil {
		return 0, err
	}
	copy(out[:CipherIVLen], iv)
	if err := c.SetIV(iv); err != nil {
		return 0, err
	}
	if err := c.Encrypt(out[CipherIVLen:CipherIVLen+len(in)], in); err != nil {
		return 0, err
	}
	return len(in) + CipherIVLen, nil
}

// EnvelopeDecrypt reads the first CipherIVLen bytes of in as the IV,
// installs it, and decrypts the remainder into out. Fails if in is
// shorter than CipherIVLen+1 bytes or out cannot hold len(in)-CipherIVLen
// bytes.
func (c *CipherState) EnvelopeDecrypt(out, in []byte) (int, error) {
	if len(in) < CipherIVLen+1 {
		return 0, ErrCiphertextTooShort
	}
	n := len(in) - CipherIVLen
	if len(out) < n {
		return 0, ErrBufferTooSmall
	}
	if err := c.SetIV(in[:CipherIVLen]); err != nil {
		return 0, err
	}
	if err := c.Decrypt(out[:n], in[CipherIVLen:]); err != nil {
		return 0, err
	}
	return n, nil
}
