package torcrypto

import (
	"bytes"
	"testing"
)

func TestCipherEncryptDecryptRoundTrip(t *testing.T) {
	var key [CipherKeyLen]byte
	var iv [CipherIVLen]byte
	if err := RandomBytes(key[:]); err != nil {
		t.Fatalf("RandomBytes(key): %v", err)
	}
	if err := RandomBytes(iv[:]); err != nil {
		t.Fatalf("RandomBytes(iv): %v", err)
	}
	msg := bytes.Repeat([]byte("attack at dawn, "), 5)

	enc := NewCipherState()
	if err := enc.SetKey(key[:]); err != nil {
		t.Fatal(err)
	}
	if err := enc.SetIV(iv[:]); err != nil {
		t.Fatal(err)
	}
	ct := make([]byte, len(msg))
	if err := enc.Encrypt(ct, msg); err != nil {
		t.Fatal(err)
	}

	dec := NewCipherState()
	if err := dec.SetKey(key[:]); err != nil {
		t.Fatal(err)
	}
	if err := dec.SetIV(iv[:]); err != nil {
		t.Fatal(err)
	}
	pt := make([]byte, len(ct))
	if err := dec.Decrypt(pt, ct); err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(pt, msg) {
		t.Fatalf("round trip failed: got %q, want %q", pt, msg)
	}
}

func TestCipherEncryptIsInvolution(t *testing.T) {
	var key [CipherKeyLen]byte
	var iv [CipherIVLen]byte
	RandomBytes(key[:])
	RandomBytes(iv[:])
	msg := []byte("same state applied twice")

	a := NewCipherState()
	a.SetKey(key[:])
	a.SetIV(iv[:])
	out1 := make([]byte, len(msg))
	a.Encrypt(out1, msg)

	b := NewCipherState()
	b.SetKey(key[:])
	b.SetIV(iv[:])
	out2 := make([]byte, len(out1))
	b.Encrypt(out2, out1)

	if !bytes.Equal(out2, msg) {
		t.Fatalf("applying Encrypt twice under the same state did not invert itself")
	}
}

func TestCipherEnvelopeRoundTrip(t *testing.T) {
	var key [CipherKeyLen]byte
	RandomBytes(key[:])
	msg := []byte("envelope carries its own iv")

	enc := NewCipherState()
	enc.SetKey(key[:])
	out := make([]byte, len(msg)+CipherIVLen)
	n, err := enc.EnvelopeEncrypt(out, msg)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(msg)+CipherIVLen {
		t.Fatalf("envelope encrypt length = %d, want %d", n, len(msg)+CipherIVLen)
	}

	dec := NewCipherState()
	dec.SetKey(key[:])
	pt := make([]byte, len(msg))
	n2, err := dec.EnvelopeDecrypt(pt, out[:n])
	if err != nil {
		t.Fatal(err)
	}
	if n2 != len(msg) || !bytes.Equal(pt, msg) {
		t.Fatalf("envelope round trip failed: got %q, want %q", pt[:n2], msg)
	}
}

func TestCipherEnvelopeDecryptTooShort(t *testing.T) {
	dec := NewCipherState()
	var key [CipherKeyLen]byte
	dec.SetKey(key[:])
	_, err := dec.EnvelopeDecrypt(make([]byte, 10), make([]byte, CipherIVLen))
	if err != ErrCiphertextTooShort {
		t.Fatalf("err = %v, want ErrCiphertextTooShort", err)
	}
}

func TestCipherGenerateKeyProducesDistinctKeys(t *testing.T) {
	a := NewCipherState()
	b := NewCipherState()
	a.GenerateKey()
	b.GenerateKey()
	if bytes.Equal(a.Key(), b.Key()) {
		t.Fatalf("two GenerateKey calls produced the same key")
	}
}
