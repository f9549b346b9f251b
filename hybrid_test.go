package torcrypto

import (
	"bytes"
	"testing"
)

func TestHybridEncryptDecryptShortBranch(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()

	msg := bytes.Repeat([]byte{'a'}, 100)
	ks, _ := pk.KeySize()
	out := make([]byte, ks+len(msg))
	n, err := pk.HybridEncrypt(out, msg, PaddingPKCS1, false)
	if err != nil {
		t.Fatal(err)
	}
	if n != ks {
		t.Fatalf("short-branch output length = %d, want %d (key size)", n, ks)
	}

	pt := make([]byte, len(msg)+CipherIVLen)
	n2, err := pk.HybridDecrypt(pt, out[:n], PaddingPKCS1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt[:n2], msg) {
		t.Fatalf("decrypted short branch mismatch")
	}
}

func TestHybridEncryptDecryptLongBranch(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()

	msg := bytes.Repeat([]byte{'b'}, 500)
	ks, _ := pk.KeySize()
	out := make([]byte, ks+len(msg))
	n, err := pk.HybridEncrypt(out, msg, PaddingPKCS1, false)
	if err != nil {
		t.Fatal(err)
	}
	// ks(128) + (500 - (128-11-16)) = 128 + 399 = 527, per spec's worked example.
	wantLen := ks + (len(msg) - (ks - PaddingPKCS1.Overhead() - CipherKeyLen))
	if n != wantLen {
		t.Fatalf("long-branch output length = %d, want %d", n, wantLen)
	}

	pt := make([]byte, len(msg)+CipherIVLen)
	n2, err := pk.HybridDecrypt(pt, out[:n], PaddingPKCS1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt[:n2], msg) {
		t.Fatalf("decrypted long branch mismatch")
	}
}

func TestHybridEncryptForceAlwaysUsesLongBranch(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()

	// 110 bytes is short enough that force=false would take the short
	// (plain PublicEncrypt) branch (110+11 <= 128), but long enough to
	// leave room for a non-empty AES tail once forced (128-11-16 = 101),
	// so it exercises force actually overriding the short-branch choice
	// without tripping the "message too short to force" guard.
	msg := bytes.Repeat([]byte{'f'}, 110)
	ks, _ := pk.KeySize()
	out := make([]byte, ks+len(msg)+CipherKeyLen)
	n, err := pk.HybridEncrypt(out, msg, PaddingPKCS1, true)
	if err != nil {
		t.Fatal(err)
	}
	if n == ks {
		t.Fatalf("force=true should not take the short branch even for messages the short branch could carry")
	}

	pt := make([]byte, len(msg)+CipherIVLen)
	n2, err := pk.HybridDecrypt(pt, out[:n], PaddingPKCS1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt[:n2], msg) {
		t.Fatalf("decrypted forced branch mismatch")
	}
}

// TestHybridEncryptForceTooShortErrors exercises the case the reference
// implementation never has to handle (force is only ever called there
// with large messages): forcing the hybrid envelope on a message too
// short to leave a non-empty AES tail has no valid encoding, since the
// resulting ciphertext would be exactly keysize bytes and HybridDecrypt
// would read it back as a plain RSA block instead of a hybrid envelope.
func TestHybridEncryptForceTooShortErrors(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()

	msg := []byte("tiny")
	ks, _ := pk.KeySize()
	out := make([]byte, ks+len(msg)+CipherKeyLen)
	if _, err := pk.HybridEncrypt(out, msg, PaddingPKCS1, true); err == nil {
		t.Fatalf("expected an error forcing a hybrid envelope on a too-short message")
	}
}

func TestHybridEncryptNoPaddingClearsTopBit(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()
	ks, _ := pk.KeySize()

	msg := bytes.Repeat([]byte{'c'}, ks) // force the long branch
	out := make([]byte, ks+len(msg))
	n, err := pk.HybridEncrypt(out, msg, PaddingNone, true)
	if err != nil {
		t.Fatal(err)
	}
	// The quirk is internal to HybridEncrypt's temporary cipher key and is
	// not independently observable from the envelope, but the round trip
	// must still succeed under the no-padding overhead arithmetic.
	pt := make([]byte, len(msg)+CipherIVLen)
	n2, err := pk.HybridDecrypt(pt, out[:n], PaddingNone)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pt[:n2], msg) {
		t.Fatalf("no-padding hybrid round trip mismatch")
	}
}

func TestHybridEncryptDecryptEmptyMessage(t *testing.T) {
	pk := generateTestKey(t)
	defer pk.Free()
	ks, _ := pk.KeySize()

	out := make([]byte, ks)
	n, err := pk.HybridEncrypt(out, nil, PaddingPKCS1, false)
	if err != nil {
		t.Fatal(err)
	}
	pt := make([]byte, CipherIVLen)
	n2, err := pk.HybridDecrypt(pt, out[:n], PaddingPKCS1)
	if err != nil {
		t.Fatal(err)
	}
	if n2 != 0 {
		t.Fatalf("decrypted length = %d, want 0", n2)
	}
}
