package torcrypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestExpandKeyMaterialDeterministic(t *testing.T) {
	key := []byte("shared dh secret material")
	out1 := make([]byte, 100)
	out2 := make([]byte, 100)
	if err := ExpandKeyMaterial(key, out1); err != nil {
		t.Fatal(err)
	}
	if err := ExpandKeyMaterial(key, out2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatalf("ExpandKeyMaterial is not deterministic")
	}
}

func TestExpandKeyMaterialPrefixConsistency(t *testing.T) {
	key := []byte("another secret")
	short := make([]byte, 20)
	long := make([]byte, 60)
	ExpandKeyMaterial(key, short)
	ExpandKeyMaterial(key, long)
	if !bytes.Equal(short, long[:20]) {
		t.Fatalf("longer output did not extend the shorter output's prefix")
	}
}

func TestExpandKeyMaterialTooLarge(t *testing.T) {
	out := make([]byte, maxExpandKeyBytes+1)
	if err := ExpandKeyMaterial([]byte("k"), out); err != ErrRequestedOutputTooLarge {
		t.Fatalf("err = %v, want ErrRequestedOutputTooLarge", err)
	}
}

// TestS2KVector exercises the documented corner case: salt = 8 zero
// bytes, count byte 0x00 (count = 16<<6 = 1024), secret = "". With an
// empty secret the iterated body is just the salt repeated to fill the
// count, so the result is the SHA-1 digest of 1024 zero bytes.
func TestS2KVector(t *testing.T) {
	spec := make([]byte, S2KSpecifierLen) // all zero: salt=0x8, c=0x00
	out := make([]byte, DigestLen)
	if err := S2K(out, nil, spec); err != nil {
		t.Fatal(err)
	}
	want, err := hex.DecodeString("60cacbf3d72e1e7834203da608037b1bf83b40e8")
	if err != nil {
		t.Fatal(err)
	}
	if len(want) != DigestLen {
		t.Fatalf("test vector hex decoded to %d bytes, want %d", len(want), DigestLen)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("S2K vector mismatch: got %x, want %x", out, want)
	}
}

func TestS2KVaryingCountChangesOutput(t *testing.T) {
	salt := make([]byte, 8)
	specLow := append(append([]byte{}, salt...), 0x00)
	specHigh := append(append([]byte{}, salt...), 0xF0)
	outLow := make([]byte, DigestLen)
	outHigh := make([]byte, DigestLen)
	if err := S2K(outLow, []byte("secret"), specLow); err != nil {
		t.Fatal(err)
	}
	if err := S2K(outHigh, []byte("secret"), specHigh); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(outLow, outHigh) {
		t.Fatalf("different count bytes produced the same key")
	}
}

func TestS2KRejectsWrongSpecifierLength(t *testing.T) {
	out := make([]byte, DigestLen)
	if err := S2K(out, nil, make([]byte, 8)); err == nil {
		t.Fatalf("expected error for short s2k specifier")
	}
}
