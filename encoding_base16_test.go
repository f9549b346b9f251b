package torcrypto

import (
	"bytes"
	"testing"
)

func TestHexEncodeIsUppercase(t *testing.T) {
	got := HexEncode([]byte{0xde, 0xad, 0xbe, 0xef})
	if got != "DEADBEEF" {
		t.Fatalf("HexEncode = %q, want %q", got, "DEADBEEF")
	}
}

func TestHexDecodeAcceptsEitherCase(t *testing.T) {
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	for _, s := range []string{"deadbeef", "DEADBEEF", "DeAdBeEf"} {
		got, err := HexDecode(s)
		if err != nil {
			t.Fatalf("HexDecode(%q): %v", s, err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("HexDecode(%q) = %x, want %x", s, got, want)
		}
	}
}

func TestHexDecodeRejectsGarbage(t *testing.T) {
	if _, err := HexDecode("not hex!!"); err == nil {
		t.Fatalf("expected error for invalid hex string")
	}
}

func TestHexRoundTrip(t *testing.T) {
	msg := []byte("round trip through base16")
	got, err := HexDecode(HexEncode(msg))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, msg) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, msg)
	}
}
