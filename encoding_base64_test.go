package torcrypto

import (
	"bytes"
	"testing"
)

func TestBase64DecodeStandardPadding(t *testing.T) {
	cases := map[string]string{
		"YQ==":  "a",
		"YQ":    "a",
		"YQ===": "a",
	}
	for in, want := range cases {
		got, err := Base64Decode(in)
		if err != nil {
			t.Fatalf("Base64Decode(%q): %v", in, err)
		}
		if string(got) != want {
			t.Fatalf("Base64Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBase64DecodeToleratesInteriorWhitespace(t *testing.T) {
	// "attack at dawn" base64-encoded, with whitespace spliced into the
	// middle of the stream; the permissive decoder must skip it.
	clean := Base64Encode([]byte("attack at dawn"))
	var spaced bytes.Buffer
	for i, c := range clean {
		spaced.WriteRune(c)
		if i%4 == 3 {
			spaced.WriteString(" \t\r\n\v")
		}
	}
	got, err := Base64Decode(spaced.String())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "attack at dawn" {
		t.Fatalf("got %q, want %q", got, "attack at dawn")
	}
}

func TestBase64DecodeRejectsFormFeed(t *testing.T) {
	// Unlike the other whitespace characters, form feed is not tolerated
	// by the reference decode table.
	if _, err := Base64Decode("YQ\x0c=="); err == nil {
		t.Fatalf("expected error for form feed inside a base64 stream")
	}
}

func TestBase64DecodeRejectsIllegalCharacter(t *testing.T) {
	if _, err := Base64Decode("!!!!"); err == nil {
		t.Fatalf("expected error for illegal base64 characters")
	}
}

func TestBase64RoundTrip(t *testing.T) {
	msg := []byte("the quick brown fox jumps over the lazy dog")
	encoded := Base64Encode(msg)
	decoded, err := Base64Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, msg) {
		t.Fatalf("round trip mismatch: got %q, want %q", decoded, msg)
	}
}

func TestDigestBase64RoundTrip(t *testing.T) {
	digest := make([]byte, DigestLen)
	for i := range digest {
		digest[i] = byte(i)
	}
	encoded, err := DigestToBase64(digest)
	if err != nil {
		t.Fatal(err)
	}
	if len(encoded) != Base64DigestLen {
		t.Fatalf("encoded length = %d, want %d", len(encoded), Base64DigestLen)
	}
	decoded, err := DigestFromBase64(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, digest) {
		t.Fatalf("digest round trip mismatch: got %x, want %x", decoded, digest)
	}
}

func TestDigestFromBase64RejectsWrongLength(t *testing.T) {
	if _, err := DigestFromBase64("short"); err == nil {
		t.Fatalf("expected error for a digest string of the wrong length")
	}
}
