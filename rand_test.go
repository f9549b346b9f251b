package torcrypto

import (
	"strings"
	"testing"
)

func TestRandomBytesFillsBuffer(t *testing.T) {
	buf := make([]byte, 32)
	if err := RandomBytes(buf); err != nil {
		t.Fatal(err)
	}
	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatalf("RandomBytes returned an all-zero buffer (astronomically unlikely)")
	}
}

func TestRandomIntBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v, err := RandomInt(7)
		if err != nil {
			t.Fatal(err)
		}
		if v >= 7 {
			t.Fatalf("RandomInt(7) = %d, out of range", v)
		}
	}
}

func TestRandomIntRejectsZeroMax(t *testing.T) {
	if _, err := RandomInt(0); err == nil {
		t.Fatalf("expected error for max = 0")
	}
}

func TestRandomUint64Bounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v, err := RandomUint64(5)
		if err != nil {
			t.Fatal(err)
		}
		if v >= 5 {
			t.Fatalf("RandomUint64(5) = %d, out of range", v)
		}
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	n := 20
	vals := make([]int, n)
	for i := range vals {
		vals[i] = i
	}
	if err := Shuffle(n, func(i, j int) { vals[i], vals[j] = vals[j], vals[i] }); err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool, n)
	for _, v := range vals {
		seen[v] = true
	}
	if len(seen) != n {
		t.Fatalf("shuffle did not produce a permutation: %v", vals)
	}
}

func TestShuffleSingleElementNoop(t *testing.T) {
	called := false
	if err := Shuffle(1, func(i, j int) { called = true }); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Fatalf("Shuffle(1, ...) should never call swap")
	}
}

func TestChooseWithinRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		idx, err := Choose(10)
		if err != nil {
			t.Fatal(err)
		}
		if idx < 0 || idx >= 10 {
			t.Fatalf("Choose(10) = %d, out of range", idx)
		}
	}
}

func TestChooseEmptySequence(t *testing.T) {
	if _, err := Choose(0); err != ErrEmptySequence {
		t.Fatalf("err = %v, want ErrEmptySequence", err)
	}
}

func TestRandomHostnameShape(t *testing.T) {
	name, err := RandomHostname(10, 20, "foo-", ".onion")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(name, "foo-") || !strings.HasSuffix(name, ".onion") {
		t.Fatalf("hostname %q missing prefix/suffix", name)
	}
	randPart := strings.TrimSuffix(strings.TrimPrefix(name, "foo-"), ".onion")
	if len(randPart) < 10 || len(randPart) > 20 {
		t.Fatalf("random part %q length %d out of [10,20]", randPart, len(randPart))
	}
}

func TestRandomHostnameRejectsInvertedRange(t *testing.T) {
	if _, err := RandomHostname(20, 10, "", ""); err == nil {
		t.Fatalf("expected error when max_rand_len < min_rand_len")
	}
}
