package torcrypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync/atomic"
)

// addEntropy is the number of bytes crypto.c's crypto_seed_rng reads from
// each entropy source candidate per call.
const addEntropy = 32

// unixEntropyPaths is probed in order until one opens and yields
// addEntropy bytes, matching crypto_seed_rng's filenames[] table.
var unixEntropyPaths = []string{"/dev/srandom", "/dev/urandom", "/dev/random"}

// everSeeded latches true the first time seeding succeeds in this process;
// a later seeding failure is only fatal if this is still false, matching
// crypto_seed_rng's "rand_poll_status ? 0 : -1" fallback.
var everSeeded atomic.Bool

// seedRNG probes the platform's entropy sources and records whether
// seeding has ever succeeded. Go's crypto/rand.Reader already draws
// directly from the OS CSPRNG on every call (see DESIGN.md for why there
// is nothing to "feed" the probed bytes into), so this function's
// contract is the readiness/fatality gate spec.md §4.A and §4.B describe,
// not a reseed of a process-global generator.
func seedRNG(startup bool) error {
	buf := make([]byte, addEntropy)
	defer zero(buf)

	if err := seedFromPlatform(buf); err != nil {
		if everSeeded.Load() {
			defaultLogger.log(WARNING, "rand", "entropy poll failed after prior success: %v", err)
			return nil
		}
		return err
	}
	everSeeded.Store(true)
	_ = startup
	return nil
}

// seedFromPlatform is implemented per-OS: rand_unix.go on non-Windows,
// rand_windows.go on Windows.

// RandomBytes fills out with cryptographically strong random bytes. It
// fails with ErrNotSeeded if seeding has never succeeded in this process.
func RandomBytes(out []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if !everSeeded.Load() {
		return ErrNotSeeded
	}
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return logErr("random bytes", err)
	}
	return nil
}

// RandomInt returns a uniform value in [0, max) for 0 < max < 2^32, using
// rejection sampling so the modulo reduction carries no bias: draws in the
// biased tail [cutoff, 2^32) are discarded and redrawn.
func RandomInt(max uint32) (uint32, error) {
	if max == 0 {
		return 0, fmt.Errorf("torcrypto: random int: max must be > 0")
	}
	cutoff := uint64(math.MaxUint32) - (uint64(math.MaxUint32) % uint64(max))
	var buf [4]byte
	for {
		if err := RandomBytes(buf[:]); err != nil {
			return 0, err
		}
		val := uint64(binary.BigEndian.Uint32(buf[:]))
		if val < cutoff {
			return uint32(val % uint64(max)), nil
		}
	}
}

// RandomUint64 is RandomInt's 64-bit counterpart, uniform over [0, max)
// for 0 < max < 2^64.
func RandomUint64(max uint64) (uint64, error) {
	if max == 0 {
		return 0, fmt.Errorf("torcrypto: random uint64: max must be > 0")
	}
	cutoff := uint64(math.MaxUint64) - (uint64(math.MaxUint64) % max)
	var buf [8]byte
	for {
		if err := RandomBytes(buf[:]); err != nil {
			return 0, err
		}
		val := binary.BigEndian.Uint64(buf[:])
		if val < cutoff {
			return val % max, nil
		}
	}
}

// Shuffle performs a Fisher-Yates shuffle, drawing j uniformly from [0, i]
// (inclusive of i, so "no swap" at a given step is exactly as likely as
// any other outcome) and swapping positions i and j, walking from the end
// of the sequence to the front.
func Shuffle(n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		j, err := RandomInt(uint32(i + 1))
		if err != nil {
			return err
		}
		swap(i, int(j))
	}
	return nil
}

// Choose returns the index of a uniformly chosen element of a sequence of
// length n, or ErrEmptySequence if n == 0.
func Choose(n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmptySequence
	}
	idx, err := RandomInt(uint32(n))
	if err != nil {
		return 0, err
	}
	return int(idx), nil
}

// RandomHostname picks randLen uniformly in [minRandLen, maxRandLen],
// reads enough random bytes to base32-encode at least randLen characters,
// and returns prefix + the truncated base32 string + suffix.
func RandomHostname(minRandLen, maxRandLen int, prefix, suffix string) (string, error) {
	if maxRandLen < minRandLen {
		return "", fmt.Errorf("torcrypto: random hostname: max_rand_len < min_rand_len")
	}
	span, err := RandomInt(uint32(maxRandLen - minRandLen + 1))
	if err != nil {
		return "", err
	}
	randLen := minRandLen + int(span)

	randBytesLen := (randLen*5 + 7) / 8
	if rem := randBytesLen % 5; rem != 0 {
		randBytesLen += 5 - rem
	}

	raw := make([]byte, randBytesLen)
	if err := RandomBytes(raw); err != nil {
		return "", err
	}

	encoded := Base32Encode(raw)
	if len(encoded) < randLen {
		// Rounding guarantees enough bits; this should not happen.
		return "", fmt.Errorf("torcrypto: random hostname: insufficient random material")
	}
	return prefix + encoded[:randLen] + suffix, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
