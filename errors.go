package torcrypto

import "errors"

// Sentinel errors for the facade's well-defined failure modes.
//
// Design rationale, following the teacher's errors.go: sentinels for
// expected, checkable conditions; ad hoc fmt.Errorf wrapping with "%w"
// everywhere else. Callers use errors.Is to branch on these.
var (
	// ErrNotInitialized indicates a primitive was used before Initialize
	// succeeded.
	ErrNotInitialized = errors.New("torcrypto: facade not initialized")

	// ErrNotSeeded indicates RandomBytes was called before any successful
	// RNG seeding.
	ErrNotSeeded = errors.New("torcrypto: rng not seeded")

	// ErrNoPrivateKey indicates a private-key operation was attempted on a
	// PublicKey that holds only a public key.
	ErrNoPrivateKey = errors.New("torcrypto: private key not loaded")

	// ErrNoPublicKey indicates an operation was attempted on a PublicKey
	// whose modulus has not been set.
	ErrNoPublicKey = errors.New("torcrypto: public key not loaded")

	// ErrInvalidPadding indicates an unrecognized Padding value.
	ErrInvalidPadding = errors.New("torcrypto: unrecognized padding scheme")

	// ErrInputTooLarge indicates a plaintext exceeds what the chosen
	// padding scheme and key size can carry, or, under PaddingNone, is
	// shorter than the full key-size block that scheme takes.
	ErrInputTooLarge = errors.New("torcrypto: input too large for key and padding")

	// ErrInvalidSignature indicates signature verification failed.
	ErrInvalidSignature = errors.New("torcrypto: invalid signature")

	// ErrCiphertextTooShort indicates an envelope-decrypt or hybrid-decrypt
	// input was shorter than its format requires.
	ErrCiphertextTooShort = errors.New("torcrypto: ciphertext too short")

	// ErrBufferTooSmall indicates a caller-supplied output buffer cannot
	// hold the operation's result.
	ErrBufferTooSmall = errors.New("torcrypto: output buffer too small")

	// ErrRejectedDHKey indicates a Diffie-Hellman value fell outside the
	// subgroup [2, p-2].
	ErrRejectedDHKey = errors.New("torcrypto: dh public value out of range")

	// ErrKeyGenExhausted indicates GeneratePublic failed its bounded self-
	// check retry loop (astronomically unlikely in practice).
	ErrKeyGenExhausted = errors.New("torcrypto: dh public key generation did not converge")

	// ErrRequestedOutputTooLarge indicates a KDF output length exceeded its
	// contractual cap.
	ErrRequestedOutputTooLarge = errors.New("torcrypto: requested output exceeds kdf limit")

	// ErrNoEntropySource indicates none of the platform's entropy sources
	// could be opened or read during seeding.
	ErrNoEntropySource = errors.New("torcrypto: no entropy source available")

	// ErrEmptySequence indicates Choose was called on an empty sequence.
	ErrEmptySequence = errors.New("torcrypto: cannot choose from empty sequence")

	// ErrInvalidEncoding indicates a base16/base32/base64 string contained
	// a byte outside its alphabet, or a length stdlib/spec rejects.
	ErrInvalidEncoding = errors.New("torcrypto: invalid encoding")
)
