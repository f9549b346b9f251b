package torcrypto

// Fixed-size constants for the facade's value types.
//
// Moved from: crypto.h-equivalent constant block in the reference
// implementation (Tor's crypto.c/crypto.h pair).
const (
	DigestLen         = 20 // SHA-1 output size
	HexDigestLen      = 40 // DigestLen encoded as uppercase hex
	FingerprintLen    = 49 // HexDigestLen with a space every 4 chars, minus the trailing one
	Base64DigestLen   = 27 // DigestLen encoded unpadded base64
	CipherKeyLen      = 16 // AES-128 key size
	CipherIVLen       = 16 // AES-CTR counter block size
	DHBytes           = 128
	DHPrivateKeyBits  = 320
	PKBytes           = 128 // default RSA modulus size in bytes (1024 bits)
	DefaultPublicExp  = 65537
	maxExpandKeyBytes = DigestLen * 256 // crypto_expand_key_material's hard cap
	maxDHSecretBytes  = DigestLen * 255 // crypto_dh_compute_secret's hard cap (255 SHA1 blocks)
)

// Log levels, shared by Logger and Initialize's backend-selection messages.
const (
	DEBUG = iota
	INFO
	WARNING
	ERROR
	FATAL
)

// AccelMode selects whether Initialize probes for hardware/engine-backed
// implementations of the underlying primitives.
type AccelMode int

const (
	// AccelOff uses the default (software) implementation of every primitive.
	AccelOff AccelMode = 0
	// AccelOn probes for and registers accelerated implementations, logging
	// which backend ends up serving each primitive.
	AccelOn AccelMode = 1
	// AccelTentative behaves like AccelOff but suppresses the "acceleration
	// requested" log line.
	AccelTentative AccelMode = -1
)

// Padding identifies an RSA padding scheme for PublicEncrypt/PrivateDecrypt.
type Padding int

const (
	PaddingNone Padding = iota
	PaddingPKCS1
	PaddingOAEP
)

// paddingOverhead mirrors crypto_get_rsa_padding_overhead: the number of
// plaintext bytes a padding scheme reserves for itself.
var paddingOverhead = map[Padding]int{
	PaddingNone:  0,
	PaddingPKCS1: 11,
	PaddingOAEP:  42,
}

// Overhead returns the padding scheme's reserved byte count, or -1 for an
// unrecognized padding value.
func (p Padding) Overhead() int {
	o, ok := paddingOverhead[p]
	if !ok {
		return -1
	}
	return o
}

// Scheme identifiers used when Initialize logs which backend serves a
// primitive under AccelOn.
const (
	backendRSA  = "RSA"
	backendDH   = "DH"
	backendRAND = "RAND"
	backendSHA1 = "SHA1"
	backend3DES = "3DES"
	backendAES  = "AES"
)

// accelBackends lists the primitives Initialize probes for acceleration,
// in the order it logs them.
var accelBackends = []string{backendRSA, backendDH, backendRAND, backendSHA1, backend3DES, backendAES}
