package torcrypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"hash"
)

// DigestContext is an incremental SHA-1 context, duplicable by value-copy.
//
// Grounded on crypto.c's crypto_digest_env_t (an opaque SHA_CTX wrapper):
// New/Add/GetDigest/Dup/Assign map directly onto crypto_new_digest_env/
// crypto_digest_add_bytes/crypto_digest_get_digest/crypto_digest_dup/
// crypto_digest_assign.
type DigestContext struct {
	h hash.Hash
}

// NewDigestContext returns a fresh, empty SHA-1 context.
func NewDigestContext() *DigestContext {
	return &DigestContext{h: sha1.New()}
}

// Add feeds additional bytes into the running digest.
func (d *DigestContext) Add(p []byte) {
	d.h.Write(p)
}

// GetDigest writes up to DigestLen bytes of the current digest into out,
// truncated to len(out). It is non-destructive: finalizing a running hash
// requires copying its state, so further Add calls remain valid afterward.
func (d *DigestContext) GetDigest(out []byte) {
	if len(out) > DigestLen {
		out = out[:DigestLen]
	}
	copy(out, d.h.Sum(nil))
}

// Dup returns an independent copy of d that can be advanced separately.
func (d *DigestContext) Dup() *DigestContext {
	// crypto/sha1's hash.Hash does not expose a clone method, but its
	// concrete type satisfies encoding.BinaryMarshaler/Unmarshaler, which
	// is the standard way to duplicate hash state without re-hashing from
	// scratch (the same trick used by crypto_digest_dup's memcpy of the
	// SHA_CTX struct).
	type cloner interface {
		MarshalBinary() ([]byte, error)
	}
	state, err := d.h.(cloner).MarshalBinary()
	if err != nil {
		// sha1.New()'s hash always implements BinaryMarshaler; this would
		// only fail on a broken stdlib.
		panic(err)
	}
	clone := sha1.New()
	if u, ok := clone.(interface {
		UnmarshalBinary([]byte) error
	}); ok {
		if err := u.UnmarshalBinary(state); err != nil {
			panic(err)
		}
	}
	return &DigestContext{h: clone}
}

// Assign makes dst a copy of src's current state, matching
// crypto_digest_assign's *dest = *src.
func (dst *DigestContext) Assign(src *DigestContext) {
	*dst = *src.Dup()
}

// Digest computes the one-shot SHA-1 digest of msg, writing DigestLen
// bytes into out.
func Digest(out []byte, msg []byte) {
	sum := sha1.Sum(msg)
	copy(out, sum[:])
}

// HMACSHA1 computes RFC 2104 HMAC-SHA1 of msg under key.
func HMACSHA1(key, msg []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}
