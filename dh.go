package torcrypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

// dhParamHex is the RFC 2409 §6.2 1024-bit MODP safe prime, byte-exact
// with crypto.c's init_dh_param.
const dhParamHex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E08" +
	"8A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B" +
	"302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9" +
	"A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE6" +
	"49286651ECE65381FFFFFFFFFFFFFFFF"

var (
	dhParamOnce sync.Once
	dhParamP    *big.Int
	dhParamG    = big.NewInt(2)
	dhParamPm2  *big.Int // p - 2, precomputed for Check
	dhParamOne  = big.NewInt(1)
)

func initDHParam() {
	dhParamOnce.Do(func() {
		p := new(big.Int)
		p.SetString(dhParamHex, 16)
		dhParamP = p
		dhParamPm2 = new(big.Int).Sub(p, big.NewInt(2))
	})
}

// maxDHGenerateAttempts bounds GeneratePublic's self-check retry loop,
// per spec §9's instruction to model the reference's goto-retry as a
// bounded loop rather than spin forever.
const maxDHGenerateAttempts = 3

// DHState holds a Diffie-Hellman key exchange bound to the fixed RFC 2409
// §6.2 group (p, g=2, 320-bit private exponent). Public and private
// components are created lazily on first GeneratePublic.
//
// Grounded on crypto.c's crypto_dh_env_t / crypto_dh_new /
// crypto_dh_generate_public / crypto_dh_get_public / tor_check_dh_key /
// crypto_dh_compute_secret.
type DHState struct {
	x *big.Int // private exponent
	y *big.Int // public value g^x
}

// NewDH constructs a DH state bound to the fixed group. Initialization of
// the shared (p, g) parameters is lazy and idempotent.
func NewDH() *DHState {
	initDHParam()
	return &DHState{}
}

// GetBytes returns the DH modulus size in bytes (DHBytes).
func (dh *DHState) GetBytes() int {
	return DHBytes
}

// GeneratePublic generates (x, g^x) for this side of the exchange. After
// generation it validates the self-generated public value with Check; on
// the astronomically unlikely event that it is invalid, it discards and
// retries, bounded by maxDHGenerateAttempts.
func (dh *DHState) GeneratePublic() error {
	if err := requireInit(); err != nil {
		return err
	}
	for attempt := 0; attempt < maxDHGenerateAttempts; attempt++ {
		x, err := rand.Int(rand.Reader, new(big.Int).Lsh(dhParamOne, DHPrivateKeyBits))
		if err != nil {
			return logErr("generating dh private key", err)
		}
		y := new(big.Int).Exp(dhParamG, x, dhParamP)
		if err := Check(y); err != nil {
			defaultLogger.log(WARNING, "dh",
				"weird: our own dh key was invalid (%s); trying again", y.Text(16))
			continue
		}
		dh.x, dh.y = x, y
		return nil
	}
	return ErrKeyGenExhausted
}

// GetPublic renders g^x as unsigned big-endian, left-padded with zero
// bytes to fill exactly len(out) (which must be >= DHBytes). Generates
// the key pair first if it has not been generated yet.
func (dh *DHState) GetPublic(out []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	if len(out) < DHBytes {
		return fmt.Errorf("torcrypto: dh get public: buffer shorter than %d bytes", DHBytes)
	}
	if dh.y == nil {
		if err := dh.GeneratePublic(); err != nil {
			return err
		}
	}
	for i := range out {
		out[i] = 0
	}
	b := dh.y.Bytes()
	copy(out[len(out)-len(b):], b)
	return nil
}

// Check accepts bn iff 2 <= bn <= p-2, matching tor_check_dh_key's
// subgroup sanity check.
func Check(bn *big.Int) error {
	if err := requireInit(); err != nil {
		return err
	}
	initDHParam()
	if bn.Cmp(big.NewInt(1)) <= 0 {
		defaultLogger.log(WARNING, "dh", "rejecting insecure dh key [%s]: must be at least 2", bn.Text(16))
		return ErrRejectedDHKey
	}
	if bn.Cmp(dhParamPm2) > 0 {
		defaultLogger.log(WARNING, "dh", "rejecting insecure dh key [%s]: must be at most p-2", bn.Text(16))
		return ErrRejectedDHKey
	}
	return nil
}

// ComputeSecret parses peerPublic as unsigned big-endian, validates it
// with Check, computes the shared secret g^(xy) mod p, and expands it via
// ExpandKeyMaterial into exactly len(out) bytes. len(out) must be <=
// maxDHSecretBytes (20*255).
func (dh *DHState) ComputeSecret(peerPublic []byte, out []byte) error {
	if err := requireInit(); err != nil {
		return err
	}
	initDHParam()
	if dh.x == nil {
		return fmt.Errorf("torcrypto: dh compute secret: local key pair not generated")
	}
	if len(out) > maxDHSecretBytes {
		return ErrRequestedOutputTooLarge
	}
	peerY := new(big.Int).SetBytes(peerPublic)
	if err := Check(peerY); err != nil {
		return err
	}
	secret := new(big.Int).Exp(peerY, dh.x, dhParamP)
	secretBytes := leftPadBytes(secret.Bytes(), DHBytes)
	defer zero(secretBytes)
	return ExpandKeyMaterial(secretBytes, out)
}
