//go:build windows

package torcrypto

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// seedFromPlatform acquires a CryptoAPI provider for the duration of the
// call, reads len(buf) bytes from it and releases it, mirroring crypto_seed_rng's
// CryptAcquireContext/CryptGenRandom path.
func seedFromPlatform(buf []byte) error {
	var provider windows.Handle
	err := windows.CryptAcquireContext(&provider, nil, nil, windows.PROV_RSA_FULL, windows.CRYPT_VERIFYCONTEXT)
	if err != nil {
		return logErr("rand: acquiring crypto provider", fmt.Errorf("%w: %v", ErrNoEntropySource, err))
	}
	defer windows.CryptReleaseContext(provider, 0)

	if err := windows.CryptGenRandom(provider, buf); err != nil {
		return logErr("rand: reading entropy source", fmt.Errorf("%w: %v", ErrNoEntropySource, err))
	}
	defaultLogger.log(INFO, "rand", "seeding rng from CryptoAPI")
	return nil
}
