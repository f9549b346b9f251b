//go:build !windows

package torcrypto

import (
	"fmt"
	"io"
	"os"
)

// seedFromPlatform tries each Unix entropy source in order, as
// crypto_seed_rng's filenames[] table does, opening the first that exists
// and reading exactly len(buf) bytes from it.
func seedFromPlatform(buf []byte) error {
	var lastErr error
	for _, path := range unixEntropyPaths {
		f, err := os.Open(path)
		if err != nil {
			lastErr = err
			continue
		}
		defaultLogger.log(INFO, "rand", "seeding rng from %q", path)
		_, err = io.ReadFull(f, buf)
		f.Close()
		if err != nil {
			return logErr("rand: reading entropy source", fmt.Errorf("%s: %w", path, err))
		}
		return nil
	}
	return logErr("rand: seeding", fmt.Errorf("%w: tried %v (%v)", ErrNoEntropySource, unixEntropyPaths, lastErr))
}
