package torcrypto

import (
	"os"
	"testing"
)

// TestMain seeds the CSPRNG once before any test runs, the way a real
// caller's Initialize(...) would, and tears the facade down afterward.
// Mirrors the teacher's own package-level setup/teardown test helpers.
func TestMain(m *testing.M) {
	if err := Initialize(Options{Accel: AccelOff}); err != nil {
		panic(err)
	}
	code := m.Run()
	Teardown()
	os.Exit(code)
}
