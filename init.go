package torcrypto

import (
	"sync"
	"sync/atomic"
)

// Options configures Initialize. It replaces the reference
// implementation's stringly-typed flags with a small struct, following the
// teacher's SessionConfig convention.
type Options struct {
	// Accel selects whether to probe for accelerated backends.
	Accel AccelMode
	// LockCount is the number of mutexes the lock manager allocates,
	// standing in for the lower crypto library's CRYPTO_num_locks().
	// Zero uses a small built-in default.
	LockCount int
}

const defaultLockCount = 16

var (
	initOnce   sync.Once
	initErr    error
	initDone   atomic.Bool
	globalLock *lockManager
)

// Initialize performs one-time library bring-up: it installs the lock
// manager (§5) before any primitive can be used
// concurrently, probes for accelerated backends if requested, and performs
// the initial RNG seed with startup=true. It is idempotent: calls after a
// successful first call return nil immediately without repeating work.
func Initialize(opts Options) error {
	initOnce.Do(func() {
		n := opts.LockCount
		if n <= 0 {
			n = defaultLockCount
		}
		globalLock = newLockManager(n)

		if opts.Accel != AccelTentative {
			// AccelOff and AccelOn both report intent; only Tentative is silent.
			defaultLogger.log(INFO, "init", "acceleration requested: %v", opts.Accel == AccelOn)
		}
		if opts.Accel == AccelOn {
			probeAccelBackends()
		}

		if err := seedRNG(true); err != nil {
			initErr = logErr("initialize: seeding rng", err)
			return
		}

		initDone.Store(true)
	})
	return initErr
}

// Teardown releases global state. It is always safe to call, even if
// Initialize failed partway through, and leaves the lock manager
// neutralized (calls become no-ops) rather than freeing it outright, since
// a lower library's callback may still fire after Teardown returns.
func Teardown() {
	if globalLock != nil {
		globalLock.neutralize()
	}
	initDone.Store(false)
	initOnce = sync.Once{}
	initErr = nil
}

// initialized reports whether Initialize has completed successfully and
// Teardown has not since been called.
func initialized() bool {
	return initDone.Load()
}

// requireInit is called at the top of every primitive entry point (§5: "all
// other operations require prior successful initialize") that can report
// failure through its existing error return: RandomBytes and friends, the
// CipherState key/stream/encrypt operations, every DHState operation, the
// PublicKey Generate/CheckKey/encrypt/decrypt/sign/checksig operations, and
// the hybrid/KDF/S2K entry points. The bare allocators (New, NewCipherState,
// NewDigestContext) and the stdlib-only one-shot Digest/HMACSHA1 helpers do
// no cryptographic backend work themselves and have no error return to
// report through, so they are intentionally left ungated. PublicKey's PEM
// and DER import/export, digest and fingerprint methods are not gated
// either.
func requireInit() error {
	if !initialized() {
		return ErrNotInitialized
	}
	return nil
}

// probeAccelBackends logs, for each primitive accel mode covers, which
// backend would serve it. The facade has no hardware-engine registry to
// probe (that is OpenSSL ENGINE machinery, out of scope per spec §1), so
// every primitive resolves to the software backend; the log line is kept
// because operators rely on it to confirm accel mode took effect.
func probeAccelBackends() {
	for _, name := range accelBackends {
		logBackend(name, "software")
	}
}

// lockManager allocates N mutexes standing in for the lower crypto
// library's per-site lock/unlock callbacks (spec §5). Unlike the reference
// implementation's raw C function pointers wrapping a global array, this
// is a plain Go value installed once by Initialize; after Teardown its
// lock and unlock methods become no-ops instead of touching freed memory.
type lockManager struct {
	mu      sync.RWMutex
	locks   []sync.Mutex
	dynamic sync.Map // id -> *sync.Mutex, for the dynamic-lock create/destroy callbacks
	nextID  atomic.Uint64
	live    atomic.Bool
}

func newLockManager(n int) *lockManager {
	lm := &lockManager{locks: make([]sync.Mutex, n)}
	lm.live.Store(true)
	return lm
}

// Lock acquires the n'th static mutex. It is a silent no-op once the
// manager has been neutralized, matching _openssl_locking_cb's
// "!_openssl_mutexes" guard against late shutdown callbacks.
func (lm *lockManager) Lock(n int) {
	if !lm.live.Load() {
		return
	}
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	if n < 0 || n >= len(lm.locks) {
		return
	}
	lm.locks[n].Lock()
}

// Unlock releases the n'th static mutex.
func (lm *lockManager) Unlock(n int) {
	if !lm.live.Load() {
		return
	}
	lm.mu.RLock()
	defer lm.mu.RUnlock()
	if n < 0 || n >= len(lm.locks) {
		return
	}
	lm.locks[n].Unlock()
}

// DynamicCreate allocates a new dynamic lock and returns its id.
func (lm *lockManager) DynamicCreate() uint64 {
	id := lm.nextID.Add(1)
	lm.dynamic.Store(id, &sync.Mutex{})
	return id
}

// DynamicLock acquires a previously created dynamic lock.
func (lm *lockManager) DynamicLock(id uint64) {
	if !lm.live.Load() {
		return
	}
	if v, ok := lm.dynamic.Load(id); ok {
		v.(*sync.Mutex).Lock()
	}
}

// DynamicUnlock releases a previously created dynamic lock.
func (lm *lockManager) DynamicUnlock(id uint64) {
	if !lm.live.Load() {
		return
	}
	if v, ok := lm.dynamic.Load(id); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// DynamicDestroy removes a dynamic lock.
func (lm *lockManager) DynamicDestroy(id uint64) {
	lm.dynamic.Delete(id)
}

// neutralize makes every subsequent Lock/Unlock/DynamicLock/DynamicUnlock
// call a no-op without freeing the underlying slice, so a lower-library
// callback that fires after Teardown cannot crash on freed memory.
// DynamicCreate and DynamicDestroy keep working on the dynamic-lock map.
func (lm *lockManager) neutralize() {
	lm.live.Store(false)
}
