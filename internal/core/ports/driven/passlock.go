package driven

// PassLock excludes passes run by other processes sharing the same data
// directory. It is held for the whole Running state of a controller.
type PassLock interface {
	// TryLock acquires the lock without blocking. It reports false when
	// another holder owns it.
	TryLock() (bool, error)

	// Unlock releases the lock. Unlocking an unheld lock is a no-op.
	Unlock() error
}
