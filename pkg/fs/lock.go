package fs

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrWouldBlock is returned by [Flock.TryLock] when the lock is held by
// another process (or another descriptor in this process).
var ErrWouldBlock = errors.New("lock would block")

// Flock provides whole-file advisory locking over an already-open [File]
// using flock(2).
//
// flock is advisory and applies to an open file description, not a pathname.
// All cooperating processes must take the lock for it to have effect. The
// caller owns the file: Flock never opens or closes it, and unlocking leaves
// the descriptor usable.
//
// Two independently-opened descriptors for the same file contend with each
// other, including within a single process, so a Flock-guarded section is
// exclusive across both processes and goroutines as long as each holder uses
// its own descriptor.
//
// This implementation is Unix-only.
type Flock struct {
	flock func(fd int, how int) error
}

// NewFlock returns a Flock backed by the real flock(2) syscall.
func NewFlock() *Flock {
	return &Flock{flock: unix.Flock}
}

// Lock acquires an exclusive lock on f, blocking until it is available.
//
// This blocks in the kernel with no timeout. It can block indefinitely if
// another process holds the lock and never releases it.
func (l *Flock) Lock(f File) error {
	err := flockRetryEINTR(l.flock, int(f.Fd()), unix.LOCK_EX)
	if err != nil {
		return fmt.Errorf("flock: %w", err)
	}

	return nil
}

// TryLock attempts to acquire an exclusive lock on f without blocking.
//
// Returns an error satisfying [errors.Is] with [ErrWouldBlock] if the lock
// is held elsewhere.
func (l *Flock) TryLock(f File) error {
	err := flockRetryEINTR(l.flock, int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
			return ErrWouldBlock
		}

		return fmt.Errorf("flock: %w", err)
	}

	return nil
}

// Unlock releases a lock previously acquired on f.
//
// Unlock is safe to call even if the lock was never acquired; flock treats
// LOCK_UN on an unlocked descriptor as a no-op. Closing f also releases the
// lock, so a failed Unlock followed by a successful Close still leaves the
// file unlocked.
func (l *Flock) Unlock(f File) error {
	err := flockRetryEINTR(l.flock, int(f.Fd()), unix.LOCK_UN)
	if err != nil {
		return fmt.Errorf("funlock: %w", err)
	}

	return nil
}

// flockRetryEINTR wraps flock, retrying on EINTR.
//
// EINTR means the syscall was interrupted by a signal before it could
// complete. The syscall didn't fail, it just needs to be retried.
//
// Retries are capped to avoid spinning forever under pathological signal
// storms. In practice this limit should never be hit.
func flockRetryEINTR(flock func(fd int, how int) error, fd int, how int) error {
	const maxEINTRRetries = 10000

	var err error
	for range maxEINTRRetries {
		err = flock(fd, how)
		if err == nil || !errors.Is(err, unix.EINTR) {
			return err
		}
	}

	return err
}
