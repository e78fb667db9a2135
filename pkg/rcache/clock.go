package rcache

import (
	"crypto/rand"
	"time"
)

// Clock supplies the current time as unsigned 32-bit seconds since the Unix
// epoch. Injectable so tests can pin time; the zero value of [Deps] uses the
// system clock.
type Clock interface {
	Now() (uint32, error)
}

// systemClock reads the wall clock.
type systemClock struct{}

// Now returns the current Unix time truncated to 32 bits. The truncation
// matches the on-disk timestamp width; like the format itself, it wraps in
// 2106 and comparisons use serial-number arithmetic.
func (systemClock) Now() (uint32, error) {
	return uint32(time.Now().Unix()), nil
}

// RandomSource fills buffers with cryptographically unpredictable bytes.
// Used once per cache file to generate the hash seed. Fails only on
// catastrophic entropy-source failure.
type RandomSource interface {
	Read(p []byte) error
}

// cryptoRand reads from crypto/rand.
type cryptoRand struct{}

func (cryptoRand) Read(p []byte) error {
	_, err := rand.Read(p)

	return err
}
