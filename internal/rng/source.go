// Package rng provides the randomness sources used to deal tickets and draw numbers.
package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"time"
)

// Source picks one of n choices. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniformly distributed value in [0, n). n must be > 0.
	Intn(n int) int
}

// NewSeeded returns a deterministic source for the given seed.
func NewSeeded(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// NewTimeSeeded returns a source seeded from the wall clock.
func NewTimeSeeded() *mrand.Rand {
	return NewSeeded(time.Now().UnixNano())
}

// Crypto draws from crypto/rand. It is safe for concurrent use.
type Crypto struct{}

// NewCrypto returns a crypto/rand backed source.
func NewCrypto() Crypto {
	return Crypto{}
}

// Intn panics if n <= 0 or if the system entropy source fails.
func (Crypto) Intn(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to Intn")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("rng: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// Shuffle permutes n elements in place using src.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}

// Between returns a value in the inclusive range [lo, hi].
func Between(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// New returns the source named by kind ("crypto" or "math"); unknown kinds fall back to a
// time-seeded math/rand source.
func New(kind string) Source {
	if kind == KindCrypto {
		return NewCrypto()
	}
	return NewTimeSeeded()
}

const (
	KindMath   = "math"
	KindCrypto = "crypto"
)
