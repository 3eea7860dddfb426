package draw

import (
	"loto/internal/domain"
	"loto/internal/rng"
)

// Pool holds the numbers that have not been drawn yet.
type Pool struct {
	in  [domain.MaxNumber + 1]bool
	len int
}

// NewPool returns a pool holding every number from MinNumber to MaxNumber.
func NewPool() *Pool {
	p := &Pool{}
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		p.in[n] = true
	}
	p.len = domain.MaxNumber - domain.MinNumber + 1
	return p
}

// Len returns how many numbers remain.
func (p *Pool) Len() int { return p.len }

// Empty reports whether every number has been drawn.
func (p *Pool) Empty() bool { return p.len == 0 }

// Contains reports whether n is still undrawn.
func (p *Pool) Contains(n int) bool {
	return n >= domain.MinNumber && n <= domain.MaxNumber && p.in[n]
}

// Remove takes n out of the pool. It reports false if n was not remaining.
func (p *Pool) Remove(n int) bool {
	if !p.Contains(n) {
		return false
	}
	p.in[n] = false
	p.len--
	return true
}

// Numbers returns the remaining numbers in ascending order.
func (p *Pool) Numbers() []int {
	out := make([]int, 0, p.len)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		if p.in[n] {
			out = append(out, n)
		}
	}
	return out
}

// Sample picks one of candidates uniformly. It reports false when candidates is empty.
func Sample(src rng.Source, candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[src.Intn(len(candidates))], true
}
