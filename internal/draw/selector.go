package draw

import (
	"fmt"
	"iter"

	"loto/internal/domain"
	"loto/internal/rng"
)

// CandidatePool identifies which eligible set a drawn number was sampled from.
type CandidatePool int

const (
	// PoolSafe is SafeInit's remaining numbers that cannot lift a row to WaitingHits.
	PoolSafe CandidatePool = iota
	// PoolRelaxed means SafeInit had no safe number left and sampled from everything remaining.
	PoolRelaxed
	// PoolDeficient3 holds numbers of rows at 3 hits owned by players not waiting yet.
	PoolDeficient3
	// PoolDeficient2 is the same for rows at 2 hits.
	PoolDeficient2
	// PoolDeficientLow is the same for rows at 0 or 1 hits.
	PoolDeficientLow
	// PoolAny is the WaitingPush fallback over everything remaining.
	PoolAny
	// PoolNatural is NaturalFinish's unrestricted pool.
	PoolNatural
)

func (c CandidatePool) String() string {
	switch c {
	case PoolSafe:
		return "safe"
	case PoolRelaxed:
		return "relaxed"
	case PoolDeficient3:
		return "deficient_3"
	case PoolDeficient2:
		return "deficient_2"
	case PoolDeficientLow:
		return "deficient_low"
	case PoolAny:
		return "any"
	case PoolNatural:
		return "natural"
	default:
		return fmt.Sprintf("CandidatePool(%d)", int(c))
	}
}

// numberSet is a membership table over 1..90.
type numberSet [domain.MaxNumber + 1]bool

// Selector computes the eligible numbers for a stage and samples one.
type Selector struct {
	src   rng.Source
	pool  *Pool
	index *Index
}

// NewSelector binds a selector to a game's pool and index.
func NewSelector(src rng.Source, pool *Pool, index *Index) *Selector {
	return &Selector{src: src, pool: pool, index: index}
}

// Pick chooses the next number for stage. The pool must not be empty.
func (s *Selector) Pick(stage Stage) (int, CandidatePool) {
	switch stage {
	case SafeInit:
		return s.pickSafe()
	case WaitingPush:
		return s.pickPush()
	case NaturalFinish:
		return s.sample(s.pool.Numbers()), PoolNatural
	default:
		panic(fmt.Sprintf("draw: unknown stage %d", int(stage)))
	}
}

func (s *Selector) pickSafe() (int, CandidatePool) {
	var risky numberSet
	s.mark(&risky, s.index.RowsAt(domain.WaitingHits-1))
	s.mark(&risky, s.index.RowsAt(domain.WaitingHits))

	var safe []int
	for _, n := range s.pool.Numbers() {
		if !risky[n] {
			safe = append(safe, n)
		}
	}
	if len(safe) > 0 {
		return s.sample(safe), PoolSafe
	}
	return s.sample(s.pool.Numbers()), PoolRelaxed
}

func (s *Selector) pickPush() (int, CandidatePool) {
	var deficient []int
	for p := 0; p < s.index.Players(); p++ {
		if !s.index.PlayerWaiting(p) {
			deficient = append(deficient, p)
		}
	}

	if len(deficient) > 0 {
		// Numbers that would hand someone Kinh before everyone is waiting.
		var completing numberSet
		s.mark(&completing, s.index.RowsAt(domain.WaitingHits))

		tiers := []struct {
			pool CandidatePool
			hits []int
		}{
			{PoolDeficient3, []int{3}},
			{PoolDeficient2, []int{2}},
			{PoolDeficientLow, []int{1, 0}},
		}
		for _, tier := range tiers {
			var members numberSet
			for _, h := range tier.hits {
				s.mark(&members, s.index.RowsAt(h, deficient...))
			}
			var preferred, all []int
			for _, n := range s.pool.Numbers() {
				if !members[n] {
					continue
				}
				all = append(all, n)
				if !completing[n] {
					preferred = append(preferred, n)
				}
			}
			// Sampling is uniform over the tier minus completing numbers, not over the whole
			// tier. The full tier is only used when every member would complete a row.
			if len(preferred) > 0 {
				return s.sample(preferred), tier.pool
			}
			if len(all) > 0 {
				return s.sample(all), tier.pool
			}
		}
	}
	return s.sample(s.pool.Numbers()), PoolAny
}

func (s *Selector) mark(set *numberSet, rows iter.Seq[int]) {
	for id := range rows {
		for _, n := range s.index.RowNumbers(id) {
			set[n] = true
		}
	}
}

func (s *Selector) sample(candidates []int) int {
	n, ok := Sample(s.src, candidates)
	if !ok {
		panic("draw: sample from empty candidate set")
	}
	return n
}
