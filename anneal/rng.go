package anneal

import "math/rand"

// defaultSeed stands in for a zero Options.Seed so the zero value is still
// reproducible.
const defaultSeed int64 = 1

// golden is the SplitMix64 state increment.
const golden = 0x9e3779b97f4a7c15

// streams hands out one generator per restart. Restart 0 draws from the base
// generator; restart k > 0 gets its own generator seeded from the root and k
// alone, so its proposals do not depend on how many draws the other restarts
// consumed.
type streams struct {
	base  *rand.Rand
	root  int64
	ready bool // root is known; otherwise it is drawn from base on first use
}

// newStreams builds the restart generators for o. With a caller-supplied
// Rand, restart 0 sees exactly the sequence a single run would, and the root
// of the other restarts is one draw taken after it.
func newStreams(o Options) *streams {
	if o.Rand != nil {
		return &streams{base: o.Rand}
	}
	seed := o.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	return &streams{base: rand.New(rand.NewSource(seed)), root: seed, ready: true}
}

// restart returns the generator for restart k.
func (s *streams) restart(k int) *rand.Rand {
	if k == 0 {
		return s.base
	}
	if !s.ready {
		s.root, s.ready = s.base.Int63(), true
	}

	return rand.New(rand.NewSource(splitmix(s.root, uint64(k))))
}

// splitmix returns the k-th SplitMix64 output for a generator started at
// root.
func splitmix(root int64, k uint64) int64 {
	z := uint64(root) + k*golden
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return int64(z ^ (z >> 31))
}
