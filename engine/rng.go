package engine

// Rand is a mulberry32 generator. Its entire state is a single uint32 so it
// can be stored in GameState and round-trip through the canonical encoding.
// Multiplication wraps mod 2^32, which keeps results identical on every
// platform.
type Rand struct {
	state uint32
}

// NewRand returns a generator positioned at state. Zero is a valid seed.
func NewRand(state uint32) *Rand { return &Rand{state: state} }

// State returns the internal state for persisting.
func (r *Rand) State() uint32 { return r.state }

// Uint32 advances the generator and returns the next value.
func (r *Rand) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Intn returns a value in [0, n). n <= 0 yields 0 without advancing.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint32() % uint32(n))
}

// Shuffle permutes n elements with Fisher-Yates, walking from the back.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
