package engine

import "hash/fnv"

// Rand is a xorshift64 generator. It is a plain value stored inside GameState,
// so copying a state copies the generator position with it and replaying the
// same moves from the same state reproduces the same shuffles.
type Rand struct {
	State uint64
}

// NewRand seeds a generator from a string seed via FNV-1a.
func NewRand(seed string) Rand {
	h := fnv.New64a()
	h.Write([]byte(seed))
	x := h.Sum64()
	if x == 0 {
		x = 1 // xorshift can't start at 0
	}
	return Rand{State: x}
}

func (r *Rand) next64() uint64 {
	x := r.State
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.State = x
	return x
}

// Next returns a float in [0, 1).
func (r *Rand) Next() float64 {
	return float64(r.next64()>>11) / (1 << 53)
}

// Intn returns an int in [0, n).
func (r *Rand) Intn(n int) int {
	return int(r.Next() * float64(n))
}

// Shuffle returns a Fisher-Yates shuffled copy of cards.
func (r *Rand) Shuffle(cards []string) []string {
	out := make([]string, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
