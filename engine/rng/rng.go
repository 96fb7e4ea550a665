// Package rng provides the seeded random source every game system draws from:
// uniform integers, dice, weighted selection and shuffling.
package rng

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRange is returned when min > max.
	ErrInvalidRange = errors.New("invalid range")
	// ErrInvalidDiceSpec is returned for dice notation other than "<count>d<sides>".
	ErrInvalidDiceSpec = errors.New("invalid dice spec")
)

// countingSource counts draws from the underlying source so that the exact
// stream position can be saved and restored.
type countingSource struct {
	src rand.Source64
	n   int64
}

func (c *countingSource) Int63() int64 {
	c.n++
	return c.src.Int63()
}

func (c *countingSource) Uint64() uint64 {
	c.n++
	return c.src.Uint64()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
	c.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw from the source, enabling save/restore.
type RNG struct {
	seed int64
	src  *countingSource
	rand *rand.Rand
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	src := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &RNG{
		seed: seed,
		src:  src,
		rand: rand.New(src),
	}
}

// Restore creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for save/load.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	return r
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of source draws made since creation.
func (r *RNG) Position() int64 {
	return r.src.n
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	return r.rand.Intn(sides) + 1
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.rand.Float64() < p
}

// RandomInt returns a uniform integer in [min, max] inclusive.
func (r *RNG) RandomInt(min, max int) (int, error) {
	if min > max {
		return 0, fmt.Errorf("%w: %d > %d", ErrInvalidRange, min, max)
	}
	return min + r.rand.Intn(max-min+1), nil
}

// Between is RandomInt for callers whose bounds are constants.
// It panics if min > max.
func (r *RNG) Between(min, max int) int {
	n, err := r.RandomInt(min, max)
	if err != nil {
		panic("rng: Between precondition violated: " + err.Error())
	}
	return n
}

// Read fills p with random bytes. It lets the RNG back deterministic UUIDs.
func (r *RNG) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 7 {
		v := r.rand.Int63()
		for j := 0; j < 7 && i+j < len(p); j++ {
			p[i+j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}

// ParseDice splits "<count>d<sides>" into its parts.
func ParseDice(spec string) (count, sides int, err error) {
	c, s, ok := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), "d")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDiceSpec, spec)
	}
	count, err = strconv.Atoi(c)
	if err != nil || count < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDiceSpec, spec)
	}
	sides, err = strconv.Atoi(s)
	if err != nil || sides < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidDiceSpec, spec)
	}
	return count, sides, nil
}

// RollDice rolls dice in "<count>d<sides>" notation and returns the sum.
func (r *RNG) RollDice(spec string) (int, error) {
	count, sides, err := ParseDice(spec)
	if err != nil {
		return 0, err
	}
	total := 0
	for i := 0; i < count; i++ {
		total += r.Roll(sides)
	}
	return total, nil
}

// MustRoll is RollDice for dice specs that come from trusted tables.
func (r *RNG) MustRoll(spec string) int {
	n, err := r.RollDice(spec)
	if err != nil {
		panic("rng: MustRoll precondition violated: " + err.Error())
	}
	return n
}

// WeightedIndex returns an index chosen with probability proportional to its
// weight. Negative weights count as zero; if every weight is zero the choice
// is uniform. Returns -1 for an empty slice.
func (r *RNG) WeightedIndex(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return r.rand.Intn(len(weights))
	}
	roll := r.rand.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	// Float rounding can leave roll just above the final sum.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Weighted pairs a candidate with its selection weight.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedRandom selects one candidate weight-proportionally. The bool is
// false only when items is empty.
func WeightedRandom[T any](r *RNG, items []Weighted[T]) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.WeightedIndex(weightsOf(items))].Item, true
}

// WeightedRandomMultiple draws count distinct candidates without replacement.
// Each draw removes the chosen candidate from the pool, so the next draw is
// weighted over what remains. If count >= len(items) every item is returned
// in shuffled order.
func WeightedRandomMultiple[T any](r *RNG, items []Weighted[T], count int) []T {
	if len(items) == 0 || count <= 0 {
		return []T{}
	}
	if count >= len(items) {
		all := make([]T, len(items))
		for i, w := range items {
			all[i] = w.Item
		}
		return Shuffle(r, all)
	}

	pool := make([]Weighted[T], len(items))
	copy(pool, items)
	result := make([]T, 0, count)
	for i := 0; i < count; i++ {
		idx := r.WeightedIndex(weightsOf(pool))
		result = append(result, pool[idx].Item)
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	return result
}

// Shuffle returns a Fisher–Yates shuffled copy of seq. seq is not modified.
func Shuffle[T any](r *RNG, seq []T) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	for i := len(out) - 1; i > 0; i-- {
		j := r.rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice.
func Pick[T any](r *RNG, seq []T) T {
	var zero T
	if len(seq) == 0 {
		return zero
	}
	return seq[r.rand.Intn(len(seq))]
}

func weightsOf[T any](items []Weighted[T]) []float64 {
	weights := make([]float64, len(items))
	for i, w := range items {
		weights[i] = w.Weight
	}
	return weights
}
