package game

import (
	"errors"
	"math/rand"
)

// ErrEmptyCatalog is returned when a randomizer is configured with no
// piece ids to draw from.
var ErrEmptyCatalog = errors.New("game: piece catalog is empty")

// Randomizer chooses the next piece id. The strategy is picked at
// game construction time and injected into the engine. When created
// with the same seed, two randomizers of the same kind produce
// identical sequences.
type Randomizer interface {
	Next() PieceID
}

// BagRandomizer draws from a bag seeded with one of each of the seven
// ids. When the bag empties it is refilled and reshuffled, so no id
// appears twice within any seven consecutive draws.
type BagRandomizer struct {
	rng *rand.Rand
	bag []PieceID
}

// NewBagRandomizer creates a seeded 7-bag randomizer.
func NewBagRandomizer(seed int64) *BagRandomizer {
	return &BagRandomizer{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next id from the bag, refilling it when empty.
func (b *BagRandomizer) Next() PieceID {
	if len(b.bag) == 0 {
		b.refill()
	}
	id := b.bag[0]
	b.bag = b.bag[1:]
	return id
}

func (b *BagRandomizer) refill() {
	b.bag = AllPieces()
	// Fisher-Yates shuffle
	for i := len(b.bag) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
	}
}

// UniformRandomizer draws each piece independently and uniformly;
// repeats are allowed.
type UniformRandomizer struct {
	rng *rand.Rand
	ids []PieceID
}

// NewUniformRandomizer creates a seeded uniform randomizer over the
// full catalog.
func NewUniformRandomizer(seed int64) *UniformRandomizer {
	u, _ := NewUniformRandomizerFrom(AllPieces(), seed)
	return u
}

// NewUniformRandomizerFrom creates a uniform randomizer over the given
// ids. It fails only when the id list is empty, which indicates a
// misconfigured catalog rather than a game condition.
func NewUniformRandomizerFrom(ids []PieceID, seed int64) (*UniformRandomizer, error) {
	if len(ids) == 0 {
		return nil, ErrEmptyCatalog
	}
	owned := make([]PieceID, len(ids))
	copy(owned, ids)
	return &UniformRandomizer{
		rng: rand.New(rand.NewSource(seed)),
		ids: owned,
	}, nil
}

// Next returns an independent uniform pick across the catalog.
func (u *UniformRandomizer) Next() PieceID {
	return u.ids[u.rng.Intn(len(u.ids))]
}
