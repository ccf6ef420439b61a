package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"

	"distviz/ports"
)

// Adapter implements ports.RNGPort around a single PCG stream. Draws are
// serialised so overlapping HTTP requests advance the stream one at a time.
type Adapter struct {
	seed uint64
	src  *lockedSource
}

var _ ports.RNGPort = (*Adapter)(nil)

// New creates an adapter seeded with seed. A zero seed is replaced by a
// crypto-random one.
func New(seed uint64) (*Adapter, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return &Adapter{
		seed: seed,
		src:  &lockedSource{src: rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)},
	}, nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	s := binary.LittleEndian.Uint64(b[:])
	if s == 0 {
		s = 1
	}
	return s, nil
}

// Source returns the shared, lock-guarded source.
func (a *Adapter) Source() rand.Source {
	return a.src
}

// Seed reports the seed the shared source started from.
func (a *Adapter) Seed() uint64 {
	return a.seed
}

// SeededStream creates an independent deterministic source for a named
// operation. The same name and seed always yield the same stream.
func (a *Adapter) SeededStream(name string, seed uint64) rand.Source {
	return rand.NewPCG(seed, uint64(hashString(name)))
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
