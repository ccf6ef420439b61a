package ports

import (
	"math/rand/v2"
)

// RNGPort provides the process-wide random source consumed by sampling
type RNGPort interface {
	// Source returns the shared source; draws advance it sequentially
	Source() rand.Source

	// Seed reports the seed the source was initialised with
	Seed() uint64

	// SeededStream creates an independent deterministic source for a named operation
	SeededStream(name string, seed uint64) rand.Source
}
