package rng

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_FixedSeedIsReproducible(t *testing.T) {
	a, err := New(42)
	require.NoError(t, err)
	b, err := New(42)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), a.Seed())
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Source().Uint64(), b.Source().Uint64())
	}
}

func TestAdapter_ZeroSeedIsReplaced(t *testing.T) {
	a, err := New(0)
	require.NoError(t, err)
	assert.NotZero(t, a.Seed())
}

func TestAdapter_SeededStreamsAreNamed(t *testing.T) {
	a, err := New(1)
	require.NoError(t, err)

	x := a.SeededStream("samples", 7).Uint64()
	y := a.SeededStream("samples", 7).Uint64()
	z := a.SeededStream("histogram", 7).Uint64()
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
}

func TestAdapter_ConcurrentDraws(t *testing.T) {
	a, err := New(3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				a.Source().Uint64()
			}
		}()
	}
	wg.Wait()
}
