package callgen

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennisdiepolder/monti/callstats/internal/aggregator"
	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

func TestGenerateSatisfiesLoader(t *testing.T) {
	for _, p := range []BranchProfile{NorthProfile(), SouthProfile()} {
		t.Run(p.Name, func(t *testing.T) {
			ds, err := NewGenerator(42, zerolog.Nop()).Generate(p)
			require.NoError(t, err)
			require.Equal(t, p.Records, ds.Len())

			var buf bytes.Buffer
			require.NoError(t, loader.Write(&buf, ds, loader.WriteOptions{}))

			back, err := loader.New(zerolog.Nop()).Read(p.Name, &buf)
			require.NoError(t, err)
			assert.Equal(t, p.Records, back.Len())
			assert.Equal(t, 0, back.NormalizedCount())
			assert.Equal(t, len(p.Reps), aggregator.DistinctReps(back.Records))

			for _, r := range back.Records {
				assert.Equal(t, p.Name, r.Branch)
				assert.Equal(t, r.IsIncoming(), r.HasIncomingWait(), "line %d", r.Line)
				if !r.IsIncoming() {
					assert.False(t, r.Abandoned, "line %d", r.Line)
				}
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := NewGenerator(7, zerolog.Nop()).Generate(NorthProfile())
	require.NoError(t, err)
	b, err := NewGenerator(7, zerolog.Nop()).Generate(NorthProfile())
	require.NoError(t, err)
	assert.Equal(t, a.Records, b.Records)

	c, err := NewGenerator(8, zerolog.Nop()).Generate(NorthProfile())
	require.NoError(t, err)
	assert.NotEqual(t, a.Records, c.Records)
}

func TestGenerateRejectsBadProfiles(t *testing.T) {
	g := NewGenerator(1, zerolog.Nop())

	_, err := g.Generate(BranchProfile{Name: "East", Queues: []QueueWeight{{"E", 1}}, Records: 3})
	assert.Error(t, err)

	p := NorthProfile()
	p.Records = -1
	_, err = g.Generate(p)
	assert.Error(t, err)

	p.Records = 0
	ds, err := g.Generate(p)
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestProfile(t *testing.T) {
	north, err := Profile(types.BranchNorth)
	require.NoError(t, err)
	assert.Len(t, north.Reps, 9)

	south, err := Profile(types.BranchSouth)
	require.NoError(t, err)
	assert.Len(t, south.Reps, 11)

	_, err = Profile("East")
	assert.Error(t, err)
}

func TestWeightedChoice(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[weightedChoice(rng, []string{"never", "always"}, []int{0, 1})]++
	}
	assert.Equal(t, 1000, counts["always"])
}

func TestPickQueue(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		seen[pickQueue(rng, []QueueWeight{{"A", 1}, {"B", 1}})] = true
	}
	assert.True(t, seen["A"])
	assert.True(t, seen["B"])
}
