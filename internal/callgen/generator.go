// Package callgen generates synthetic branch call logs.
package callgen

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/dennisdiepolder/monti/callstats/internal/loader"
	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// QueueWeight pairs a queue with a relative weight for distribution.
type QueueWeight struct {
	Queue  string
	Weight float64
}

// BranchProfile describes the call log of one branch
type BranchProfile struct {
	Name    string
	Reps    []string
	Queues  []QueueWeight
	Records int
}

// NorthProfile mirrors the North branch: 9 reps on queues A and B
func NorthProfile() BranchProfile {
	return BranchProfile{
		Name:    types.BranchNorth,
		Reps:    []string{"Brent", "Cam", "Todd", "Duke", "Joe", "Lilly", "Amanda", "Andy", "Xander"},
		Queues:  []QueueWeight{{Queue: "A", Weight: 2}, {Queue: "B", Weight: 3}},
		Records: 245,
	}
}

// SouthProfile mirrors the South branch: 11 reps on queues C and D
func SouthProfile() BranchProfile {
	return BranchProfile{
		Name:    types.BranchSouth,
		Reps:    []string{"Kate", "Eric", "Susan", "Alice", "Sandy", "Karl", "Randy", "George", "Helga", "Josh", "Sharon"},
		Queues:  []QueueWeight{{Queue: "C", Weight: 1}, {Queue: "D", Weight: 1}},
		Records: 314,
	}
}

// Profile returns the built-in profile for a branch name
func Profile(name string) (BranchProfile, error) {
	switch name {
	case types.BranchNorth:
		return NorthProfile(), nil
	case types.BranchSouth:
		return SouthProfile(), nil
	default:
		return BranchProfile{}, fmt.Errorf("unknown branch %q", name)
	}
}

// Distribution: 10% Complaint, 35% Sales Support, 55% Product Support
var purposeWeights = []int{10, 35, 55}

// Distribution: 80% Incoming, 20% Outgoing
var directionWeights = []int{80, 20}

// Calls peak around lunch
var blockWeights = []int{5, 10, 15, 12, 8, 9, 9, 8, 6}

// Generator creates fake call records
type Generator struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator creates a new call record generator
func NewGenerator(seed int64, logger zerolog.Logger) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger.With().Str("component", "callgen").Logger(),
	}
}

// Generate creates p.Records records. Every record satisfies the loader's
// invariants: only incoming calls carry a wait, and every value is in range.
func (g *Generator) Generate(p BranchProfile) (*types.Dataset, error) {
	if len(p.Reps) == 0 || len(p.Queues) == 0 {
		return nil, fmt.Errorf("branch %q needs at least one rep and one queue", p.Name)
	}
	if p.Records < 0 {
		return nil, fmt.Errorf("invalid record count %d", p.Records)
	}

	ds := &types.Dataset{
		Name:    p.Name,
		Header:  append([]string(nil), loader.DefaultHeader...),
		Records: make([]types.CallRecord, p.Records),
	}

	for i := range ds.Records {
		ds.Records[i] = g.record(p, i+2)
	}

	g.logger.Info().
		Str("branch", p.Name).
		Int("records", p.Records).
		Msg("call log generated")
	return ds, nil
}

func (g *Generator) record(p BranchProfile, line int) types.CallRecord {
	purpose := weightedChoice(g.rng, types.AllPurposes, purposeWeights)
	direction := weightedChoice(g.rng, types.AllDirections, directionWeights)

	r := types.CallRecord{
		Branch:          p.Name,
		RepID:           p.Reps[g.rng.Intn(len(p.Reps))],
		Queue:           pickQueue(g.rng, p.Queues),
		Purpose:         purpose,
		Direction:       direction,
		TimeBlock:       weightedChoice(g.rng, types.AllTimeBlocks, blockWeights),
		BusyMinutes:     float64(8 + g.rng.Intn(5)),
		NotReadyMinutes: float64(1 + g.rng.Intn(3)),
		DuringCallWait:  float64(2 + g.rng.Intn(3)),
		Calls:           1,
		Line:            line,
	}

	if r.IsIncoming() {
		r.IncomingWait = types.Float(float64(1 + g.rng.Intn(5)))
		r.Abandoned = g.rng.Float64() < 0.03
	}
	r.LostCall = !r.Abandoned && g.rng.Float64() < 0.02
	if purpose == types.PurposeSalesSupport && !r.Abandoned {
		r.Sale = g.rng.Float64() < 0.3
	}
	return r
}

// weightedChoice selects an item based on weights
func weightedChoice[T any](rng *rand.Rand, items []T, weights []int) T {
	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	choice := rng.Intn(totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if choice < cumulative {
			return items[i]
		}
	}
	return items[0]
}

// pickQueue selects a queue based on the configured weights.
func pickQueue(rng *rand.Rand, queues []QueueWeight) string {
	var total float64
	for _, q := range queues {
		total += q.Weight
	}

	r := rng.Float64() * total
	for _, q := range queues {
		r -= q.Weight
		if r <= 0 {
			return q.Queue
		}
	}
	return queues[len(queues)-1].Queue
}
