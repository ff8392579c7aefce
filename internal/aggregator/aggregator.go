package aggregator

import (
	"sort"

	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// KeyFunc selects the grouping key of a record
type KeyFunc func(types.CallRecord) string

var (
	ByRep    KeyFunc = func(r types.CallRecord) string { return r.RepID }
	ByBranch KeyFunc = func(r types.CallRecord) string { return r.Branch }
	ByQueue  KeyFunc = func(r types.CallRecord) string { return r.Queue }

	// ByBranchRep keeps reps of different branches apart
	ByBranchRep KeyFunc = func(r types.CallRecord) string { return r.Branch + "/" + r.RepID }
)

// TimeMeans holds the mean of each time column
type TimeMeans struct {
	BusyMinutes     Stat `json:"busyMinutes" yaml:"busyMinutes"`
	NotReadyMinutes Stat `json:"notReadyMinutes" yaml:"notReadyMinutes"`
	IncomingWait    Stat `json:"incomingWait" yaml:"incomingWait"`
	DuringCallWait  Stat `json:"duringCallWait" yaml:"duringCallWait"`
}

// GroupMeans is TimeMeans for one group
type GroupMeans struct {
	Key     string    `json:"key" yaml:"key"`
	Records int       `json:"records" yaml:"records"`
	Means   TimeMeans `json:"means" yaml:"means"`
}

// GroupStat is a single statistic for one group
type GroupStat struct {
	Key     string `json:"key" yaml:"key"`
	Records int    `json:"records" yaml:"records"`
	Stat    Stat   `json:"stat" yaml:"stat"`
}

// TimeBlockCount is the number of records tagged with a time block
type TimeBlockCount struct {
	Block types.TimeBlock `json:"block" yaml:"block"`
	Count int             `json:"count" yaml:"count"`
}

// PurposeDirectionCount splits the records of a call purpose by direction
type PurposeDirectionCount struct {
	Purpose  types.CallPurpose `json:"purpose" yaml:"purpose"`
	Incoming int               `json:"incoming" yaml:"incoming"`
	Outgoing int               `json:"outgoing" yaml:"outgoing"`
}

// TimeBlockPurposeCount splits the records of a (time block, purpose) pair by direction
type TimeBlockPurposeCount struct {
	Block    types.TimeBlock   `json:"block" yaml:"block"`
	Purpose  types.CallPurpose `json:"purpose" yaml:"purpose"`
	Incoming int               `json:"incoming" yaml:"incoming"`
	Outgoing int               `json:"outgoing" yaml:"outgoing"`
}

// RepTotal sums the Calls column for one rep
type RepTotal struct {
	Branch  string `json:"branch" yaml:"branch"`
	RepID   string `json:"repId" yaml:"repId"`
	Records int    `json:"records" yaml:"records"`
	Calls   int    `json:"calls" yaml:"calls"`
}

// RepPerformance holds the service KPIs of one rep
type RepPerformance struct {
	Branch               string `json:"branch" yaml:"branch"`
	RepID                string `json:"repId" yaml:"repId"`
	IncomingCalls        int    `json:"incomingCalls" yaml:"incomingCalls"`
	ServiceLevel         Stat   `json:"serviceLevel" yaml:"serviceLevel"`
	AverageSpeedOfAnswer Stat   `json:"averageSpeedOfAnswer" yaml:"averageSpeedOfAnswer"`
}

// DistinctReps returns the number of distinct rep identifiers
func DistinctReps(records []types.CallRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.RepID] = struct{}{}
	}
	return len(seen)
}

// Means computes the mean of every time column. Records without an incoming
// wait are left out of the incoming wait mean.
func Means(records []types.CallRecord) TimeMeans {
	var busy, notReady, wait, during float64
	waitCount := 0

	for _, r := range records {
		busy += r.BusyMinutes
		notReady += r.NotReadyMinutes
		during += r.DuringCallWait
		if r.IncomingWait != nil {
			wait += *r.IncomingWait
			waitCount++
		}
	}

	n := len(records)
	return TimeMeans{
		BusyMinutes:     MeanOf(busy, n),
		NotReadyMinutes: MeanOf(notReady, n),
		IncomingWait:    MeanOf(wait, waitCount),
		DuringCallWait:  MeanOf(during, n),
	}
}

// MeansBy computes Means per group, sorted by key
func MeansBy(records []types.CallRecord, key KeyFunc) []GroupMeans {
	keys, groups := groupBy(records, key)
	out := make([]GroupMeans, 0, len(keys))
	for _, k := range keys {
		out = append(out, GroupMeans{
			Key:     k,
			Records: len(groups[k]),
			Means:   Means(groups[k]),
		})
	}
	return out
}

// CallsByTimeBlock counts records per time block. All nine blocks are
// returned, ordered by descending count with ties in day order.
func CallsByTimeBlock(records []types.CallRecord) []TimeBlockCount {
	counts := make(map[types.TimeBlock]int, len(types.AllTimeBlocks))
	for _, r := range records {
		counts[r.TimeBlock]++
	}

	out := make([]TimeBlockCount, 0, len(types.AllTimeBlocks))
	for _, b := range types.AllTimeBlocks {
		out = append(out, TimeBlockCount{Block: b, Count: counts[b]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Block.Order() < out[j].Block.Order()
	})
	return out
}

// AbandonmentRate returns abandoned records / all records
func AbandonmentRate(records []types.CallRecord) Stat {
	abandoned := 0
	for _, r := range records {
		if r.Abandoned {
			abandoned++
		}
	}
	return Ratio(abandoned, len(records))
}

// LostCallRate returns the fraction of records flagged as lost calls
func LostCallRate(records []types.CallRecord) Stat {
	lost := 0
	for _, r := range records {
		if r.LostCall {
			lost++
		}
	}
	return Ratio(lost, len(records))
}

// SalesConversion returns the fraction of Sales Support records that ended in
// a sale
func SalesConversion(records []types.CallRecord) Stat {
	support, sales := 0, 0
	for _, r := range records {
		if r.Purpose != types.PurposeSalesSupport {
			continue
		}
		support++
		if r.Sale {
			sales++
		}
	}
	return Ratio(sales, support)
}

// AbandonmentBy computes AbandonmentRate per group, sorted by key
func AbandonmentBy(records []types.CallRecord, key KeyFunc) []GroupStat {
	return statBy(records, key, AbandonmentRate)
}

// ServiceLevel returns the fraction of incoming calls answered within
// thresholdSecs. Outgoing calls are excluded; incoming calls without a wait
// value stay in the denominator.
func ServiceLevel(records []types.CallRecord, thresholdSecs float64) Stat {
	return track(records, thresholdSecs).CurrentSL()
}

// ServiceLevelBy computes ServiceLevel per group, sorted by key
func ServiceLevelBy(records []types.CallRecord, key KeyFunc, thresholdSecs float64) []GroupStat {
	return statBy(records, key, func(rs []types.CallRecord) Stat {
		return ServiceLevel(rs, thresholdSecs)
	})
}

// AverageSpeedOfAnswer returns the mean incoming wait over records that carry one
func AverageSpeedOfAnswer(records []types.CallRecord) Stat {
	return track(records, DefaultThresholdSecs).AverageSpeedOfAnswer()
}

// ASABy computes AverageSpeedOfAnswer per group, sorted by key
func ASABy(records []types.CallRecord, key KeyFunc) []GroupStat {
	return statBy(records, key, AverageSpeedOfAnswer)
}

// RepLeaderboard sums the Calls column per branch and rep, highest first
func RepLeaderboard(records []types.CallRecord) []RepTotal {
	index := make(map[string]int)
	var out []RepTotal
	for _, r := range records {
		k := ByBranchRep(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, RepTotal{Branch: r.Branch, RepID: r.RepID})
		}
		out[i].Records++
		out[i].Calls += r.Calls
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Calls != out[j].Calls {
			return out[i].Calls > out[j].Calls
		}
		if out[i].Branch != out[j].Branch {
			return out[i].Branch < out[j].Branch
		}
		return out[i].RepID < out[j].RepID
	})
	return out
}

// RepPerformanceOf computes service level and speed of answer per branch and
// rep, sorted by branch then rep
func RepPerformanceOf(records []types.CallRecord, thresholdSecs float64) []RepPerformance {
	keys, groups := groupBy(records, ByBranchRep)
	out := make([]RepPerformance, 0, len(keys))
	for _, k := range keys {
		rs := groups[k]
		sl := track(rs, thresholdSecs)
		out = append(out, RepPerformance{
			Branch:               rs[0].Branch,
			RepID:                rs[0].RepID,
			IncomingCalls:        sl.TotalIncoming,
			ServiceLevel:         sl.CurrentSL(),
			AverageSpeedOfAnswer: sl.AverageSpeedOfAnswer(),
		})
	}
	return out
}

// PurposeDirection counts incoming and outgoing records per call purpose
func PurposeDirection(records []types.CallRecord) []PurposeDirectionCount {
	out := make([]PurposeDirectionCount, len(types.AllPurposes))
	pos := make(map[types.CallPurpose]int, len(types.AllPurposes))
	for i, p := range types.AllPurposes {
		out[i].Purpose = p
		pos[p] = i
	}

	for _, r := range records {
		i, ok := pos[r.Purpose]
		if !ok {
			continue
		}
		if r.IsIncoming() {
			out[i].Incoming++
		} else {
			out[i].Outgoing++
		}
	}
	return out
}

// TimeBlockPurpose counts records per time block and purpose, split by
// direction, in day order then purpose order
func TimeBlockPurpose(records []types.CallRecord) []TimeBlockPurposeCount {
	type cell struct {
		block   types.TimeBlock
		purpose types.CallPurpose
	}
	counts := make(map[cell]*TimeBlockPurposeCount)
	out := make([]TimeBlockPurposeCount, 0, len(types.AllTimeBlocks)*len(types.AllPurposes))
	for _, b := range types.AllTimeBlocks {
		for _, p := range types.AllPurposes {
			out = append(out, TimeBlockPurposeCount{Block: b, Purpose: p})
		}
	}
	for i := range out {
		counts[cell{out[i].Block, out[i].Purpose}] = &out[i]
	}

	for _, r := range records {
		c, ok := counts[cell{r.TimeBlock, r.Purpose}]
		if !ok {
			continue
		}
		if r.IsIncoming() {
			c.Incoming++
		} else {
			c.Outgoing++
		}
	}
	return out
}

func track(records []types.CallRecord, thresholdSecs float64) *SLTracker {
	sl := NewSLTracker(thresholdSecs)
	for _, r := range records {
		sl.Record(r)
	}
	return sl
}

func statBy(records []types.CallRecord, key KeyFunc, fn func([]types.CallRecord) Stat) []GroupStat {
	keys, groups := groupBy(records, key)
	out := make([]GroupStat, 0, len(keys))
	for _, k := range keys {
		out = append(out, GroupStat{
			Key:     k,
			Records: len(groups[k]),
			Stat:    fn(groups[k]),
		})
	}
	return out
}

// groupBy partitions records by key and returns the sorted keys
func groupBy(records []types.CallRecord, key KeyFunc) ([]string, map[string][]types.CallRecord) {
	groups := make(map[string][]types.CallRecord)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}
