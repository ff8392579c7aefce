package aggregator

import (
	"time"

	"github.com/dennisdiepolder/monti/callstats/internal/types"
)

// CompanyScope names the combined view over every branch
const CompanyScope = "Company"

// Options controls how a Summary is computed
type Options struct {
	ServiceLevelThresholdSecs float64
	RunID                     string
	GeneratedAt               time.Time
}

// BranchSummary holds the KPIs of one branch or of the whole company
type BranchSummary struct {
	Name            string               `json:"name" yaml:"name"`
	Records         int                  `json:"records" yaml:"records"`
	Normalized      int                  `json:"normalized" yaml:"normalized"`
	Reps            int                  `json:"reps" yaml:"reps"`
	Means           TimeMeans            `json:"means" yaml:"means"`
	AbandonmentRate Stat                 `json:"abandonmentRate" yaml:"abandonmentRate"`
	LostCallRate    Stat                 `json:"lostCallRate" yaml:"lostCallRate"`
	SalesConversion Stat                 `json:"salesConversion" yaml:"salesConversion"`
	ServiceLevel    ServiceLevelSnapshot `json:"serviceLevel" yaml:"serviceLevel"`
	TimeBlocks      []TimeBlockCount     `json:"timeBlocks" yaml:"timeBlocks"`
}

// Summary is everything a report renders
type Summary struct {
	RunID            string                  `json:"runId" yaml:"runId"`
	GeneratedAt      time.Time               `json:"generatedAt" yaml:"generatedAt"`
	Branches         []BranchSummary         `json:"branches" yaml:"branches"`
	Company          BranchSummary           `json:"company" yaml:"company"`
	QueueAbandonment []GroupStat             `json:"queueAbandonment" yaml:"queueAbandonment"`
	QueueMeans       []GroupMeans            `json:"queueMeans" yaml:"queueMeans"`
	RepMeans         []GroupMeans            `json:"repMeans" yaml:"repMeans"`
	Reps             []RepPerformance        `json:"reps" yaml:"reps"`
	Leaderboard      []RepTotal              `json:"leaderboard" yaml:"leaderboard"`
	PurposeDirection []PurposeDirectionCount `json:"purposeDirection" yaml:"purposeDirection"`
	TimeBlockPurpose []TimeBlockPurposeCount `json:"timeBlockPurpose" yaml:"timeBlockPurpose"`
	Alerts           []types.Alert           `json:"alerts" yaml:"alerts"`
}

// Summarize computes per-branch and company KPIs over the given datasets.
// Branch rows are named after the dataset, whatever its Branch column holds.
// Nil datasets are skipped. Alerts are left empty for the caller to fill.
func Summarize(datasets []*types.Dataset, opts Options) Summary {
	threshold := opts.ServiceLevelThresholdSecs
	if threshold <= 0 {
		threshold = DefaultThresholdSecs
	}

	s := Summary{
		RunID:       opts.RunID,
		GeneratedAt: opts.GeneratedAt,
		Alerts:      []types.Alert{},
	}

	var all []types.CallRecord
	normalized := 0
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		s.Branches = append(s.Branches, summarizeBranch(ds.Name, ds.Records, ds.NormalizedCount(), threshold))
		all = append(all, ds.Records...)
		normalized += ds.NormalizedCount()
	}

	s.Company = summarizeBranch(CompanyScope, all, normalized, threshold)
	s.QueueAbandonment = AbandonmentBy(all, ByQueue)
	s.QueueMeans = MeansBy(all, ByQueue)
	s.RepMeans = MeansBy(all, ByBranchRep)
	s.Reps = RepPerformanceOf(all, threshold)
	s.Leaderboard = RepLeaderboard(all)
	s.PurposeDirection = PurposeDirection(all)
	s.TimeBlockPurpose = TimeBlockPurpose(all)
	return s
}

// Branch returns the summary with the given name, or the company summary for
// CompanyScope
func (s Summary) Branch(name string) (BranchSummary, bool) {
	if name == CompanyScope {
		return s.Company, true
	}
	for _, b := range s.Branches {
		if b.Name == name {
			return b, true
		}
	}
	return BranchSummary{}, false
}

func summarizeBranch(name string, records []types.CallRecord, normalized int, threshold float64) BranchSummary {
	return BranchSummary{
		Name:            name,
		Records:         len(records),
		Normalized:      normalized,
		Reps:            DistinctReps(records),
		Means:           Means(records),
		AbandonmentRate: AbandonmentRate(records),
		LostCallRate:    LostCallRate(records),
		SalesConversion: SalesConversion(records),
		ServiceLevel:    track(records, threshold).Snapshot(),
		TimeBlocks:      CallsByTimeBlock(records),
	}
}
