package analytics

import "sort"

// MergeBuckets re-groups difficulty-level buckets by pattern alone, keeping
// the difficulty breakdown as a sub-structure. The merged average time is
// weighted by each bucket's attempt count. Output is sorted by subject then
// pattern so downstream reports are deterministic.
func MergeBuckets(buckets []Bucket) []PatternAggregate {
	index := make(map[string]int)
	totalTime := make(map[string]float64)
	var merged []PatternAggregate

	for _, b := range buckets {
		i, ok := index[b.Pattern]
		if !ok {
			i = len(merged)
			index[b.Pattern] = i
			merged = append(merged, PatternAggregate{
				Pattern:      b.Pattern,
				Subject:      b.Subject,
				ByDifficulty: make(map[string]DifficultyStats),
			})
		}
		agg := &merged[i]
		agg.Total += b.Total
		agg.Correct += b.Correct
		totalTime[b.Pattern] += b.AvgTimeMS * float64(b.Total)

		ds := agg.ByDifficulty[b.Difficulty]
		ds.Total += b.Total
		ds.Correct += b.Correct
		agg.ByDifficulty[b.Difficulty] = ds
	}

	for i := range merged {
		if merged[i].Total > 0 {
			merged[i].Accuracy = float64(merged[i].Correct) / float64(merged[i].Total)
			merged[i].AvgTimeMS = totalTime[merged[i].Pattern] / float64(merged[i].Total)
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Subject != merged[j].Subject {
			return merged[i].Subject < merged[j].Subject
		}
		return merged[i].Pattern < merged[j].Pattern
	})
	return merged
}

// Compute derives the full report from merged aggregates and the ordered
// per-session topic snapshots.
func Compute(aggregates []PatternAggregate, sessions []SessionTopics) *Report {
	return &Report{
		EfficiencyMatrix:      EfficiencyMatrix(aggregates),
		RedZoneTopics:         RedZone(aggregates),
		ExamReadiness:         ExamReadiness(aggregates),
		DifficultyProgression: DifficultyProgression(aggregates),
		TopicCorrelation:      TopicCorrelation(aggregates),
		ConsistencyAlerts:     ConsistencyAlerts(sessions),
	}
}
