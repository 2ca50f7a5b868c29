package analytics

import (
	"fmt"
	"math"
	"sort"
)

// Target and threshold constants. The per-question target must stay in sync
// with the session time budget table in the models package.
const (
	targetTimeMS = 36000

	efficiencyMinAttempts  = 5
	accurateThreshold      = 0.65
	redZoneThreshold       = 0.5
	redZoneLimit           = 3
	readinessMinAttempts   = 3
	progressionMinAttempts = 5
	levelUpThreshold       = 0.8
	levelDownThreshold     = 0.4
)

// Efficiency matrix categories.
const (
	CategoryMastered    = "MASTERED"
	CategoryCareless    = "CARELESS"
	CategoryNeedsSpeed  = "NEEDS_SPEED"
	CategoryNeedsReview = "NEEDS_REVIEW"
)

// Difficulty progression recommendations.
const (
	RecommendLevelUp   = "LEVEL_UP"
	RecommendLevelDown = "LEVEL_DOWN"
)

// EfficiencyMatrix classifies each sufficiently-attempted pattern on two
// axes: fast (avg time at or under target) and accurate (accuracy >= 0.65).
func EfficiencyMatrix(aggregates []PatternAggregate) []EfficiencyEntry {
	entries := make([]EfficiencyEntry, 0)
	for _, agg := range aggregates {
		if agg.Total < efficiencyMinAttempts {
			continue
		}
		isFast := agg.AvgTimeMS <= targetTimeMS
		isAccurate := agg.Accuracy >= accurateThreshold

		accPct := roundPct(agg.Accuracy)
		avgS := int(math.Round(agg.AvgTimeMS / 1000))

		var category, message string
		switch {
		case isFast && isAccurate:
			category = CategoryMastered
			message = fmt.Sprintf("Strong in %s. %d%% accuracy at %ds avg.", agg.Pattern, accPct, avgS)
		case isFast && !isAccurate:
			category = CategoryCareless
			message = fmt.Sprintf("You answer %s in %ds but only %d%% correct. Slow down.", agg.Pattern, avgS, accPct)
		case !isFast && isAccurate:
			category = CategoryNeedsSpeed
			message = fmt.Sprintf("%d%% accuracy in %s is great, but %ds per question is too slow.", accPct, agg.Pattern, avgS)
		default:
			category = CategoryNeedsReview
			message = fmt.Sprintf("%s needs concept review. %d%% accuracy at %ds suggests gaps.", agg.Pattern, accPct, avgS)
		}

		entries = append(entries, EfficiencyEntry{
			Pattern:  agg.Pattern,
			Subject:  agg.Subject,
			Accuracy: accPct,
			AvgTimeS: avgS,
			Attempts: agg.Total,
			Category: category,
			Message:  message,
		})
	}
	return entries
}

// RedZone returns the three weakest sufficiently-attempted patterns below
// 50% accuracy, weakest first.
func RedZone(aggregates []PatternAggregate) []RedZoneTopic {
	var weak []PatternAggregate
	for _, agg := range aggregates {
		if agg.Total >= efficiencyMinAttempts && agg.Accuracy < redZoneThreshold {
			weak = append(weak, agg)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Accuracy < weak[j].Accuracy })
	if len(weak) > redZoneLimit {
		weak = weak[:redZoneLimit]
	}

	topics := make([]RedZoneTopic, 0, len(weak))
	for _, agg := range weak {
		topics = append(topics, RedZoneTopic{
			Pattern:  agg.Pattern,
			Subject:  agg.Subject,
			Accuracy: roundPct(agg.Accuracy),
			Attempts: agg.Total,
		})
	}
	return topics
}

// ReadinessScore combines accuracy (60%) with speed relative to target (40%).
// Speed score is 100 at or under target and decays linearly to 0 at double
// the target; it never goes negative.
func ReadinessScore(accuracy, avgTimeMS float64) int {
	accuracyScore := accuracy * 100
	speedRatio := avgTimeMS / targetTimeMS
	speedScore := math.Max(0, 1-math.Max(0, speedRatio-1)) * 100
	return int(math.Round(accuracyScore*0.6 + math.Min(speedScore, 100)*0.4))
}

// ReadinessLabel maps a 0-100 score to its band.
func ReadinessLabel(score int) string {
	switch {
	case score >= 80:
		return "Exam Ready"
	case score >= 60:
		return "Almost There"
	case score >= 40:
		return "Improving"
	case score >= 20:
		return "Needs Work"
	default:
		return "Critical"
	}
}

// ExamReadiness scores every pattern with enough attempts to establish a
// baseline, highest first.
func ExamReadiness(aggregates []PatternAggregate) []ReadinessEntry {
	entries := make([]ReadinessEntry, 0)
	for _, agg := range aggregates {
		if agg.Total < readinessMinAttempts {
			continue
		}
		score := ReadinessScore(agg.Accuracy, agg.AvgTimeMS)
		entries = append(entries, ReadinessEntry{
			Pattern:  agg.Pattern,
			Subject:  agg.Subject,
			Score:    score,
			Attempts: agg.Total,
			Label:    ReadinessLabel(score),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	return entries
}

// DifficultyProgression inspects each pattern's MEDIUM bucket and recommends
// moving up at >=80% accuracy or down at <=40%. Patterns in between emit
// nothing.
func DifficultyProgression(aggregates []PatternAggregate) []ProgressionEntry {
	entries := make([]ProgressionEntry, 0)
	for _, agg := range aggregates {
		med, ok := agg.ByDifficulty["MEDIUM"]
		if !ok || med.Total < progressionMinAttempts {
			continue
		}
		acc := float64(med.Correct) / float64(med.Total)
		switch {
		case acc >= levelUpThreshold:
			entries = append(entries, ProgressionEntry{
				Pattern:        agg.Pattern,
				Recommendation: RecommendLevelUp,
				Message:        fmt.Sprintf("You're crushing Medium %s (%d%%). Ready for Hard.", agg.Pattern, roundPct(acc)),
			})
		case acc <= levelDownThreshold:
			entries = append(entries, ProgressionEntry{
				Pattern:        agg.Pattern,
				Recommendation: RecommendLevelDown,
				Message:        fmt.Sprintf("Medium %s is tough right now (%d%%). Drop to Easy to build basics.", agg.Pattern, roundPct(acc)),
			})
		}
	}
	return entries
}

func roundPct(f float64) int {
	return int(math.Round(f * 100))
}
