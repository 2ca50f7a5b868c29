package analytics

import (
	"math"
	"testing"
)

func TestMergeBucketsWeightedAverage(t *testing.T) {
	buckets := []Bucket{
		{Pattern: "Percentage", Subject: "QUANT", Difficulty: "EASY", Total: 8, Correct: 6, AvgTimeMS: 20000},
		{Pattern: "Percentage", Subject: "QUANT", Difficulty: "HARD", Total: 2, Correct: 1, AvgTimeMS: 60000},
	}

	merged := MergeBuckets(buckets)
	if len(merged) != 1 {
		t.Fatalf("Expected 1 merged pattern, got %d", len(merged))
	}

	p := merged[0]
	if p.Total != 10 || p.Correct != 7 {
		t.Errorf("Expected 10 total / 7 correct, got %d / %d", p.Total, p.Correct)
	}
	// Weighted by bucket size: (20000*8 + 60000*2) / 10 = 28000, not the
	// naive mean of means (40000).
	if math.Abs(p.AvgTimeMS-28000) > 0.001 {
		t.Errorf("Expected weighted avg 28000, got %.1f", p.AvgTimeMS)
	}
	if math.Abs(p.Accuracy-0.7) > 0.001 {
		t.Errorf("Expected accuracy 0.7, got %.3f", p.Accuracy)
	}

	easy := p.ByDifficulty["EASY"]
	if easy.Total != 8 || easy.Correct != 6 {
		t.Errorf("Expected EASY breakdown 8/6, got %d/%d", easy.Total, easy.Correct)
	}
	hard := p.ByDifficulty["HARD"]
	if hard.Total != 2 || hard.Correct != 1 {
		t.Errorf("Expected HARD breakdown 2/1, got %d/%d", hard.Total, hard.Correct)
	}
}

func TestMergeBucketsDeterministicOrder(t *testing.T) {
	buckets := []Bucket{
		{Pattern: "Series", Subject: "REASONING", Difficulty: "EASY", Total: 1, Correct: 1, AvgTimeMS: 1000},
		{Pattern: "Algebra", Subject: "QUANT", Difficulty: "EASY", Total: 1, Correct: 0, AvgTimeMS: 1000},
		{Pattern: "Percentage", Subject: "QUANT", Difficulty: "EASY", Total: 1, Correct: 1, AvgTimeMS: 1000},
	}

	merged := MergeBuckets(buckets)
	want := []string{"Algebra", "Percentage", "Series"}
	if len(merged) != len(want) {
		t.Fatalf("Expected %d patterns, got %d", len(want), len(merged))
	}
	for i, pattern := range want {
		if merged[i].Pattern != pattern {
			t.Errorf("Position %d: expected %s, got %s", i, pattern, merged[i].Pattern)
		}
	}
}

func TestComputeEmptyInput(t *testing.T) {
	report := Compute(nil, nil)
	if report == nil {
		t.Fatal("Expected a report for empty input")
	}
	if len(report.EfficiencyMatrix) != 0 || len(report.RedZoneTopics) != 0 ||
		len(report.ExamReadiness) != 0 || len(report.DifficultyProgression) != 0 ||
		len(report.TopicCorrelation) != 0 || len(report.ConsistencyAlerts) != 0 {
		t.Errorf("Expected all sections empty, got %+v", report)
	}
}
