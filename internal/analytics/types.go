// Package analytics derives longitudinal performance reports from a user's
// attempt history. Everything here is a pure function over aggregated input;
// nothing mutates state, so reports are safe to recompute on every request.
package analytics

// Bucket is one aggregation row: a user's attempts grouped by pattern,
// subject and difficulty, with the mean response time for that group.
type Bucket struct {
	Pattern    string
	Subject    string
	Difficulty string
	Total      int
	Correct    int
	AvgTimeMS  float64
}

// DifficultyStats is a per-difficulty sub-breakdown within a pattern.
type DifficultyStats struct {
	Total   int
	Correct int
}

// PatternAggregate merges a pattern's buckets across difficulties. AvgTimeMS
// is weighted by attempt count per bucket, not a naive mean of means.
type PatternAggregate struct {
	Pattern      string
	Subject      string
	Total        int
	Correct      int
	Accuracy     float64
	AvgTimeMS    float64
	ByDifficulty map[string]DifficultyStats
}

// TopicSnapshot is one topic's accuracy within a single completed session.
type TopicSnapshot struct {
	Topic    string
	Subject  string
	Accuracy float64
}

// SessionTopics holds a session's topic snapshots; slices of these arrive in
// chronological session order.
type SessionTopics []TopicSnapshot

// EfficiencyEntry classifies a pattern on the 2×2 speed/accuracy matrix.
type EfficiencyEntry struct {
	Pattern  string `json:"pattern"`
	Subject  string `json:"subject"`
	Accuracy int    `json:"accuracy"`
	AvgTimeS int    `json:"avg_time_s"`
	Attempts int    `json:"attempts"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// RedZoneTopic is a sufficiently-attempted pattern below 50% accuracy.
type RedZoneTopic struct {
	Pattern  string `json:"pattern"`
	Subject  string `json:"subject"`
	Accuracy int    `json:"accuracy"`
	Attempts int    `json:"attempts"`
}

// ReadinessEntry is the weighted accuracy/speed composite for a pattern.
type ReadinessEntry struct {
	Pattern  string `json:"pattern"`
	Subject  string `json:"subject"`
	Score    int    `json:"score"`
	Attempts int    `json:"attempts"`
	Label    string `json:"label"`
}

// ProgressionEntry recommends moving a pattern up or down in difficulty.
type ProgressionEntry struct {
	Pattern        string `json:"pattern"`
	Recommendation string `json:"recommendation"`
	Message        string `json:"message"`
}

// CorrelationInsight links a weak topic to a strong one whose skills should
// transfer.
type CorrelationInsight struct {
	Topic        string `json:"topic"`
	RelatedTopic string `json:"related_topic"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
}

// ConsistencyAlert flags a topic whose per-session accuracy swings widely.
type ConsistencyAlert struct {
	Topic   string `json:"topic"`
	Subject string `json:"subject"`
	Spread  int    `json:"spread"`
	History []int  `json:"history"`
	Message string `json:"message"`
}

// Report is the full analytics payload. It is computed whole or not at all;
// partial reports are never returned.
type Report struct {
	EfficiencyMatrix      []EfficiencyEntry    `json:"efficiency_matrix"`
	RedZoneTopics         []RedZoneTopic       `json:"red_zone_topics"`
	ExamReadiness         []ReadinessEntry     `json:"exam_readiness"`
	DifficultyProgression []ProgressionEntry   `json:"difficulty_progression"`
	TopicCorrelation      []CorrelationInsight `json:"topic_correlation"`
	ConsistencyAlerts     []ConsistencyAlert   `json:"consistency_alerts"`
}
