package models

// Subjects a sprint can be configured for.
const (
	SubjectQuant     = "QUANT"
	SubjectReasoning = "REASONING"
)

// Difficulty levels. MIXED pulls from the whole pool.
const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
	DifficultyMixed  = "MIXED"
)

// Session statuses. COMPLETED and ABANDONED are terminal.
const (
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusAbandoned  = "ABANDONED"
)

// DifficultyTimeSeconds is the per-question allowance used to compute a
// sprint's total time budget. The analytics target below must stay in sync
// with these numbers: both sides score speed against the same clock.
var DifficultyTimeSeconds = map[string]int{
	DifficultyEasy:   40,
	DifficultyMedium: 30,
	DifficultyHard:   25,
	DifficultyMixed:  30,
}

// TargetTimeMS is the per-question target used by the efficiency matrix and
// exam readiness scoring.
const TargetTimeMS = 36000

// MinValidSessionTimeMS marks completed sessions below this total time as
// statistically invalid for analytics.
const MinValidSessionTimeMS = 5000

// TopicAll disables topic filtering in question selection.
const TopicAll = "ALL"

// OptionSkipped is the selected-option marker for a skipped question. A skip
// is recorded as an incorrect attempt so skipped questions still count
// against accuracy in analytics.
const OptionSkipped = "SKIPPED"

// ValidSubject reports whether s is a known subject.
func ValidSubject(s string) bool {
	return s == SubjectQuant || s == SubjectReasoning
}

// ValidDifficulty reports whether d is a known difficulty.
func ValidDifficulty(d string) bool {
	_, ok := DifficultyTimeSeconds[d]
	return ok
}

// TimeBudgetMS returns the total time budget for a sprint of count questions
// at the given difficulty.
func TimeBudgetMS(difficulty string, count int) int64 {
	perQ, ok := DifficultyTimeSeconds[difficulty]
	if !ok {
		perQ = DifficultyTimeSeconds[DifficultyMixed]
	}
	return int64(count) * int64(perQ) * 1000
}
