package analytics

import (
	"strconv"
	"strings"
)

// correlationRule links a prerequisite topic to one that builds on it. The
// message template takes {strongAcc}, {weakAcc} and {weak} placeholders.
type correlationRule struct {
	Strong  string
	Weak    string
	Message string
}

// correlationRules is static domain configuration, not a rule engine. A rule
// fires only when both topics have baseline data, the strong topic is genuinely
// strong and the weak one genuinely weak.
var correlationRules = []correlationRule{
	{
		Strong:  "Percentage",
		Weak:    "Profit and Loss",
		Message: "P&L builds on Percentage concepts. Your Percentage is strong ({strongAcc}%), so the {weak} gap ({weakAcc}%) is likely about problem patterns, not math ability.",
	},
	{
		Strong:  "Ratio and Proportion",
		Weak:    "Mixture and Alligation",
		Message: "Mixtures rely on Ratio concepts. You're great at Ratios ({strongAcc}%), so focus on the specific Mixture setup steps to improve your {weakAcc}%.",
	},
	{
		Strong:  "Time and Work",
		Weak:    "Pipes and Cistern",
		Message: "Pipes & Cisterns is identical math to Time & Work. Just remember leaks are negative work! Transfer your {strongAcc}% T&W skill to fix your {weakAcc}% P&C score.",
	},
}

const (
	correlationMinAttempts = 3
	strongThreshold        = 0.7
	weakThreshold          = 0.4
)

// TopicCorrelation fires each rule whose strong topic sits at or above 70%
// accuracy while its weak counterpart sits at or below 40%, both with at
// least three attempts.
func TopicCorrelation(aggregates []PatternAggregate) []CorrelationInsight {
	byPattern := make(map[string]PatternAggregate, len(aggregates))
	for _, agg := range aggregates {
		byPattern[agg.Pattern] = agg
	}

	insights := make([]CorrelationInsight, 0)
	for _, rule := range correlationRules {
		strong, okS := byPattern[rule.Strong]
		weak, okW := byPattern[rule.Weak]
		if !okS || !okW {
			continue
		}
		if strong.Total < correlationMinAttempts || weak.Total < correlationMinAttempts {
			continue
		}
		if strong.Accuracy < strongThreshold || weak.Accuracy > weakThreshold {
			continue
		}

		msg := rule.Message
		msg = strings.ReplaceAll(msg, "{strongAcc}", strconv.Itoa(roundPct(strong.Accuracy)))
		msg = strings.ReplaceAll(msg, "{weak}", rule.Weak)
		msg = strings.ReplaceAll(msg, "{weakAcc}", strconv.Itoa(roundPct(weak.Accuracy)))

		insights = append(insights, CorrelationInsight{
			Topic:        rule.Weak,
			RelatedTopic: rule.Strong,
			Subject:      strong.Subject,
			Message:      msg,
		})
	}
	return insights
}
