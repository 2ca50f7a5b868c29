package analytics

import (
	"fmt"
	"sort"
)

const (
	consistencyMinSnapshots = 4
	consistencySpread       = 0.5
)

// ConsistencyAlerts reconstructs each topic's accuracy trajectory from
// per-session snapshots. A topic seen in at least four sessions whose
// accuracy swings by 50 points or more is flagged: that volatility usually
// means carelessness under pressure, not a knowledge gap.
//
// Sessions must arrive in chronological order; the reported history keeps
// that order.
func ConsistencyAlerts(sessions []SessionTopics) []ConsistencyAlert {
	type trajectory struct {
		subject    string
		accuracies []float64
	}
	byTopic := make(map[string]*trajectory)
	var order []string

	for _, session := range sessions {
		for _, snap := range session {
			t, ok := byTopic[snap.Topic]
			if !ok {
				t = &trajectory{subject: snap.Subject}
				byTopic[snap.Topic] = t
				order = append(order, snap.Topic)
			}
			t.accuracies = append(t.accuracies, snap.Accuracy)
		}
	}
	sort.Strings(order)

	alerts := make([]ConsistencyAlert, 0)
	for _, topic := range order {
		t := byTopic[topic]
		if len(t.accuracies) < consistencyMinSnapshots {
			continue
		}

		min, max := t.accuracies[0], t.accuracies[0]
		for _, a := range t.accuracies[1:] {
			if a < min {
				min = a
			}
			if a > max {
				max = a
			}
		}
		spread := max - min
		if spread < consistencySpread {
			continue
		}

		history := make([]int, len(t.accuracies))
		for i, a := range t.accuracies {
			history[i] = roundPct(a)
		}

		alerts = append(alerts, ConsistencyAlert{
			Topic:   topic,
			Subject: t.subject,
			Spread:  roundPct(spread),
			History: history,
			Message: fmt.Sprintf("Your %s scores vary wildly (%d%%-%d%%). This suggests careless errors under pressure, not a concept gap.", topic, roundPct(min), roundPct(max)),
		})
	}
	return alerts
}
