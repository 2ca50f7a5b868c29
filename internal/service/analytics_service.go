package service

import (
	"context"
	"fmt"

	"sprint-service/internal/analytics"
	"sprint-service/internal/repository"
)

// AnalyticsService assembles the six-part performance report. Reads never
// block writers; a submission racing a read simply shows up on the next
// request.
type AnalyticsService struct {
	Sessions *repository.SessionRepository
	Attempts *repository.AttemptRepository
}

func NewAnalyticsService(sessions *repository.SessionRepository, attempts *repository.AttemptRepository) *AnalyticsService {
	return &AnalyticsService{Sessions: sessions, Attempts: attempts}
}

// Report computes the full analytics payload for a user. Any failure aborts
// the whole report; partial results are never returned.
func (s *AnalyticsService) Report(ctx context.Context, userID string) (*analytics.Report, error) {
	invalidIDs, err := s.Sessions.InvalidSessionIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find invalid sessions: %w", err)
	}

	rows, err := s.Attempts.AggregateBuckets(ctx, userID, invalidIDs)
	if err != nil {
		return nil, fmt.Errorf("aggregate attempts: %w", err)
	}
	buckets := make([]analytics.Bucket, len(rows))
	for i, r := range rows {
		buckets[i] = analytics.Bucket{
			Pattern:    r.Pattern,
			Subject:    r.Subject,
			Difficulty: r.Difficulty,
			Total:      r.Total,
			Correct:    r.Correct,
			AvgTimeMS:  r.AvgTimeMS,
		}
	}

	validSessions, err := s.Sessions.ValidCompletedSessions(ctx, userID, invalidIDs)
	if err != nil {
		return nil, fmt.Errorf("find completed sessions: %w", err)
	}
	snapshots := make([]analytics.SessionTopics, 0, len(validSessions))
	for _, sess := range validSessions {
		var topics analytics.SessionTopics
		for _, tp := range sess.TopicPerformance {
			if tp.Total == 0 {
				continue
			}
			topics = append(topics, analytics.TopicSnapshot{
				Topic:    tp.Topic,
				Subject:  tp.Subject,
				Accuracy: tp.Accuracy,
			})
		}
		if len(topics) > 0 {
			snapshots = append(snapshots, topics)
		}
	}

	return analytics.Compute(analytics.MergeBuckets(buckets), snapshots), nil
}
