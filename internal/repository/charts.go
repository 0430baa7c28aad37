package repository

import (
	"encoding/json"
	"time"
)

// TimelineDataPoint is one charted administration: the date and the
// calculated score of a single subscore.
type TimelineDataPoint struct {
	Date  time.Time
	Value float64
}

// GetScoreTimeline extracts a subscore's calculated scores across a
// client's history with one instrument, in administration order.
// Unscored administrations are skipped rather than charted as zero.
func GetScoreTimeline(clientID int, testCode, subscore string) ([]TimelineDataPoint, error) {
	results, err := GetResultsForClientAndTest(clientID, testCode)
	if err != nil {
		return nil, err
	}

	points := make([]TimelineDataPoint, 0, len(results))
	for _, res := range results {
		scores := make(map[string]*float64)
		if len(res.CalculatedScores) > 0 {
			if err := json.Unmarshal(res.CalculatedScores, &scores); err != nil {
				continue
			}
		}
		if v, ok := scores[subscore]; ok && v != nil {
			points = append(points, TimelineDataPoint{Date: res.AppliedAt, Value: *v})
		}
	}
	return points, nil
}
