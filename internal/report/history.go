package report

import (
	"sort"
	"time"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

// HistoryEntry is one administration in a client's test history, with
// the applied_by id already resolved to a display name. Each entry
// carries only its own subscore maps, so instruments with different
// subscore sets render side by side without mixing.
type HistoryEntry struct {
	ID              int                `json:"id"`
	TestCode        string             `json:"testCode"`
	TestName        string             `json:"testName"`
	PatientAge      int                `json:"patientAge"`
	AppliedAt       time.Time          `json:"appliedAt"`
	AppliedBy       string             `json:"appliedBy,omitempty"`
	RawScores       map[string]string  `json:"rawScores"`
	Scores          map[string]*float64 `json:"calculatedScores"`
	Percentiles     map[string]*string `json:"percentiles"`
	Classifications map[string]string  `json:"classifications"`
	Notes           string             `json:"notes,omitempty"`
}

// BuildHistory orders a client's persisted results by administration
// time, most recent first, and resolves administrator names through
// the supplied mapping. Identity lookup itself lives outside the
// engine; only the resolved names cross this boundary.
func BuildHistory(results []models.TestResult, names map[int]string) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(results))
	for _, res := range results {
		entry := HistoryEntry{
			ID:              res.ID,
			TestCode:        res.TestCode,
			TestName:        res.TestName,
			PatientAge:      res.PatientAge,
			AppliedAt:       res.AppliedAt,
			RawScores:       decodeStringMap(res.RawScores),
			Scores:          decodeScoreMap(res.CalculatedScores),
			Percentiles:     decodeStringPtrMap(res.Percentiles),
			Classifications: decodeStringMap(res.Classifications),
		}
		if res.AppliedBy != nil {
			entry.AppliedBy = names[*res.AppliedBy]
		}
		if res.Notes != nil {
			entry.Notes = *res.Notes
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AppliedAt.After(entries[j].AppliedAt)
	})
	return entries
}
