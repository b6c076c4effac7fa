package analytics

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"chatter-trainer/internal/storage"
)

// DailyStats summarizes the sessions finished on one day.
type DailyStats struct {
	Date          string                  `json:"date"`
	TotalSessions int                     `json:"total_sessions"`
	AverageScore  float64                 `json:"average_score"`
	BestScore     int                     `json:"best_score"`
	WorstScore    int                     `json:"worst_score"`
	Trainees      map[string]TraineeStats `json:"trainees"`
}

// TraineeStats contains per-trainee figures for the day.
type TraineeStats struct {
	Name       string `json:"name"`
	Sessions   int    `json:"sessions"`
	TotalScore int    `json:"total_score"`
	BestScore  int    `json:"best_score"`
}

func (t TraineeStats) AverageScore() float64 {
	if t.Sessions == 0 {
		return 0
	}
	return float64(t.TotalScore) / float64(t.Sessions)
}

// AnalyzeDay aggregates records whose timestamp falls on targetDate's calendar
// day in targetDate's location.
func AnalyzeDay(records []storage.Record, targetDate time.Time) *DailyStats {
	startOfDay := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, targetDate.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &DailyStats{
		Date:     startOfDay.Format("2006-01-02"),
		Trainees: make(map[string]TraineeStats),
	}

	total := 0
	for _, rec := range records {
		if rec.Timestamp.Before(startOfDay) || !rec.Timestamp.Before(endOfDay) {
			continue
		}

		if stats.TotalSessions == 0 || rec.Score > stats.BestScore {
			stats.BestScore = rec.Score
		}
		if stats.TotalSessions == 0 || rec.Score < stats.WorstScore {
			stats.WorstScore = rec.Score
		}
		stats.TotalSessions++
		total += rec.Score

		name := rec.TraineeName
		if name == "" {
			name = "Unnamed"
		}
		ts, ok := stats.Trainees[name]
		if !ok {
			ts = TraineeStats{Name: name}
		}
		if ts.Sessions == 0 || rec.Score > ts.BestScore {
			ts.BestScore = rec.Score
		}
		ts.Sessions++
		ts.TotalScore += rec.Score
		stats.Trainees[name] = ts
	}

	if stats.TotalSessions > 0 {
		stats.AverageScore = float64(total) / float64(stats.TotalSessions)
	}
	return stats
}

// Summary renders the stats as a plain-text email body.
func (ds *DailyStats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Training sessions for %s\n\n", ds.Date)
	fmt.Fprintf(&b, "Sessions completed: %d\n", ds.TotalSessions)
	if ds.TotalSessions == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "Average score: %.1f/100\n", ds.AverageScore)
	fmt.Fprintf(&b, "Best score: %d/100\n", ds.BestScore)
	fmt.Fprintf(&b, "Lowest score: %d/100\n\n", ds.WorstScore)

	names := make([]string, 0, len(ds.Trainees))
	for name := range ds.Trainees {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(&b, "Trainees (%d):\n", len(names))
	for _, name := range names {
		ts := ds.Trainees[name]
		fmt.Fprintf(&b, "- %s: %d session(s), average %.1f, best %d\n", name, ts.Sessions, ts.AverageScore(), ts.BestScore)
	}
	return b.String()
}

func (ds *DailyStats) ToJSON() (string, error) {
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
