package domain

import "strconv"

// Stats is an aggregate view over every task currently in the store.
type Stats struct {
	TotalTasks     int              `json:"total_tasks"`
	CompletedTasks int              `json:"completed_tasks"`
	PendingTasks   int              `json:"pending_tasks"`
	CompletionRate float64          `json:"completion_rate"`
	ByPriority     map[Priority]int `json:"by_priority"`
}

// NewPriorityCounts returns a count map with every priority present and zeroed.
func NewPriorityCounts() map[Priority]int {
	counts := make(map[Priority]int, 4)
	for _, p := range AllPriorities() {
		counts[p] = 0
	}
	return counts
}

// NewStats derives pending count and completion rate from the raw counts.
// The rate is a percentage rounded to two decimals, halves to even, and is 0
// for an empty store.
// A nil byPriority is replaced with zeroed counts.
func NewStats(total, completed int, byPriority map[Priority]int) *Stats {
	if byPriority == nil {
		byPriority = NewPriorityCounts()
	}

	var rate float64
	if total > 0 {
		rate = roundHalfEven2(float64(completed) / float64(total) * 100)
	}

	return &Stats{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   total - completed,
		CompletionRate: rate,
		ByPriority:     byPriority,
	}
}

// StatsFromTasks aggregates the given tasks.
func StatsFromTasks(tasks []*Task) *Stats {
	counts := NewPriorityCounts()
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
		counts[t.Priority]++
	}
	return NewStats(len(tasks), completed, counts)
}

// roundHalfEven2 rounds x to two decimals. Formatting rounds on the exact
// binary value, so only true ties go to the even digit.
func roundHalfEven2(x float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 2, 64), 64)
	return r
}
