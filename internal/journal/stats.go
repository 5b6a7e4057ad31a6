package journal

import "journal/internal/store"

// MoodStats aggregates the analyzed moods of a snapshot.
type MoodStats struct {
	Entries  int   // total entries in the snapshot
	Analyzed int   // entries carrying a mood
	Average  float64
	Best     int
	Worst    int
	Moods    []int // in entry order, for the trend sparkline
}

// Stats computes mood statistics over the given entries. Analyzed is
// zero when nothing has a mood yet; Average/Best/Worst are only
// meaningful then.
func Stats(entries []store.Entry) MoodStats {
	s := MoodStats{Entries: len(entries)}

	sum := 0
	for _, e := range entries {
		if e.Mood == nil {
			continue
		}
		m := *e.Mood
		if s.Analyzed == 0 {
			s.Best, s.Worst = m, m
		} else {
			if m > s.Best {
				s.Best = m
			}
			if m < s.Worst {
				s.Worst = m
			}
		}
		s.Analyzed++
		sum += m
		s.Moods = append(s.Moods, m)
	}
	if s.Analyzed > 0 {
		s.Average = float64(sum) / float64(s.Analyzed)
	}
	return s
}
