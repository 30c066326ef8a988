package services

import (
	"sort"
	"strings"
	"time"

	"github.com/tida-sports/AcademyBotBack/internal/models"
)

// FormatTimeRanges merges slots whose starts sit exactly one step apart into
// contiguous open ranges and renders them as "06:00 AM - 09:00 AM" spans
// joined with ", ". The slot engine already emits sorted slots, but the input
// is sorted again here rather than trusted.
func FormatTimeRanges(slots []models.FreeSlot, step time.Duration) string {
	if len(slots) == 0 {
		return "No slots"
	}

	sorted := make([]models.FreeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	ranges := make([]string, 0, len(sorted))
	rangeStart := sorted[0].Start
	lastStart := sorted[0].Start

	for _, slot := range sorted[1:] {
		if slot.Start.Sub(lastStart) == step {
			lastStart = slot.Start
			continue
		}
		ranges = append(ranges, renderRange(rangeStart, lastStart.Add(step)))
		rangeStart = slot.Start
		lastStart = slot.Start
	}
	ranges = append(ranges, renderRange(rangeStart, lastStart.Add(step)))

	return strings.Join(ranges, ", ")
}

func renderRange(start, end time.Time) string {
	return start.Format(displayLayout) + " - " + end.Format(displayLayout)
}
