// Package stats derives dashboard statistics from a unified occurrence view.
// Everything here is a pure function of its input; nothing is stored.
package stats

import (
	"time"

	"urbanmap/models"

	"github.com/shopspring/decimal"
)

// Compute builds the full statistics summary over the given view.
func Compute(view []models.Occurrence) models.Statistics {
	return compute(view, time.Now())
}

func compute(view []models.Occurrence, now time.Time) models.Statistics {
	s := models.Statistics{
		Total:          len(view),
		ByType:         map[string]int{},
		ByStatus:       map[string]int{},
		ByNeighborhood: map[string]int{},
		ByPriority:     map[string]int{},
		Timeline:       map[string]int{},
	}

	weekAgo := now.AddDate(0, 0, -7)
	weightSum := 0

	for i := range view {
		occ := &view[i]
		if occ.Type != "" {
			s.ByType[occ.Type]++
		}
		s.ByStatus[occ.Status]++
		if occ.Neighborhood != "" {
			s.ByNeighborhood[occ.Neighborhood]++
		}
		s.ByPriority[occ.Priority]++
		weightSum += models.PriorityWeight(occ.Priority)

		// Records without a parseable timestamp count toward the total but
		// stay out of the recency window and the timeline.
		if occ.SubmittedAt != nil {
			if !occ.SubmittedAt.Before(weekAgo) && !occ.SubmittedAt.After(now) {
				s.Last7Days++
			}
			s.Timeline[occ.SubmittedAt.Format("2006-01-02")]++
		}
	}

	s.PendingCount = s.ByStatus[models.StatusPending]
	s.InProgressCount = s.ByStatus[models.StatusInProgress]
	s.ResolvedCount = s.ByStatus[models.StatusResolved]

	if s.Total > 0 {
		s.ResolutionRate = roundPercent(float64(s.ResolvedCount) / float64(s.Total) * 100)
		s.UrgencyIndex = roundPercent(float64(weightSum) / float64(s.Total*models.MaxPriorityWeight) * 100)
	}

	return s
}

// roundPercent rounds to one decimal place.
func roundPercent(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
