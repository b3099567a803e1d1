package stats

import (
	"testing"
	"time"

	"urbanmap/models"

	"github.com/stretchr/testify/assert"
)

func occ(typ, status, priority, neighborhood string, submitted *time.Time) models.Occurrence {
	return models.Occurrence{
		Type:         typ,
		Status:       status,
		Priority:     priority,
		Neighborhood: neighborhood,
		SubmittedAt:  submitted,
	}
}

func TestComputeEmptyView(t *testing.T) {
	s := Compute(nil)

	assert.Equal(t, 0, s.Total)
	assert.Empty(t, s.ByType)
	assert.Empty(t, s.ByStatus)
	assert.Empty(t, s.ByNeighborhood)
	assert.Empty(t, s.ByPriority)
	assert.Equal(t, 0, s.Last7Days)
	assert.Equal(t, 0.0, s.ResolutionRate)
	assert.Equal(t, 0.0, s.UrgencyIndex)
}

func TestComputeTwoSourceScenario(t *testing.T) {
	// One baseline pothole plus one resolved trash report.
	view := []models.Occurrence{
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", nil),
		occ("Lixo", models.StatusResolved, models.PriorityMedium, "Liberdade", nil),
	}

	s := Compute(view)

	assert.Equal(t, 2, s.Total)
	assert.Equal(t, map[string]int{models.StatusPending: 1, models.StatusResolved: 1}, s.ByStatus)
	assert.Equal(t, map[string]int{"Buraco": 1, "Lixo": 1}, s.ByType)
	assert.Equal(t, 50.0, s.ResolutionRate)
}

func TestComputeCountsEveryDistinctValue(t *testing.T) {
	// Values outside the fixed catalogs still get counted.
	view := []models.Occurrence{
		occ("SomethingElse", "WeirdStatus", models.PriorityLow, "Nowhere", nil),
	}

	s := Compute(view)

	assert.Equal(t, 1, s.ByType["SomethingElse"])
	assert.Equal(t, 1, s.ByStatus["WeirdStatus"])
	assert.Equal(t, 1, s.ByNeighborhood["Nowhere"])
}

func TestComputeLast7Days(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -3)
	old := now.AddDate(0, 0, -10)
	future := now.Add(24 * time.Hour)

	view := []models.Occurrence{
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", &recent),
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", &old),
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", &future),
		// Dateless records count in Total but not in the recency window.
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", nil),
	}

	s := compute(view, now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Last7Days)
	assert.Equal(t, 1, s.Timeline[recent.Format("2006-01-02")])
}

func TestComputeUrgencyIndex(t *testing.T) {
	testCases := []struct {
		name       string
		priorities []string
		expected   float64
	}{
		{
			name:       "all critical",
			priorities: []string{models.PriorityCritical, models.PriorityCritical},
			expected:   100.0,
		},
		{
			name:       "all low",
			priorities: []string{models.PriorityLow, models.PriorityLow},
			expected:   25.0,
		},
		{
			name:       "mixed",
			priorities: []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityCritical},
			// (1+2+3+4) / (4*4) * 100
			expected: 62.5,
		},
		{
			name:       "one third each rounds to one decimal",
			priorities: []string{models.PriorityLow, models.PriorityLow, models.PriorityCritical},
			// (1+1+4) / (3*4) * 100 = 50.0
			expected: 50.0,
		},
	}

	for _, tc := range testCases {
		view := make([]models.Occurrence, 0, len(tc.priorities))
		for _, p := range tc.priorities {
			view = append(view, occ("Buraco", models.StatusPending, p, "Centro", nil))
		}
		s := Compute(view)
		assert.Equal(t, tc.expected, s.UrgencyIndex, tc.name)
	}
}

func TestComputeResolutionRateRounding(t *testing.T) {
	view := []models.Occurrence{
		occ("Buraco", models.StatusResolved, models.PriorityMedium, "Centro", nil),
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", nil),
		occ("Buraco", models.StatusPending, models.PriorityMedium, "Centro", nil),
	}

	s := Compute(view)

	// 1/3 of the view resolved: 33.333... rounds to one decimal place.
	assert.Equal(t, 33.3, s.ResolutionRate)
	assert.Equal(t, 1, s.ResolvedCount)
	assert.Equal(t, 2, s.PendingCount)
}
