package mapaggr

import (
	"math"
	"testing"
)

func TestBuildClusters(t *testing.T) {
	testCases := []struct {
		name         string
		radiusMeters float64
		points       []Point

		expectedCounts []int
	}{
		{
			name:         "two points within radius collapse",
			radiusMeters: 150,
			points: []Point{
				{ID: "a", Lat: -11.4400, Lon: -61.4600},
				{ID: "b", Lat: -11.4405, Lon: -61.4600}, // ~55m away
			},
			expectedCounts: []int{2},
		},
		{
			name:         "two distant points stay separate",
			radiusMeters: 150,
			points: []Point{
				{ID: "a", Lat: -11.4400, Lon: -61.4600},
				{ID: "b", Lat: -11.4900, Lon: -61.4600}, // ~5.5km away
			},
			expectedCounts: []int{1, 1},
		},
		{
			name:         "near pair plus outlier",
			radiusMeters: 150,
			points: []Point{
				{ID: "a", Lat: -11.4400, Lon: -61.4600},
				{ID: "b", Lat: -11.4404, Lon: -61.4601},
				{ID: "c", Lat: -11.3000, Lon: -61.4600},
			},
			expectedCounts: []int{2, 1},
		},
		{
			name:           "no points",
			radiusMeters:   150,
			points:         nil,
			expectedCounts: []int{},
		},
	}

	for _, tc := range testCases {
		clusters := BuildClusters(tc.points, tc.radiusMeters)
		if len(clusters) != len(tc.expectedCounts) {
			t.Errorf("%s: got %d clusters, expected %d", tc.name, len(clusters), len(tc.expectedCounts))
			continue
		}
		for i, c := range clusters {
			if c.Count != tc.expectedCounts[i] {
				t.Errorf("%s: cluster %d has count %d, expected %d", tc.name, i, c.Count, tc.expectedCounts[i])
			}
			if len(c.Points) != c.Count {
				t.Errorf("%s: cluster %d exposes %d constituents for count %d", tc.name, i, len(c.Points), c.Count)
			}
		}
	}
}

func TestClusterExplodeKeepsConstituents(t *testing.T) {
	points := []Point{
		{ID: "a", Lat: -11.4400, Lon: -61.4600},
		{ID: "b", Lat: -11.4405, Lon: -61.4600},
	}

	clusters := BuildClusters(points, 150)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, expected 1", len(clusters))
	}

	ids := map[string]bool{}
	for _, p := range clusters[0].Points {
		ids[p.ID] = true
	}
	if !ids["a"] || !ids["b"] {
		t.Errorf("exploded cluster misses constituents: %v", ids)
	}
}

func TestClusterPinIsCentroid(t *testing.T) {
	points := []Point{
		{ID: "a", Lat: -11.4400, Lon: -61.4600},
		{ID: "b", Lat: -11.4404, Lon: -61.4600},
	}

	clusters := BuildClusters(points, 150)
	if len(clusters) != 1 {
		t.Fatalf("got %d clusters, expected 1", len(clusters))
	}
	if math.Abs(clusters[0].Lat-(-11.4402)) > 1e-4 {
		t.Errorf("cluster pin latitude %v is not near the centroid", clusters[0].Lat)
	}
}

func TestBuildHeatSamples(t *testing.T) {
	points := []Point{
		{ID: "a", Lat: -11.4400, Lon: -61.4600},
		{ID: "b", Lat: -11.4400, Lon: -61.4600}, // coincident with a
		{ID: "c", Lat: -11.2000, Lon: -61.4600}, // far away
	}

	samples := BuildHeatSamples(points, 250)
	if len(samples) != len(points) {
		t.Fatalf("got %d samples, expected %d", len(samples), len(points))
	}

	// The coincident pair reinforces each other; the far point only sees
	// its own contribution.
	if math.Abs(samples[0].Intensity-2.0) > 1e-9 {
		t.Errorf("coincident sample intensity %v, expected 2.0", samples[0].Intensity)
	}
	if math.Abs(samples[2].Intensity-1.0) > 1e-9 {
		t.Errorf("isolated sample intensity %v, expected 1.0", samples[2].Intensity)
	}
}

func TestHeatSampleDecay(t *testing.T) {
	points := []Point{
		{ID: "a", Lat: -11.4400, Lon: -61.4600},
		{ID: "b", Lat: -11.4410, Lon: -61.4600}, // ~110m away, inside the 250m radius
	}

	samples := BuildHeatSamples(points, 250)
	got := samples[0].Intensity
	if got <= 1.0 || got >= 2.0 {
		t.Errorf("neighbor contribution %v should decay to between 0 and 1", got-1.0)
	}
}
