// Package mapaggr buckets occurrence coordinates for map display: nearby
// points collapse into cluster markers and point density becomes heat
// intensity samples. Both derivations are recomputed per view and never
// persisted.
package mapaggr

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371010.0

// Point is a single occurrence location.
type Point struct {
	ID  string  `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Cluster is a screen-space grouping of nearby points. Points holds the
// constituents so the UI can explode the marker back into its members.
type Cluster struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Count  int     `json:"count"`
	Points []Point `json:"points"`
}

// HeatSample is a derived intensity value at a location.
type HeatSample struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Intensity float64 `json:"intensity"`
}

type clusterUnit struct {
	sum    r3.Vector
	points []Point
}

func (u *clusterUnit) pin() s2.Point {
	return s2.Point{Vector: u.sum.Normalize()}
}

// clusterAggregator groups points whose distance to an existing cluster pin
// is below a fixed radius. The pin is the centroid of the members and moves
// as points join.
type clusterAggregator struct {
	radius s1.Angle
	units  []*clusterUnit
}

// NewClusterAggregator creates an aggregator with the given grouping radius.
func NewClusterAggregator(radiusMeters float64) *clusterAggregator {
	return &clusterAggregator{
		radius: s1.Angle(radiusMeters / earthRadiusMeters),
	}
}

// AddPoint assigns the point to the nearest cluster within the radius, or
// opens a new cluster when none is close enough.
func (a *clusterAggregator) AddPoint(p Point) {
	pt := s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))

	var best *clusterUnit
	bestDist := a.radius
	for _, unit := range a.units {
		d := pt.Distance(unit.pin())
		if d <= bestDist {
			best = unit
			bestDist = d
		}
	}

	if best == nil {
		a.units = append(a.units, &clusterUnit{
			sum:    pt.Vector,
			points: []Point{p},
		})
		return
	}
	best.sum = best.sum.Add(pt.Vector)
	best.points = append(best.points, p)
}

// ToArray materializes the clusters with centroid pins and member counts.
func (a *clusterAggregator) ToArray() []Cluster {
	clusters := make([]Cluster, 0, len(a.units))
	for _, unit := range a.units {
		ll := s2.LatLngFromPoint(unit.pin())
		clusters = append(clusters, Cluster{
			Lat:    ll.Lat.Degrees(),
			Lon:    ll.Lng.Degrees(),
			Count:  len(unit.points),
			Points: unit.points,
		})
	}
	return clusters
}

// BuildClusters groups the points with the given radius threshold.
func BuildClusters(points []Point, radiusMeters float64) []Cluster {
	a := NewClusterAggregator(radiusMeters)
	for _, p := range points {
		a.AddPoint(p)
	}
	return a.ToArray()
}

// BuildHeatSamples derives one intensity sample per point. Every point
// contributes a Gaussian decay of unit intensity into its fixed-radius
// neighborhood; overlapping neighborhoods sum. Rasterization belongs to the
// rendering collaborator, not here.
func BuildHeatSamples(points []Point, radiusMeters float64) []HeatSample {
	pts := make([]s2.Point, len(points))
	for i, p := range points {
		pts[i] = s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon))
	}

	cutoff := s1.Angle(radiusMeters / earthRadiusMeters)
	sigma := radiusMeters / 2

	samples := make([]HeatSample, 0, len(points))
	for i, p := range points {
		intensity := 0.0
		for j := range points {
			d := pts[i].Distance(pts[j])
			if d > cutoff {
				continue
			}
			meters := d.Radians() * earthRadiusMeters
			intensity += math.Exp(-(meters * meters) / (2 * sigma * sigma))
		}
		samples = append(samples, HeatSample{
			Lat:       p.Lat,
			Lon:       p.Lon,
			Intensity: intensity,
		})
	}
	return samples
}
