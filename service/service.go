package service

import (
	"errors"
	"fmt"

	"urbanmap/baseline"
	"urbanmap/mapaggr"
	"urbanmap/models"
	"urbanmap/stats"
	"urbanmap/store"

	"github.com/apex/log"
	geojson "github.com/paulmach/go.geojson"
)

// Service is the occurrence engine facade. It owns the two occurrence
// sources and the attachment store, and is constructed once per process and
// injected into consumers.
type Service struct {
	baseline    *baseline.Loader
	reports     *store.ReportStore
	attachments *store.AttachmentStore
}

// New creates the engine over the given collaborators.
func New(loader *baseline.Loader, reports *store.ReportStore, attachments *store.AttachmentStore) *Service {
	return &Service{
		baseline:    loader,
		reports:     reports,
		attachments: attachments,
	}
}

// ErrInvalidRequest marks requests rejected before any write is attempted,
// so callers can tell a caller mistake from a storage failure.
var ErrInvalidRequest = errors.New("invalid request")

// Photo is an uploaded image accompanying a new occurrence.
type Photo struct {
	Filename string
	Data     []byte
}

// FilterArgs narrows a view. Empty fields match everything.
type FilterArgs struct {
	Type         string
	Status       string
	Neighborhood string
	Priority     string
}

// UnifiedView merges both occurrence sources into one normalized collection:
// baseline records first, then user submissions, in insertion order. The two
// sources are never deduplicated against each other. The view is rebuilt on
// every call; there is no caching contract beyond a single request.
func (s *Service) UnifiedView() []models.Occurrence {
	base, err := s.baseline.Load()
	if err != nil {
		log.Errorf("Baseline load failed, continuing with user reports only: %v", err)
		base = []models.Occurrence{}
	}

	view := make([]models.Occurrence, 0, len(base))
	view = append(view, base...)
	view = append(view, s.reports.LoadAll()...)

	for i := range view {
		if view[i].Status == "" {
			view[i].Status = models.StatusPending
		}
		if view[i].Priority == "" {
			view[i].Priority = models.PriorityMedium
		}
	}
	return view
}

// FilterView returns the unified view narrowed by the given filters.
func (s *Service) FilterView(args FilterArgs) []models.Occurrence {
	view := s.UnifiedView()
	filtered := make([]models.Occurrence, 0, len(view))
	for _, occ := range view {
		if args.Type != "" && occ.Type != args.Type {
			continue
		}
		if args.Status != "" && occ.Status != args.Status {
			continue
		}
		if args.Neighborhood != "" && occ.Neighborhood != args.Neighborhood {
			continue
		}
		if args.Priority != "" && occ.Priority != args.Priority {
			continue
		}
		filtered = append(filtered, occ)
	}
	return filtered
}

// Statistics computes the dashboard summary over a fresh unified view.
func (s *Service) Statistics() models.Statistics {
	return stats.Compute(s.UnifiedView())
}

// CreateOccurrence validates and persists a new user-submitted occurrence,
// saving any photos first. An individual photo failure is logged and
// skipped; it does not fail the submission.
func (s *Service) CreateOccurrence(req models.CreateOccurrenceRequest, photos []Photo) (*models.Occurrence, error) {
	if req.Type == "" {
		return nil, fmt.Errorf("%w: occurrence type is required", ErrInvalidRequest)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, fmt.Errorf("%w: occurrence coordinates are required", ErrInvalidRequest)
	}
	priority := req.Priority
	if !models.ValidPriority(priority) {
		priority = models.PriorityMedium
	}

	occ, err := s.reports.Create(store.CreateArgs{
		Type:         req.Type,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Neighborhood: req.Neighborhood,
		Priority:     priority,
		Reporter:     req.Reporter,
	})
	if err != nil {
		return nil, err
	}

	for _, photo := range photos {
		path, err := s.attachments.Save(occ.ID, photo.Filename, photo.Data)
		if err != nil {
			log.Errorf("Failed to save photo %s for occurrence %s: %v", photo.Filename, occ.ID, err)
			continue
		}
		if ok, err := s.reports.AttachPhoto(occ.ID, path); err != nil || !ok {
			log.Errorf("Failed to attach photo %s to occurrence %s: %v", path, occ.ID, err)
			continue
		}
		occ.PhotoPaths = append(occ.PhotoPaths, path)
	}

	return occ, nil
}

// UpdateOccurrence merges admin-editable fields into a user-submitted
// occurrence. Baseline records are immutable; their ids are unknown to the
// report store, so the update reports false.
func (s *Service) UpdateOccurrence(id string, req models.UpdateOccurrenceRequest) (bool, error) {
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, *req.Status)
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return false, fmt.Errorf("%w: unknown priority %q", ErrInvalidRequest, *req.Priority)
	}
	return s.reports.Update(id, store.UpdateFields{
		Status:       req.Status,
		Priority:     req.Priority,
		Description:  req.Description,
		Neighborhood: req.Neighborhood,
	})
}

// VoteOccurrence increments the community vote counter.
func (s *Service) VoteOccurrence(id string) (bool, error) {
	return s.reports.Vote(id)
}

// AddComment appends an entry to an occurrence's interaction history.
func (s *Service) AddComment(id, text, author string) (bool, error) {
	if text == "" {
		return false, fmt.Errorf("%w: comment text is required", ErrInvalidRequest)
	}
	return s.reports.AddComment(id, text, author)
}

// SaveAttachment stores a photo for an existing occurrence and records its
// path on the occurrence. It returns the stored path.
func (s *Service) SaveAttachment(occurrenceID, filename string, data []byte) (string, error) {
	path, err := s.attachments.Save(occurrenceID, filename, data)
	if err != nil {
		return "", err
	}
	if ok, err := s.reports.AttachPhoto(occurrenceID, path); err != nil {
		return "", err
	} else if !ok {
		return "", fmt.Errorf("occurrence %s not found", occurrenceID)
	}
	return path, nil
}

// Points extracts the spatially usable locations from the unified view.
// Records without valid coordinates are excluded here but stay in listings.
func (s *Service) Points() []mapaggr.Point {
	view := s.UnifiedView()
	points := make([]mapaggr.Point, 0, len(view))
	for i := range view {
		occ := &view[i]
		if !occ.HasCoordinates() {
			continue
		}
		points = append(points, mapaggr.Point{
			ID:  occ.ID,
			Lat: *occ.Latitude,
			Lon: *occ.Longitude,
		})
	}
	return points
}

// Clusters buckets the current view into display clusters.
func (s *Service) Clusters(radiusMeters float64) []mapaggr.Cluster {
	return mapaggr.BuildClusters(s.Points(), radiusMeters)
}

// HeatSamples derives heat intensity samples over the current view.
func (s *Service) HeatSamples(radiusMeters float64) []mapaggr.HeatSample {
	return mapaggr.BuildHeatSamples(s.Points(), radiusMeters)
}

// ViewGeoJSON renders the occurrences with valid coordinates as a GeoJSON
// FeatureCollection for map consumers.
func (s *Service) ViewGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, occ := range s.UnifiedView() {
		if !occ.HasCoordinates() {
			continue
		}
		f := geojson.NewPointFeature([]float64{*occ.Longitude, *occ.Latitude})
		f.SetProperty("id", occ.ID)
		f.SetProperty("type", occ.Type)
		f.SetProperty("status", occ.Status)
		f.SetProperty("priority", occ.Priority)
		f.SetProperty("neighborhood", occ.Neighborhood)
		f.SetProperty("votes", occ.Votes)
		f.SetProperty("source", occ.Source)
		f.SetProperty("color", models.OccurrenceTypes[occ.DisplayType()].Color)
		fc.AddFeature(f)
	}
	return fc
}
