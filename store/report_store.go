package store

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"urbanmap/models"

	"github.com/apex/log"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ReportStore is the durable repository of user-submitted occurrences. The
// backing state is a single JSON document holding the full record array;
// every mutation is a read-full, mutate, write-full cycle. The cycle runs
// under a file lock plus an in-process mutex, so concurrent mutations on
// different records cannot silently drop each other, and the final write is
// a temp-file rename so readers see either the old or the new document,
// never a partial one.
type ReportStore struct {
	path string
	mu   sync.Mutex
	fl   *flock.Flock
}

// NewReportStore creates a store backed by the JSON document at path.
func NewReportStore(path string) *ReportStore {
	return &ReportStore{
		path: path,
		fl:   flock.New(path + ".lock"),
	}
}

// CreateArgs carries the caller-settable fields of a new occurrence.
type CreateArgs struct {
	Type         string
	Description  string
	Latitude     *float64
	Longitude    *float64
	Neighborhood string
	Priority     string
	Reporter     string
	PhotoPaths   []string
}

// UpdateFields carries the mutable fields of an update. Nil fields are left
// untouched.
type UpdateFields struct {
	Status       *string
	Priority     *string
	Description  *string
	Neighborhood *string
}

// LoadAll returns every stored occurrence. A missing or unreadable document
// fails open to an empty collection; the failure is logged, not raised.
func (s *ReportStore) LoadAll() []models.Occurrence {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorf("Failed to read reports document %s: %v", s.path, err)
		}
		return []models.Occurrence{}
	}

	var occurrences []models.Occurrence
	if err := json.Unmarshal(data, &occurrences); err != nil {
		log.Errorf("Failed to parse reports document %s: %v", s.path, err)
		return []models.Occurrence{}
	}

	for i := range occurrences {
		normalize(&occurrences[i])
	}
	return occurrences
}

// Create synthesizes a new occurrence, appends it and rewrites the backing
// document. The id combines a second-resolution timestamp with a random
// suffix so same-instant submissions cannot collide.
func (s *ReportStore) Create(args CreateArgs) (*models.Occurrence, error) {
	now := storeNow()
	priority := args.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	photos := args.PhotoPaths
	if photos == nil {
		photos = []string{}
	}

	occ := models.Occurrence{
		ID:           newOccurrenceID(now),
		Type:         args.Type,
		Description:  args.Description,
		Latitude:     args.Latitude,
		Longitude:    args.Longitude,
		Neighborhood: args.Neighborhood,
		Status:       models.StatusPending,
		Priority:     priority,
		Source:       models.SourceUserSubmitted,
		SubmittedAt:  &now,
		UpdatedAt:    &now,
		Votes:        0,
		Comments:     []models.Comment{},
		Reporter:     args.Reporter,
		PhotoPaths:   photos,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking reports document: %w", err)
	}
	defer s.fl.Unlock()

	occurrences := s.LoadAll()
	occurrences = append(occurrences, occ)
	if err := s.save(occurrences); err != nil {
		return nil, err
	}
	return &occ, nil
}

// Update merges fields into the occurrence with the given id and advances
// UpdatedAt. It returns false when the id is not found; baseline ids are
// never found here because baseline records live outside this store.
func (s *ReportStore) Update(id string, fields UpdateFields) (bool, error) {
	return s.mutate(id, func(occ *models.Occurrence) {
		if fields.Status != nil {
			occ.Status = *fields.Status
		}
		if fields.Priority != nil {
			occ.Priority = *fields.Priority
		}
		if fields.Description != nil {
			occ.Description = *fields.Description
		}
		if fields.Neighborhood != nil {
			occ.Neighborhood = *fields.Neighborhood
		}
	})
}

// Vote increments the vote counter of the occurrence with the given id.
func (s *ReportStore) Vote(id string) (bool, error) {
	return s.mutate(id, func(occ *models.Occurrence) {
		occ.Votes++
	})
}

// AttachPhoto records a stored photo path on the occurrence.
func (s *ReportStore) AttachPhoto(id, path string) (bool, error) {
	return s.mutate(id, func(occ *models.Occurrence) {
		occ.PhotoPaths = append(occ.PhotoPaths, path)
	})
}

// AddComment appends a comment stamped with the current time.
func (s *ReportStore) AddComment(id, text, author string) (bool, error) {
	now := storeNow()
	return s.mutate(id, func(occ *models.Occurrence) {
		occ.Comments = append(occ.Comments, models.Comment{
			Author:    author,
			Text:      text,
			Timestamp: now,
		})
	})
}

// mutate runs the read-modify-write cycle for a single record under the
// store locks. It returns false without writing when the id is unknown.
func (s *ReportStore) mutate(id string, fn func(*models.Occurrence)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fl.Lock(); err != nil {
		return false, fmt.Errorf("locking reports document: %w", err)
	}
	defer s.fl.Unlock()

	occurrences := s.LoadAll()
	for i := range occurrences {
		if occurrences[i].ID != id {
			continue
		}
		fn(&occurrences[i])
		now := storeNow()
		occurrences[i].UpdatedAt = &now
		if err := s.save(occurrences); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// save rewrites the backing document in full. The write goes to a temp file
// in the same directory followed by a rename, which is atomic at the OS
// level on the filesystems we deploy on.
func (s *ReportStore) save(occurrences []models.Occurrence) error {
	data, err := json.MarshalIndent(occurrences, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reports document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".reports-*.json")
	if err != nil {
		return fmt.Errorf("creating temp reports document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing reports document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing reports document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing reports document: %w", err)
	}
	return nil
}

// normalize fills the fields older documents may omit, so records read back
// from disk satisfy the same invariants as freshly created ones.
func normalize(occ *models.Occurrence) {
	occ.Source = models.SourceUserSubmitted
	if occ.Status == "" {
		occ.Status = models.StatusPending
	}
	if occ.Priority == "" {
		occ.Priority = models.PriorityMedium
	}
	if occ.Comments == nil {
		occ.Comments = []models.Comment{}
	}
	if occ.PhotoPaths == nil {
		occ.PhotoPaths = []string{}
	}
}

// storeNow stamps records with second resolution in UTC so a persisted
// occurrence reads back exactly equal to the one returned at creation.
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func newOccurrenceID(now time.Time) string {
	u := uuid.New()
	return now.Format("20060102150405") + "_" + hex.EncodeToString(u[:])[:6]
}
