package models

import (
	"time"
)

// Occurrence sources.
const (
	SourceBaseline      = "Baseline"
	SourceUserSubmitted = "UserSubmitted"
)

// Comment is a single entry in an occurrence's interaction history.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Occurrence represents a single reported or catalogued urban problem.
// After ingestion (baseline load or store load) every occurrence carries a
// non-empty Status and Priority; downstream code does not re-check them.
type Occurrence struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Neighborhood string     `json:"neighborhood"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Source       string     `json:"source"`
	SubmittedAt  *time.Time `json:"submitted_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
	Votes        int        `json:"votes"`
	Comments     []Comment  `json:"comments"`
	Reporter     string     `json:"reporter,omitempty"`
	PhotoPaths   []string   `json:"photo_paths"`
}

// HasCoordinates reports whether the occurrence can take part in spatial
// operations. Records without coordinates stay in tabular listings.
func (o *Occurrence) HasCoordinates() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// DisplayType returns the catalog type used for rendering. Unknown values
// fall back to TypeOther; the stored value is kept verbatim.
func (o *Occurrence) DisplayType() string {
	if _, ok := OccurrenceTypes[o.Type]; ok {
		return o.Type
	}
	return TypeOther
}

// CreateOccurrenceRequest is the payload for POST /occurrences.
type CreateOccurrenceRequest struct {
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Neighborhood string   `json:"neighborhood"`
	Priority     string   `json:"priority"`
	Reporter     string   `json:"reporter"`
}

// UpdateOccurrenceRequest carries the admin-editable fields. Nil fields are
// left untouched.
type UpdateOccurrenceRequest struct {
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	Description  *string `json:"description"`
	Neighborhood *string `json:"neighborhood"`
}

// CommentRequest is the payload for POST /occurrences/:id/comments.
type CommentRequest struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// LoginResponse carries the signed admin token.
type LoginResponse struct {
	Token string `json:"token"`
}

// Statistics is the derived dashboard summary over a unified view. It is
// recomputed from scratch on every request, never stored.
type Statistics struct {
	Total           int            `json:"total"`
	ByType          map[string]int `json:"by_type"`
	ByStatus        map[string]int `json:"by_status"`
	ByNeighborhood  map[string]int `json:"by_neighborhood"`
	ByPriority      map[string]int `json:"by_priority"`
	Last7Days       int            `json:"last_7_days"`
	ResolutionRate  float64        `json:"resolution_rate"`
	UrgencyIndex    float64        `json:"urgency_index"`
	PendingCount    int            `json:"pending_count"`
	InProgressCount int            `json:"in_progress_count"`
	ResolvedCount   int            `json:"resolved_count"`
	Timeline        map[string]int `json:"timeline"`
}
