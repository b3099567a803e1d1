package baseline

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"urbanmap/models"

	"github.com/apex/log"
)

// Loader reads the immutable pre-seeded occurrence dataset from a CSV file.
// The dataset is loaded on every read operation; nothing here is cached.
type Loader struct {
	path string
}

// NewLoader creates a baseline loader for the given CSV path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// dateLayouts are tried in order when parsing the baseline date column.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// Load reads and normalizes the baseline dataset. A missing file is not an
// error: the loader fails open to an empty collection. Individual bad rows
// are skipped; the rest of the load still succeeds.
func (l *Loader) Load() ([]models.Occurrence, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Occurrence{}, nil
		}
		log.Errorf("Failed to open baseline CSV %s: %v", l.path, err)
		return []models.Occurrence{}, nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Errorf("Failed to read baseline CSV header: %v", err)
		return []models.Occurrence{}, nil
	}
	cols := normalizeHeader(header)

	occurrences := make([]models.Occurrence, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warnf("Skipping malformed baseline row: %v", err)
			continue
		}
		occurrences = append(occurrences, rowToOccurrence(row, cols))
	}
	assignMissingIDs(occurrences)

	return occurrences, nil
}

// assignMissingIDs synthesizes ids for rows whose id column was empty,
// starting past the largest numeric id already present in the dataset so a
// partially populated id column cannot collide with a synthesized one.
func assignMissingIDs(occurrences []models.Occurrence) {
	next := 1
	for i := range occurrences {
		if n, err := strconv.Atoi(occurrences[i].ID); err == nil && n >= next {
			next = n + 1
		}
	}
	for i := range occurrences {
		if occurrences[i].ID == "" {
			occurrences[i].ID = strconv.Itoa(next)
			next++
		}
	}
}

// normalizeHeader lowercases and trims column names and resolves known
// aliases, so the loader accepts header variations across dataset exports.
func normalizeHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case "tipo_ocorrencia", "tipo_problema":
			name = "tipo"
		}
		cols[name] = i
	}
	return cols
}

func rowToOccurrence(row []string, cols map[string]int) models.Occurrence {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	occ := models.Occurrence{
		ID:           field("id"),
		Type:         field("tipo"),
		Description:  field("descricao"),
		Neighborhood: field("bairro"),
		Status:       field("status"),
		Priority:     field("prioridade"),
		Source:       models.SourceBaseline,
		Comments:     []models.Comment{},
		PhotoPaths:   []string{},
	}

	if occ.Status == "" {
		occ.Status = models.StatusPending
	}
	if occ.Priority == "" {
		occ.Priority = models.PriorityMedium
	}

	if lat, err := strconv.ParseFloat(field("latitude"), 64); err == nil {
		occ.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(field("longitude"), 64); err == nil {
		occ.Longitude = &lon
	}

	// Unparsable dates become an absent date rather than failing the row.
	if raw := field("data"); raw != "" {
		if ts, ok := parseDate(raw); ok {
			occ.SubmittedAt = &ts
			occ.UpdatedAt = &ts
		}
	}

	return occ
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
