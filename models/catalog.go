package models

// Occurrence types.
const (
	TypePothole  = "Pothole"
	TypeLighting = "Lighting"
	TypeTrash    = "Trash"
	TypeFlooding = "Flooding"
	TypeSidewalk = "Sidewalk"
	TypeSignage  = "Signage"
	TypeTree     = "Tree"
	TypeOther    = "Other"
)

// Statuses.
const (
	StatusPending     = "Pending"
	StatusUnderReview = "UnderReview"
	StatusInProgress  = "InProgress"
	StatusResolved    = "Resolved"
	StatusArchived    = "Archived"
)

// Priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// TypeInfo carries rendering hints for a catalog type.
type TypeInfo struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// OccurrenceTypes is the fixed type catalog with display metadata.
var OccurrenceTypes = map[string]TypeInfo{
	TypePothole:  {Color: "#e74c3c", Icon: "road", Label: "Potholes and pavement damage"},
	TypeLighting: {Color: "#f39c12", Icon: "lightbulb", Label: "Public lighting problems"},
	TypeTrash:    {Color: "#27ae60", Icon: "trash", Label: "Trash or debris accumulation"},
	TypeFlooding: {Color: "#3498db", Icon: "water", Label: "Flooding spots"},
	TypeSidewalk: {Color: "#9b59b6", Icon: "shoe-prints", Label: "Sidewalk problems"},
	TypeSignage:  {Color: "#1abc9c", Icon: "signs-post", Label: "Damaged or missing signage"},
	TypeTree:     {Color: "#2d5016", Icon: "tree", Label: "Fallen or hazardous trees"},
	TypeOther:    {Color: "#7f8c8d", Icon: "circle-exclamation", Label: "Other urban problems"},
}

// StatusColors maps each status to its display color.
var StatusColors = map[string]string{
	StatusPending:     "#e74c3c",
	StatusUnderReview: "#f39c12",
	StatusInProgress:  "#3498db",
	StatusResolved:    "#27ae60",
	StatusArchived:    "#7f8c8d",
}

// priorityWeights drives urgency scoring and sorting.
var priorityWeights = map[string]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// MaxPriorityWeight is the weight of the highest priority.
const MaxPriorityWeight = 4

// PriorityWeight returns the numeric weight of a priority. Unknown values
// weigh the same as Medium.
func PriorityWeight(priority string) int {
	if w, ok := priorityWeights[priority]; ok {
		return w
	}
	return priorityWeights[PriorityMedium]
}

// ValidStatus reports whether s belongs to the status catalog.
func ValidStatus(s string) bool {
	_, ok := StatusColors[s]
	return ok
}

// ValidPriority reports whether p belongs to the priority catalog.
func ValidPriority(p string) bool {
	_, ok := priorityWeights[p]
	return ok
}

// NextStatuses returns the automatic transition targets from a status.
// Resolved and Archived are terminal here but stay editable through the
// generic update operation.
func NextStatuses(status string) []string {
	switch status {
	case StatusPending:
		return []string{StatusUnderReview, StatusInProgress, StatusArchived}
	case StatusUnderReview, StatusInProgress:
		return []string{StatusResolved, StatusArchived}
	default:
		return nil
	}
}

// Neighborhoods is the fixed neighborhood catalog. Free text values outside
// the catalog are accepted as-is.
var Neighborhoods = []string{
	"Centro",
	"Vista Alegre",
	"Princesa Isabel",
	"Green Ville",
	"Josino Brito",
	"Liberdade",
	"Bela Vista",
	"Jardim Clodoaldo",
	"Novo Cacoal",
	"Teixeirão",
	"Industrial",
	"Outro",
}
