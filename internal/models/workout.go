package models

// Difficulty levels as reported by the catalog
const (
	DifficultyBeginner     = 0
	DifficultyIntermediate = 1
	DifficultyAdvanced     = 2
)

// DifficultyLabel returns the display label for a difficulty level.
// Unknown levels map to an empty label.
func DifficultyLabel(difficulty int) string {
	switch difficulty {
	case DifficultyBeginner:
		return "Beginner"
	case DifficultyIntermediate:
		return "Intermediate"
	case DifficultyAdvanced:
		return "Advanced"
	default:
		return ""
	}
}

// Workout is the display-ready projection of a catalog record. It is
// immutable once produced; the routines slice preserves source order.
type Workout struct {
	ID            string    `json:"id"`
	Difficulty    int       `json:"difficulty"`
	Name          string    `json:"name"`
	TotalDuration int       `json:"total_duration"`
	AvatarURL     string    `json:"avatar_url"`
	Routines      []Routine `json:"routines"`
}

// Routine is one segment of a workout with its playable video.
// VideoDuration is in milliseconds.
type Routine struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	VideoDuration int    `json:"video_duration"`
	PlaylistURL   string `json:"playlist_url"`
}
