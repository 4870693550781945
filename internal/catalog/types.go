package catalog

// RawPage is the catalog response envelope. Only Data is consumed by
// the feed; Links and Meta are decoded for completeness.
type RawPage struct {
	Data  []RawWorkout `json:"data"`
	Links PageLinks    `json:"links"`
	Meta  PageMeta     `json:"meta"`
}

// PageLinks holds the pagination links of a catalog page
type PageLinks struct {
	First string `json:"first"`
	Last  string `json:"last"`
	Prev  string `json:"prev"`
	Next  string `json:"next"`
}

// PageMeta holds the pagination metadata of a catalog page
type PageMeta struct {
	CurrentPage int    `json:"current_page"`
	From        int    `json:"from"`
	Path        string `json:"path"`
	PerPage     int    `json:"per_page"`
	To          int    `json:"to"`
}

// RawWorkout is one over-fetched workout record as returned by the
// catalog endpoint.
type RawWorkout struct {
	ID            string       `json:"id"`
	TrainerID     string       `json:"trainer_id"`
	TrainerName   string       `json:"trainer_name"`
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Difficulty    int          `json:"difficulty"`
	IsFavorite    bool         `json:"is_favorite"`
	TotalDuration int          `json:"total_duration"`
	ApprovedAt    string       `json:"approved_at"`
	PublishedAt   string       `json:"published_at"`
	CreatedAt     string       `json:"created_at"`
	UpdatedAt     string       `json:"updated_at"`
	User          RawUser      `json:"user"`
	VideoCover    RawVideo     `json:"video_cover"`
	Routines      []RawRoutine `json:"routines"`
}

// RawRoutine is one segment of a workout
type RawRoutine struct {
	ID          string   `json:"id"`
	ExerciseID  string   `json:"exercise_id"`
	SetID       string   `json:"set_id"`
	Position    int      `json:"position"`
	Name        string   `json:"name"`
	Repetitions int      `json:"repetitions"`
	Duration    int      `json:"duration"`
	Rest        int      `json:"rest"`
	Video       RawVideo `json:"video"`
}

// RawVideo is a video resource attached to a workout or routine.
// Duration is in milliseconds.
type RawVideo struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Duration     int    `json:"duration"`
	Size         int64  `json:"size"`
	ThumbnailURL string `json:"thumbnail_url"`
	PlaylistURL  string `json:"playlist_url"`
	Orientation  string `json:"orientation"`
	AspectRatio  string `json:"aspect_ratio"`
}

// RawUser is the workout-owning user sub-record
type RawUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfilePhotoURL string `json:"profile_photo_url"`
	Country         string `json:"country"`
	Nickname        string `json:"nickname"`
}
