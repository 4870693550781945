package playback

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fitreel/feedcore/internal/models"
	"github.com/fitreel/feedcore/pkg/logging"
)

// Player controls a card's video element
type Player interface {
	Play()
	Pause()
}

// Haptics emits a short tactile pulse on routine navigation
type Haptics interface {
	Pulse()
}

// State is the playback state of a card
type State int

const (
	StateInactive State = iota
	StateActivePlaying
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActivePlaying:
		return "active_playing"
	default:
		return "unknown"
	}
}

// Coordinator drives one card's video playback and progress animation
// from two event streams: active-workout changes and routine
// navigation. The routine index is sticky for the card's lifetime; it
// is not reset when the card deactivates.
type Coordinator struct {
	mu          sync.Mutex
	workoutID   string
	routines    []models.Routine
	index       int
	state       State
	mediaLoaded bool
	progress    Progress
	player      Player
	haptics     Haptics
	now         func() time.Time
	logger      *zap.Logger
}

// NewCoordinator creates a coordinator for one rendered card, starting
// inactive at routine index 0.
func NewCoordinator(workoutID string, routines []models.Routine, player Player, haptics Haptics) *Coordinator {
	return &Coordinator{
		workoutID: workoutID,
		routines:  routines,
		player:    player,
		haptics:   haptics,
		now:       time.Now,
		logger: logging.GetLogger().With(
			zap.String("component", "playback-coordinator"),
			zap.String("workout_id", workoutID)),
	}
}

// WorkoutID returns the card's workout id
func (c *Coordinator) WorkoutID() string {
	return c.workoutID
}

// SetActive applies an active-workout change. Activation plays the
// video and, when media is loaded, restarts the progress run for the
// selected routine. Deactivation pauses the video and resets progress.
// Re-applying the current state is a no-op.
func (c *Coordinator) SetActive(activeWorkoutID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	active := activeWorkoutID == c.workoutID
	switch {
	case active && c.state == StateInactive:
		c.state = StateActivePlaying
		c.player.Play()
		if c.mediaLoaded {
			c.restartProgress()
		}
		c.logger.Debug("Card activated", zap.Int("routine_index", c.index))
	case !active && c.state == StateActivePlaying:
		c.state = StateInactive
		c.player.Pause()
		c.progress.Reset()
		c.logger.Debug("Card deactivated")
	}
}

// MediaLoaded applies a media readiness report from the video element.
// Media becoming ready while the card is active starts the progress
// run that activation had to skip.
func (c *Coordinator) MediaLoaded(loaded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	wasLoaded := c.mediaLoaded
	c.mediaLoaded = loaded
	if loaded && !wasLoaded && c.state == StateActivePlaying {
		c.restartProgress()
	}
}

// Next advances to the next routine, clamped at the last one. Returns
// the resulting index. Every call pulses haptics, including clamped
// ones.
func (c *Coordinator) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.haptics.Pulse()
	if c.index < len(c.routines)-1 {
		c.index++
		c.onRoutineChanged()
	}
	return c.index
}

// Prev moves to the previous routine, clamped at the first one.
// Returns the resulting index. Every call pulses haptics, including
// clamped ones.
func (c *Coordinator) Prev() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.haptics.Pulse()
	if c.index > 0 {
		c.index--
		c.onRoutineChanged()
	}
	return c.index
}

func (c *Coordinator) onRoutineChanged() {
	if c.state == StateActivePlaying && c.mediaLoaded {
		c.restartProgress()
	}
}

// restartProgress restarts the progress run timed to the selected
// routine's video duration. Callers hold c.mu.
func (c *Coordinator) restartProgress() {
	if c.index < 0 || c.index >= len(c.routines) {
		return
	}
	duration := time.Duration(c.routines[c.index].VideoDuration) * time.Millisecond
	c.progress.Restart(c.now(), duration)
}

// RoutineIndex returns the selected routine index
func (c *Coordinator) RoutineIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// State returns the playback state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentRoutine returns the selected routine
func (c *Coordinator) CurrentRoutine() (models.Routine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < 0 || c.index >= len(c.routines) {
		return models.Routine{}, false
	}
	return c.routines[c.index], true
}

// SlotFills returns the fill value of every routine progress slot:
// slots before the selected index are full, the selected slot carries
// the live progress value, slots after it are empty.
func (c *Coordinator) SlotFills() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	fills := make([]float64, len(c.routines))
	for i := range fills {
		switch {
		case i < c.index:
			fills[i] = 1
		case i == c.index:
			fills[i] = c.progress.Value(c.now())
		default:
			fills[i] = 0
		}
	}
	return fills
}
