package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitreel/feedcore/internal/avatar"
	"github.com/fitreel/feedcore/internal/models"
	"github.com/fitreel/feedcore/internal/playback"
	"github.com/fitreel/feedcore/pkg/config"
	"github.com/fitreel/feedcore/pkg/logging"
)

// ErrUnknownWorkout is returned for card operations on a workout id
// that is not in the feed
var ErrUnknownWorkout = fmt.Errorf("unknown workout id")

// ItemView is one render-ready feed entry
type ItemView struct {
	models.Workout
	DifficultyLabel string `json:"difficulty_label"`
	AvatarData      string `json:"avatar_data,omitempty"`
	AvatarFallback  string `json:"avatar_fallback,omitempty"`
}

// CardState is a snapshot of one card's playback coordination state
type CardState struct {
	WorkoutID    string    `json:"workout_id"`
	State        string    `json:"state"`
	Playing      bool      `json:"playing"`
	RoutineIndex int       `json:"routine_index"`
	RoutineName  string    `json:"routine_name,omitempty"`
	PlaylistURL  string    `json:"playlist_url,omitempty"`
	SlotFills    []float64 `json:"slot_fills"`
	HapticPulses uint64    `json:"haptic_pulses"`
}

type cardEntry struct {
	coordinator *playback.Coordinator
	player      *playback.StatePlayer
	haptics     *playback.PulseCounter
}

// Session owns one feed lifetime: the paged item list, the avatar
// cache, the active-item tracker and the per-card playback
// coordinators. Closing the session cancels in-flight fetches.
type Session struct {
	ID string

	controller *Controller
	tracker    *Tracker
	avatars    *avatar.Cache

	mu    sync.Mutex
	cards map[string]*cardEntry

	fallbackAvatar string

	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
}

// NewSession creates a new feed session. store may be nil.
func NewSession(source CatalogSource, fetcher avatar.ImageFetcher, store *avatar.Store, cfg *config.Config) *Session {
	id := uuid.NewString()
	cache := avatar.NewCache(fetcher, store, cfg.Avatar.MaxEntries)
	ctx, cancel := context.WithCancel(context.Background())

	return &Session{
		ID:             id,
		controller:     NewController(source, cache, cfg.Catalog.MaxPages),
		tracker:        NewTracker(),
		avatars:        cache,
		cards:          make(map[string]*cardEntry),
		fallbackAvatar: cfg.Avatar.FallbackURL,
		ctx:            ctx,
		cancel:         cancel,
		logger:         logging.WithSession(id),
	}
}

// Start loads the first feed page
func (s *Session) Start() {
	s.controller.Start(s.ctx)
}

// EndReached handles an end-of-list signal from the rendering surface
func (s *Session) EndReached() {
	s.controller.OnEndReached(s.ctx)
}

// ReportVisibility applies a visibility report and propagates an
// active-id change to every card coordinator. Returns the active id.
func (s *Session) ReportVisibility(report []Visibility) string {
	active, changed := s.tracker.Observe(report)
	if !changed {
		return active
	}

	s.logger.Debug("Active workout changed", zap.String("workout_id", active))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.cards {
		entry.coordinator.SetActive(active)
	}
	return active
}

// ActiveWorkoutID returns the active workout id, empty before the
// first qualifying visibility report
func (s *Session) ActiveWorkoutID() string {
	return s.tracker.Active()
}

// Items returns the render-ready feed entries
func (s *Session) Items() []ItemView {
	items := s.controller.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{
			Workout:         item,
			DifficultyLabel: models.DifficultyLabel(item.Difficulty),
		}
		if data, ok := s.avatars.Get(item.ID); ok && data != "" {
			view.AvatarData = data
		} else {
			view.AvatarFallback = s.fallbackAvatar
		}
		views = append(views, view)
	}
	return views
}

// Phase returns the pagination phase
func (s *Session) Phase() Phase {
	return s.controller.Phase()
}

// Page returns the last successfully loaded page number
func (s *Session) Page() int {
	return s.controller.Page()
}

// card returns the coordinator entry for a workout, constructing it on
// first reference. A new card starts at routine index 0 and picks up
// the current active id; the index stays sticky for the card's
// lifetime.
func (s *Session) card(workoutID string) (*cardEntry, error) {
	s.mu.Lock()
	if entry, ok := s.cards[workoutID]; ok {
		s.mu.Unlock()
		return entry, nil
	}
	s.mu.Unlock()

	item, ok := s.controller.Item(workoutID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkout, workoutID)
	}

	player := &playback.StatePlayer{}
	haptics := &playback.PulseCounter{}
	entry := &cardEntry{
		coordinator: playback.NewCoordinator(workoutID, item.Routines, player, haptics),
		player:      player,
		haptics:     haptics,
	}

	s.mu.Lock()
	if existing, ok := s.cards[workoutID]; ok {
		s.mu.Unlock()
		return existing, nil
	}
	s.cards[workoutID] = entry
	s.mu.Unlock()

	if active := s.tracker.Active(); active != "" {
		entry.coordinator.SetActive(active)
	}
	return entry, nil
}

// CardState returns a snapshot of one card's playback state
func (s *Session) CardState(workoutID string) (CardState, error) {
	entry, err := s.card(workoutID)
	if err != nil {
		return CardState{}, err
	}
	return s.snapshot(entry), nil
}

// CardMediaLoaded applies a media readiness report to a card
func (s *Session) CardMediaLoaded(workoutID string, loaded bool) (CardState, error) {
	entry, err := s.card(workoutID)
	if err != nil {
		return CardState{}, err
	}
	entry.coordinator.MediaLoaded(loaded)
	return s.snapshot(entry), nil
}

// CardNext advances a card to its next routine
func (s *Session) CardNext(workoutID string) (CardState, error) {
	entry, err := s.card(workoutID)
	if err != nil {
		return CardState{}, err
	}
	entry.coordinator.Next()
	return s.snapshot(entry), nil
}

// CardPrev moves a card to its previous routine
func (s *Session) CardPrev(workoutID string) (CardState, error) {
	entry, err := s.card(workoutID)
	if err != nil {
		return CardState{}, err
	}
	entry.coordinator.Prev()
	return s.snapshot(entry), nil
}

func (s *Session) snapshot(entry *cardEntry) CardState {
	coord := entry.coordinator
	state := CardState{
		WorkoutID:    coord.WorkoutID(),
		State:        coord.State().String(),
		Playing:      entry.player.Playing(),
		RoutineIndex: coord.RoutineIndex(),
		SlotFills:    coord.SlotFills(),
		HapticPulses: entry.haptics.Count(),
	}
	if routine, ok := coord.CurrentRoutine(); ok {
		state.RoutineName = routine.Name
		state.PlaylistURL = routine.PlaylistURL
	}
	return state
}

// Close ends the session and cancels in-flight fetches
func (s *Session) Close() {
	s.cancel()
	s.logger.Info("Feed session closed")
}
