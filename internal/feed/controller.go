package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/fitreel/feedcore/internal/catalog"
	"github.com/fitreel/feedcore/internal/models"
	"github.com/fitreel/feedcore/pkg/logging"
	"github.com/fitreel/feedcore/pkg/telemetry"
)

// Phase is the loading phase of the pagination controller
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingFirstPage
	PhaseLoadingMore
	PhaseLoaded
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingFirstPage:
		return "loading_first_page"
	case PhaseLoadingMore:
		return "loading_more"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// CatalogSource fetches one page of raw workout records
type CatalogSource interface {
	FetchPage(ctx context.Context, page int) (*catalog.RawPage, error)
}

// AvatarResolver resolves a workout's avatar into an inline data string
type AvatarResolver interface {
	Resolve(ctx context.Context, workoutID, avatarURL string) string
}

// Controller owns the paged feed item list. Items are append-only;
// pages are fetched in increasing order up to maxPages. The phase
// value doubles as the duplicate-load guard: an end-reached signal
// while a page is in flight is a no-op.
type Controller struct {
	mu       sync.Mutex
	phase    Phase
	page     int
	maxPages int
	items    []models.Workout
	source   CatalogSource
	avatars  AvatarResolver
	logger   *zap.Logger
}

// NewController creates a new pagination controller
func NewController(source CatalogSource, avatars AvatarResolver, maxPages int) *Controller {
	return &Controller{
		phase:    PhaseIdle,
		maxPages: maxPages,
		source:   source,
		avatars:  avatars,
		logger:   logging.GetLogger().With(zap.String("component", "feed-controller")),
	}
}

// Start loads the first page. Calling Start more than once is a no-op.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseLoadingFirstPage
	c.mu.Unlock()

	c.loadPage(ctx, 1)
}

// OnEndReached handles an end-of-list signal from the rendering
// surface. Beyond the page cap, or while a load is already in flight,
// it is a no-op. The page counter advances only on a successful load,
// so a failed page is retried on the next signal.
func (c *Controller) OnEndReached(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseLoaded {
		c.mu.Unlock()
		return
	}
	if c.page >= c.maxPages {
		c.mu.Unlock()
		return
	}
	next := c.page + 1
	c.phase = PhaseLoadingMore
	c.mu.Unlock()

	c.loadPage(ctx, next)
}

// loadPage runs one fetch → project → avatar-warm → append sequence.
// A fetch failure is logged and suppressed; the phase resolves to
// loaded with nothing appended.
func (c *Controller) loadPage(ctx context.Context, page int) {
	ctx, span := telemetry.StartSpan(ctx, "feed.load_page")
	defer span.End()

	rawPage, err := c.source.FetchPage(ctx, page)
	if err != nil {
		c.logger.Error("Failed to fetch catalog page",
			zap.Int("page", page),
			zap.Error(err))
		c.mu.Lock()
		c.phase = PhaseLoaded
		c.mu.Unlock()
		return
	}

	mapped := Project(rawPage.Data)

	// Warm the avatar cache one workout at a time. Sequential on
	// purpose: deterministic cache population order and a single
	// in-flight image fetch.
	for _, workout := range mapped {
		if ctx.Err() != nil {
			break
		}
		c.avatars.Resolve(ctx, workout.ID, workout.AvatarURL)
	}

	c.mu.Lock()
	c.items = append(c.items, mapped...)
	c.page = page
	c.phase = PhaseLoaded
	c.mu.Unlock()

	c.logger.Info("Loaded catalog page",
		zap.Int("page", page),
		zap.Int("items", len(mapped)))
}

// Items returns a snapshot of the feed item list
func (c *Controller) Items() []models.Workout {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.Workout, len(c.items))
	copy(items, c.items)
	return items
}

// Item returns the feed item with the given workout ID
func (c *Controller) Item(workoutID string) (models.Workout, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.ID == workoutID {
			return item, true
		}
	}
	return models.Workout{}, false
}

// Phase returns the current loading phase
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Page returns the last successfully loaded page number, 0 before the
// first page has loaded
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}
