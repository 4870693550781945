package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fitreel/feedcore/internal/feed"
	"github.com/fitreel/feedcore/pkg/logging"
)

// Router exposes one feed session over JSON-RPC. The method surface is
// the rendering-surface contract: the list of render-ready items plus
// the signals a surface sends back (end reached, visibility reports,
// per-card events).
type Router struct {
	handler *JSONRPCHandler
	session *feed.Session
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(session *feed.Session) *Router {
	router := &Router{
		handler: NewJSONRPCHandler(),
		session: session,
		logger:  logging.GetLogger().With(zap.String("component", "api-router")),
	}

	router.registerMethods()

	return router
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	// JSON-RPC endpoint
	engine.POST("/", r.handler.Handle)
}

func (r *Router) registerMethods() {
	r.handler.RegisterMethod("feed.get_state", r.feedGetState)
	r.handler.RegisterMethod("feed.end_reached", r.feedEndReached)
	r.handler.RegisterMethod("feed.report_visibility", r.feedReportVisibility)

	r.handler.RegisterMethod("card.get_state", r.cardGetState)
	r.handler.RegisterMethod("card.media_loaded", r.cardMediaLoaded)
	r.handler.RegisterMethod("card.next_routine", r.cardNextRoutine)
	r.handler.RegisterMethod("card.prev_routine", r.cardPrevRoutine)
}

func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "feedcore-api",
	})
}

// FeedStateResult is the feed.get_state result
type FeedStateResult struct {
	SessionID       string          `json:"session_id"`
	Phase           string          `json:"phase"`
	Page            int             `json:"page"`
	ActiveWorkoutID string          `json:"active_workout_id,omitempty"`
	Items           []feed.ItemView `json:"items"`
}

func (r *Router) feedState() FeedStateResult {
	return FeedStateResult{
		SessionID:       r.session.ID,
		Phase:           r.session.Phase().String(),
		Page:            r.session.Page(),
		ActiveWorkoutID: r.session.ActiveWorkoutID(),
		Items:           r.session.Items(),
	}
}

// feedGetState handles feed.get_state
func (r *Router) feedGetState(c *gin.Context, params json.RawMessage) (interface{}, error) {
	return r.feedState(), nil
}

// feedEndReached handles feed.end_reached. The load runs inline; the
// session's phase guard makes rapid repeated signals no-ops.
func (r *Router) feedEndReached(c *gin.Context, params json.RawMessage) (interface{}, error) {
	r.session.EndReached()
	return r.feedState(), nil
}

type visibilityParams struct {
	Report []feed.Visibility `json:"report"`
}

// feedReportVisibility handles feed.report_visibility
func (r *Router) feedReportVisibility(c *gin.Context, params json.RawMessage) (interface{}, error) {
	var p visibilityParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid visibility report: %w", err)
	}

	active := r.session.ReportVisibility(p.Report)
	return gin.H{"active_workout_id": active}, nil
}

type cardParams struct {
	WorkoutID string `json:"workout_id"`
	Loaded    bool   `json:"loaded"`
}

func parseCardParams(params json.RawMessage) (cardParams, error) {
	var p cardParams
	if err := json.Unmarshal(params, &p); err != nil {
		return p, fmt.Errorf("invalid card params: %w", err)
	}
	if p.WorkoutID == "" {
		return p, fmt.Errorf("missing required parameter: workout_id")
	}
	return p, nil
}

// cardGetState handles card.get_state
func (r *Router) cardGetState(c *gin.Context, params json.RawMessage) (interface{}, error) {
	p, err := parseCardParams(params)
	if err != nil {
		return nil, err
	}
	return r.session.CardState(p.WorkoutID)
}

// cardMediaLoaded handles card.media_loaded
func (r *Router) cardMediaLoaded(c *gin.Context, params json.RawMessage) (interface{}, error) {
	p, err := parseCardParams(params)
	if err != nil {
		return nil, err
	}
	return r.session.CardMediaLoaded(p.WorkoutID, p.Loaded)
}

// cardNextRoutine handles card.next_routine
func (r *Router) cardNextRoutine(c *gin.Context, params json.RawMessage) (interface{}, error) {
	p, err := parseCardParams(params)
	if err != nil {
		return nil, err
	}
	return r.session.CardNext(p.WorkoutID)
}

// cardPrevRoutine handles card.prev_routine
func (r *Router) cardPrevRoutine(c *gin.Context, params json.RawMessage) (interface{}, error) {
	p, err := parseCardParams(params)
	if err != nil {
		return nil, err
	}
	return r.session.CardPrev(p.WorkoutID)
}
