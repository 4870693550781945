package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitreel/feedcore/internal/catalog"
	"github.com/fitreel/feedcore/internal/feed"
	"github.com/fitreel/feedcore/pkg/config"
)

type stubSource struct{ pageSize int }

func (s *stubSource) FetchPage(ctx context.Context, page int) (*catalog.RawPage, error) {
	data := make([]catalog.RawWorkout, 0, s.pageSize)
	for i := 0; i < s.pageSize; i++ {
		id := fmt.Sprintf("w-%d-%d", page, i)
		data = append(data, catalog.RawWorkout{
			ID:         id,
			Name:       "Workout " + id,
			Difficulty: 2,
			User:       catalog.RawUser{ProfilePhotoURL: "https://img.test/" + id + ".jpg"},
			Routines: []catalog.RawRoutine{
				{ID: id + "-r0", Name: "Warmup", Video: catalog.RawVideo{Duration: 10000, PlaylistURL: "https://vid.test/" + id + ".m3u8"}},
				{ID: id + "-r1", Name: "Squats", Video: catalog.RawVideo{Duration: 20000, PlaylistURL: "https://vid.test/" + id + "-1.m3u8"}},
			},
		})
	}
	return &catalog.RawPage{Data: data}, nil
}

type stubFetcher struct{}

func (stubFetcher) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	return []byte{1}, "image/png", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *feed.Session) {
	t.Helper()

	cfg := &config.Config{
		Catalog: config.CatalogConfig{
			Endpoint:    "https://api.test.example/v1/workouts",
			BearerToken: "token",
			MaxPages:    4,
			HTTPTimeout: 5 * time.Second,
		},
		Avatar: config.AvatarConfig{MaxEntries: 16, FallbackURL: "https://img.test/fallback.png"},
	}

	session := feed.NewSession(&stubSource{pageSize: 2}, stubFetcher{}, nil, cfg)
	session.Start()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewRouter(session).SetupRoutes(engine)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		srv.Close()
		session.Close()
	})
	return srv, session
}

func call(t *testing.T, srv *httptest.Server, method string, params interface{}) JSONRPCResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp, err := http.Post(srv.URL+"/", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp JSONRPCResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rpcResp
}

func resultMap(t *testing.T, resp JSONRPCResponse) map[string]interface{} {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected RPC error: %+v", resp.Error)
	}
	m, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result is %T, want object", resp.Result)
	}
	return m
}

func TestRouter_FeedGetState(t *testing.T) {
	srv, _ := newTestServer(t)

	result := resultMap(t, call(t, srv, "feed.get_state", map[string]interface{}{}))

	if result["phase"] != "loaded" {
		t.Errorf("phase = %v, want loaded", result["phase"])
	}
	items, ok := result["items"].([]interface{})
	if !ok || len(items) != 2 {
		t.Fatalf("items = %v, want 2 entries", result["items"])
	}

	item := items[0].(map[string]interface{})
	if item["difficulty_label"] != "Advanced" {
		t.Errorf("difficulty_label = %v, want Advanced", item["difficulty_label"])
	}
	if data, ok := item["avatar_data"].(string); !ok || data == "" {
		t.Error("warmed item should carry avatar data")
	}
}

func TestRouter_EndReachedAppends(t *testing.T) {
	srv, _ := newTestServer(t)

	result := resultMap(t, call(t, srv, "feed.end_reached", map[string]interface{}{}))

	if result["page"] != float64(2) {
		t.Errorf("page = %v, want 2", result["page"])
	}
	if items := result["items"].([]interface{}); len(items) != 4 {
		t.Errorf("len(items) = %d, want 4", len(items))
	}
}

func TestRouter_VisibilityAndCardFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	result := resultMap(t, call(t, srv, "feed.report_visibility", map[string]interface{}{
		"report": []map[string]interface{}{
			{"item_id": "w-1-0", "visible": true, "primary": true},
		},
	}))
	if result["active_workout_id"] != "w-1-0" {
		t.Fatalf("active_workout_id = %v, want w-1-0", result["active_workout_id"])
	}

	card := resultMap(t, call(t, srv, "card.get_state", map[string]interface{}{"workout_id": "w-1-0"}))
	if card["playing"] != true {
		t.Errorf("playing = %v, want true", card["playing"])
	}
	if card["routine_name"] != "Warmup" {
		t.Errorf("routine_name = %v, want Warmup", card["routine_name"])
	}

	card = resultMap(t, call(t, srv, "card.next_routine", map[string]interface{}{"workout_id": "w-1-0"}))
	if card["routine_index"] != float64(1) {
		t.Errorf("routine_index = %v, want 1", card["routine_index"])
	}
	if card["routine_name"] != "Squats" {
		t.Errorf("routine_name = %v, want Squats", card["routine_name"])
	}
}

func TestRouter_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		params interface{}
		code   int
	}{
		{"unknown method", "feed.unknown", map[string]interface{}{}, ErrMethodNotFound},
		{"missing workout_id", "card.get_state", map[string]interface{}{}, ErrServerError},
		{"unknown workout", "card.get_state", map[string]interface{}{"workout_id": "nope"}, ErrServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, srv, tt.method, tt.params)
			if resp.Error == nil {
				t.Fatal("expected RPC error")
			}
			if resp.Error.Code != tt.code {
				t.Errorf("error code = %d, want %d", resp.Error.Code, tt.code)
			}
		})
	}
}

func TestRouter_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
