package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/fitreel/feedcore/pkg/config"
	"github.com/fitreel/feedcore/pkg/logging"
	"github.com/fitreel/feedcore/pkg/telemetry"
)

// Client fetches workout catalog pages from the remote endpoint
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *zap.Logger
}

// New creates a new catalog client
func New(cfg *config.CatalogConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("catalog_endpoint is required")
	}
	if cfg.BearerToken == "" {
		return nil, fmt.Errorf("catalog_bearer_token is required")
	}

	logger := logging.GetLogger().With(zap.String("component", "catalog-client"))

	client := &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.BearerToken,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   logger,
	}

	logger.Info("Catalog client initialized", zap.String("endpoint", cfg.Endpoint))

	return client, nil
}

// FetchPage fetches a single catalog page by page number. Only an
// HTTP 200 response succeeds; no retry is attempted here.
func (c *Client) FetchPage(ctx context.Context, page int) (*RawPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.fetch_page")
	defer span.End()

	if page < 1 {
		return nil, fmt.Errorf("invalid page number: %d", page)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog page %d returned status %d", page, resp.StatusCode)
	}

	var rawPage RawPage
	if err := json.NewDecoder(resp.Body).Decode(&rawPage); err != nil {
		return nil, fmt.Errorf("failed to decode catalog page %d: %w", page, err)
	}

	c.logger.Debug("Fetched catalog page",
		zap.Int("page", page),
		zap.Int("items", len(rawPage.Data)))

	return &rawPage, nil
}

// FetchImage fetches a binary image resource with the same bearer
// authentication as the catalog endpoint. Returns the image bytes and
// the response content type.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, string, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.fetch_image")
	defer span.End()

	if url == "" {
		return nil, "", fmt.Errorf("image url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return data, contentType, nil
}
