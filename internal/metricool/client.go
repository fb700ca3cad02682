package metricool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/qinary/brandboard/internal/models"
	"github.com/sirupsen/logrus"
)

// Client is the contract the rest of the system has with the upstream
// analytics provider.
type Client interface {
	// FetchBrands returns every profile on the master account, unfiltered.
	FetchBrands(ctx context.Context) ([]models.Brand, error)
	// FetchBrandStats returns the raw aggregate stats object for one brand
	// over the trailing 30 days. Best-effort: a nil map means no data, never
	// an error.
	FetchBrandStats(ctx context.Context, blogID int64) map[string]any
	// FetchInstagramPosts returns raw instagram posts for one brand over the
	// trailing 30 days. Best-effort: an empty slice on any failure.
	FetchInstagramPosts(ctx context.Context, blogID int64) []models.RawPost
	// FetchPlatformPosts returns raw posts for one (brand, platform) pair
	// over the trailing 30 days via the v2 analytics API.
	FetchPlatformPosts(ctx context.Context, blogID int64, platform models.Platform) ([]models.RawPost, error)
}

// v2 analytics paths per platform. Instagram and Facebook split regular
// posts and reels across two endpoints. YouTube has no v2 path.
var v2PostPaths = map[models.Platform][]string{
	models.PlatformInstagram: {"/v2/analytics/posts/instagram", "/v2/analytics/reels/instagram"},
	models.PlatformFacebook:  {"/v2/analytics/posts/facebook", "/v2/analytics/reels/facebook"},
	models.PlatformTwitter:   {"/v2/analytics/posts/twitter"},
	models.PlatformTikTok:    {"/v2/analytics/posts/tiktok"},
	models.PlatformLinkedIn:  {"/v2/analytics/posts/linkedin"},
	models.PlatformThreads:   {"/v2/analytics/posts/threads"},
	models.PlatformPinterest: {"/v2/analytics/posts/pinterest"},
	models.PlatformBluesky:   {"/v2/analytics/posts/bluesky"},
}

// APIClient talks to the Metricool REST API.
type APIClient struct {
	client       *resty.Client
	userID       string
	masterBlogID string
	window       time.Duration
}

// Ensure APIClient implements Client
var _ Client = (*APIClient)(nil)

// NewAPIClient creates a Metricool API client. The token is sent on every
// request via the X-Mc-Auth header.
func NewAPIClient(baseURL, token, userID, masterBlogID string) *APIClient {
	return &APIClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("X-Mc-Auth", token).
			SetHeader("User-Agent", "Brandboard/1.0"),
		userID:       userID,
		masterBlogID: masterBlogID,
		window:       30 * 24 * time.Hour,
	}
}

// formatDate renders yyyyMMdd as expected by the legacy stats endpoints.
func formatDate(t time.Time) string {
	return t.UTC().Format("20060102")
}

// formatV2Date renders yyyy-MM-dd'T'HH:mm:ss (no millis, no zone) as
// required by the v2 analytics endpoints.
func formatV2Date(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05")
}

func (c *APIClient) get(ctx context.Context, path string, params map[string]string, out any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)

	if err != nil {
		return fmt.Errorf("metricool request failed: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		body := resp.Body()
		if len(body) > 200 {
			body = body[:200]
		}
		logrus.Errorf("Metricool API error: %d %s %s", resp.StatusCode(), path, body)
		return fmt.Errorf("metricool API returned status %d for %s", resp.StatusCode(), path)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("metricool response malformed: %w", err)
	}

	return nil
}

func (c *APIClient) FetchBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := c.get(ctx, "/admin/profiles", map[string]string{
		"blogId": c.masterBlogID,
		"userId": c.userID,
	}, &brands)
	if err != nil {
		return nil, fmt.Errorf("fetching brand list: %w", err)
	}
	return brands, nil
}

func (c *APIClient) FetchBrandStats(ctx context.Context, blogID int64) map[string]any {
	now := time.Now()
	var stats map[string]any
	err := c.get(ctx, "/stats/aggregations/instagram", map[string]string{
		"blogId":   fmt.Sprintf("%d", blogID),
		"userId":   c.userID,
		"initDate": formatDate(now.Add(-c.window)),
		"endDate":  formatDate(now),
	}, &stats)
	if err != nil {
		logrus.Debugf("Brand %d stats unavailable: %v", blogID, err)
		return nil
	}
	return stats
}

func (c *APIClient) FetchInstagramPosts(ctx context.Context, blogID int64) []models.RawPost {
	now := time.Now()
	var posts []models.RawPost
	err := c.get(ctx, "/stats/instagram/posts", map[string]string{
		"blogId":   fmt.Sprintf("%d", blogID),
		"userId":   c.userID,
		"initDate": formatDate(now.Add(-c.window)),
		"endDate":  formatDate(now),
	}, &posts)
	if err != nil {
		logrus.Debugf("Brand %d instagram posts unavailable: %v", blogID, err)
		return nil
	}
	return posts
}

// v2Envelope wraps every v2 analytics list response.
type v2Envelope struct {
	Data []models.RawPost `json:"data"`
}

func (c *APIClient) FetchPlatformPosts(ctx context.Context, blogID int64, platform models.Platform) ([]models.RawPost, error) {
	paths, ok := v2PostPaths[platform]
	if !ok {
		return nil, nil
	}

	now := time.Now()
	params := map[string]string{
		"blogId": fmt.Sprintf("%d", blogID),
		"userId": c.userID,
		"from":   formatV2Date(now.Add(-c.window)),
		"to":     formatV2Date(now),
	}

	var allPosts []models.RawPost
	var lastErr error

	for _, path := range paths {
		var envelope v2Envelope
		if err := c.get(ctx, path, params, &envelope); err != nil {
			// Some platforms legitimately have no data on some paths.
			logrus.Debugf("Skipping %s for brand %d: %v", path, blogID, err)
			lastErr = err
			continue
		}
		if len(envelope.Data) > 0 {
			logrus.Debugf("%s brand=%d: %d posts", path, blogID, len(envelope.Data))
		}
		allPosts = append(allPosts, envelope.Data...)
	}

	if allPosts == nil && lastErr != nil {
		return nil, fmt.Errorf("fetching %s posts for brand %d: %w", platform, blogID, lastErr)
	}

	return allPosts, nil
}
