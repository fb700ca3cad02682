package content

import (
	"context"
	"fmt"
	"testing"

	"github.com/qinary/brandboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient is a mock implementation of the provider client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchBrands(ctx context.Context) ([]models.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Brand), args.Error(1)
}

func (m *MockClient) FetchBrandStats(ctx context.Context, blogID int64) map[string]any {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]any)
}

func (m *MockClient) FetchInstagramPosts(ctx context.Context, blogID int64) []models.RawPost {
	args := m.Called(ctx, blogID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.RawPost)
}

func (m *MockClient) FetchPlatformPosts(ctx context.Context, blogID int64, platform models.Platform) ([]models.RawPost, error) {
	args := m.Called(ctx, blogID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawPost), args.Error(1)
}

func TestAggregator_ProcessedBrands(t *testing.T) {
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "Zeta", Instagram: "zeta"},
		{ID: 2, Label: "Alpha", TikTok: "alpha"},
		{ID: 3, Label: "Deleted", Instagram: "x", Deleted: true},
		{ID: 4, Label: "Demo", Instagram: "y", IsDemo: true},
	}, nil)

	agg := NewAggregator(client)
	brands, err := agg.ProcessedBrands(context.Background())

	require.NoError(t, err)
	require.Len(t, brands, 2, "deleted and demo brands are discarded")
	assert.Equal(t, "Alpha", brands[0].Name, "sorted by name")
	assert.Equal(t, "Zeta", brands[1].Name)
}

func TestAggregator_BrandListFailurePropagates(t *testing.T) {
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return(nil, fmt.Errorf("upstream down"))

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 3)

	assert.Error(t, err)
	// Even the error path returns a structurally valid result.
	assert.NotNil(t, result.Best)
	assert.NotNil(t, result.Worst)
	assert.Equal(t, 0, result.PostCount)
}

func TestAggregator_PartialFailureTolerated(t *testing.T) {
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "A", Instagram: "a", TikTok: "a"},
		{ID: 2, Label: "B", Instagram: "b"},
	}, nil)

	// Task 2 of 3 fails; its posts are simply absent from the result.
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformInstagram).
		Return([]models.RawPost{{"postId": "p1", "likes": 10.0, "reach": 100.0}}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformTikTok).
		Return(nil, fmt.Errorf("rate limited"))
	client.On("FetchPlatformPosts", mock.Anything, int64(2), models.PlatformInstagram).
		Return([]models.RawPost{{"postId": "p2", "likes": 5.0, "reach": 50.0}}, nil)

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 2, result.PostCount)

	ids := make(map[string]bool)
	for _, p := range result.Best {
		ids[p.ID] = true
	}
	assert.True(t, ids["p1"])
	assert.True(t, ids["p2"])
}

func TestAggregator_ZeroSignalPostsDropped(t *testing.T) {
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "A", Instagram: "a"},
	}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformInstagram).
		Return([]models.RawPost{
			{"postId": "empty"},
			{"postId": "real", "likes": 3.0},
		}, nil)

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 5)

	require.NoError(t, err)
	require.Equal(t, 1, result.PostCount)
	assert.Equal(t, "real", result.Best[0].ID)
}

func TestAggregator_EndToEnd(t *testing.T) {
	// Brand A on instagram+tiktok, brand B on instagram. One instagram post
	// has reach 0 but likes 5, so it survives the filter with rate 0.
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "A", Instagram: "a", TikTok: "a"},
		{ID: 2, Label: "B", Instagram: "b"},
	}, nil)

	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformInstagram).
		Return([]models.RawPost{
			{"postId": "ig-hi", "likes": 10.0, "reach": 100.0},
			{"postId": "ig-zero-reach", "likes": 5.0, "reach": 0.0},
		}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformTikTok).
		Return([]models.RawPost{
			{"videoId": "tt-1", "likeCount": 5.0, "viewCount": 50.0},
		}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(2), models.PlatformInstagram).
		Return([]models.RawPost{}, nil)

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 3)

	require.NoError(t, err)
	require.Equal(t, 3, result.PostCount)

	// ig-hi: rate 10, reach 100 → both maxima → 100.
	// tt-1:  rate 10, reach 50  → 60 + 20 = 80.
	// ig-zero-reach: rate 0, reach 0 → 0, retained because likes > 0.
	assert.Equal(t, "ig-hi", result.Best[0].ID)
	assert.InDelta(t, 100.0, result.Best[0].Score, 1e-9)
	assert.Equal(t, "tt-1", result.Best[1].ID)
	assert.InDelta(t, 80.0, result.Best[1].Score, 1e-9)
	assert.Equal(t, "ig-zero-reach", result.Best[2].ID)
	assert.Equal(t, 0.0, result.Best[2].Score)
	assert.Equal(t, 0.0, result.Best[2].EngagementRate)
}

func TestAggregator_BestWorstSlicing(t *testing.T) {
	var raws []models.RawPost
	for i := 1; i <= 8; i++ {
		raws = append(raws, models.RawPost{
			"postId": fmt.Sprintf("p%d", i),
			"likes":  float64(i),
			"reach":  float64(i * 100),
		})
	}

	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "A", Instagram: "a"},
	}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformInstagram).
		Return(raws, nil)

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, result.Best, 3)
	require.Len(t, result.Worst, 3)

	// Worst list is reversed: worst-of-worst first.
	assert.Equal(t, "p8", result.Best[0].ID)
	assert.Equal(t, "p1", result.Worst[0].ID)
	assert.Equal(t, "p2", result.Worst[1].ID)
	assert.Equal(t, "p3", result.Worst[2].ID)
}

func TestAggregator_FewerPostsThanLimit(t *testing.T) {
	client := &MockClient{}
	client.On("FetchBrands", mock.Anything).Return([]models.Brand{
		{ID: 1, Label: "A", Instagram: "a"},
	}, nil)
	client.On("FetchPlatformPosts", mock.Anything, int64(1), models.PlatformInstagram).
		Return([]models.RawPost{
			{"postId": "only", "likes": 1.0, "reach": 10.0},
		}, nil)

	agg := NewAggregator(client)
	result, err := agg.Aggregate(context.Background(), 12)

	require.NoError(t, err)
	assert.Len(t, result.Best, 1)
	// Too few posts to split a distinct worst set.
	assert.Empty(t, result.Worst)
}
