package content

import "github.com/qinary/brandboard/internal/models"

// Composite score weights: engagement rate dominates, reach keeps pure
// low-follower virality from sweeping the board.
const (
	engagementWeight = 60.0
	reachWeight      = 40.0
)

// ScorePosts assigns each post a 0-100 composite score relative to the
// batch maxima. Batch-relative by design: the same post can score
// differently in a different batch composition, answering "best among
// today's fetched set" rather than an absolute benchmark. The maxima are
// floored at 1 so an all-zero batch scores all zeros instead of dividing
// by zero. An empty batch is returned unchanged.
func ScorePosts(posts []models.ContentPost) []models.ContentPost {
	if len(posts) == 0 {
		return posts
	}

	maxEngagement := 1.0
	maxReach := 1.0
	for _, p := range posts {
		if p.EngagementRate > maxEngagement {
			maxEngagement = p.EngagementRate
		}
		if r := float64(p.Reach); r > maxReach {
			maxReach = r
		}
	}

	scored := make([]models.ContentPost, len(posts))
	for i, p := range posts {
		p.Score = p.EngagementRate/maxEngagement*engagementWeight +
			float64(p.Reach)/maxReach*reachWeight
		scored[i] = p
	}

	return scored
}
