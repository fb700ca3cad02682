package content

import (
	"time"

	"github.com/qinary/brandboard/internal/models"
)

// DefaultBrandPicture is served when a brand profile carries no picture.
const DefaultBrandPicture = "/default-avatar.svg"

// ProcessBrand converts a raw provider profile into a ProcessedBrand.
// Platform derivation follows the fixed check order; facebook, threads,
// bluesky and pinterest each have two presence fields, either of which
// counts as connected. DaysSinceJoin is recomputed against now on every
// call, so it drifts by calendar day across requests.
func ProcessBrand(brand models.Brand, now time.Time) models.ProcessedBrand {
	var platforms []models.Platform

	if brand.Instagram != "" {
		platforms = append(platforms, models.PlatformInstagram)
	}
	if brand.Facebook != "" || brand.FacebookPageID != "" {
		platforms = append(platforms, models.PlatformFacebook)
	}
	if brand.Twitter != "" {
		platforms = append(platforms, models.PlatformTwitter)
	}
	if brand.TikTok != "" {
		platforms = append(platforms, models.PlatformTikTok)
	}
	if brand.LinkedinCompany != "" {
		platforms = append(platforms, models.PlatformLinkedIn)
	}
	if brand.YouTubeChannelName != "" {
		platforms = append(platforms, models.PlatformYouTube)
	}
	if brand.Threads != "" || brand.ThreadsAccountName != "" {
		platforms = append(platforms, models.PlatformThreads)
	}
	if brand.Bluesky != "" || brand.BlueskyHandle != "" {
		platforms = append(platforms, models.PlatformBluesky)
	}
	if brand.Pinterest != "" || brand.PinterestBusiness != "" {
		platforms = append(platforms, models.PlatformPinterest)
	}

	picture := brand.Picture
	if picture == "" {
		picture = DefaultBrandPicture
	}

	// JoinDate arrives as epoch milliseconds.
	joinDate := time.UnixMilli(brand.JoinDate).UTC()
	daysSinceJoin := int(now.Sub(joinDate).Hours() / 24)

	return models.ProcessedBrand{
		ID:            brand.ID,
		Name:          brand.Label,
		Picture:       picture,
		Platforms:     platforms,
		JoinDate:      joinDate,
		DaysSinceJoin: daysSinceJoin,
	}
}
