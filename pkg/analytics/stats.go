package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jordanlanch/listingpro/pkg/cache"
	"github.com/jordanlanch/listingpro/pkg/domain"
	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/metrics"
	"github.com/jordanlanch/listingpro/pkg/models"
)

const (
	statsCacheKey = "stats:dashboard"
	statsCacheTTL = time.Minute
)

// KeyStats is the dashboard summary computed over the full working set.
type KeyStats struct {
	TotalListings       int     `json:"totalListings"`
	TotalValue          float64 `json:"totalValue"`
	AvgPrice            float64 `json:"avgPrice"`
	ExpiredCount        int     `json:"expiredCount"`
	FsboCount           int     `json:"fsboCount"`
	PreForeclosureCount int     `json:"preForeclosureCount"`
	HotLeadsCount       int     `json:"hotLeadsCount"`
	WarmLeadsCount      int     `json:"warmLeadsCount"`
	ColdLeadsCount      int     `json:"coldLeadsCount"`
	FavoritesCount      int     `json:"favoritesCount"`
	ActiveTasksCount    int     `json:"activeTasksCount"`
	CompletedTasksCount int     `json:"completedTasksCount"`
}

// ListingSource yields the current working set.
type ListingSource interface {
	Listings() []models.Listing
}

// TaskSource yields the current task list.
type TaskSource interface {
	List() []models.Task
}

// Service computes dashboard statistics, with an optional Redis cache in
// front of the computation.
type Service struct {
	listings ListingSource
	tasks    TaskSource
	cache    *cache.Client
	log      logger.Logger
	metrics  *metrics.Metrics
}

// NewService builds a stats service. cache and m may be nil.
func NewService(listings ListingSource, tasks TaskSource, c *cache.Client, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{listings: listings, tasks: tasks, cache: c, log: log, metrics: m}
}

// Stats returns the dashboard summary, served from cache when fresh.
func (s *Service) Stats(ctx context.Context) KeyStats {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey); err == nil && cached != "" {
			var stats KeyStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				s.recordCache(true)
				return stats
			}
		}
		s.recordCache(false)
	}

	stats := Compute(s.listings.Listings(), s.tasks.List())

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL); err != nil {
				s.log.Warn("failed caching stats", "error", err)
			}
		}
	}
	return stats
}

// Lookup returns a single stat by its JSON field name.
func (s *Service) Lookup(ctx context.Context, key string) (float64, error) {
	stats := s.Stats(ctx)
	switch key {
	case "totalListings":
		return float64(stats.TotalListings), nil
	case "totalValue":
		return stats.TotalValue, nil
	case "avgPrice":
		return stats.AvgPrice, nil
	case "expiredCount":
		return float64(stats.ExpiredCount), nil
	case "fsboCount":
		return float64(stats.FsboCount), nil
	case "preForeclosureCount":
		return float64(stats.PreForeclosureCount), nil
	case "hotLeadsCount":
		return float64(stats.HotLeadsCount), nil
	case "warmLeadsCount":
		return float64(stats.WarmLeadsCount), nil
	case "coldLeadsCount":
		return float64(stats.ColdLeadsCount), nil
	case "favoritesCount":
		return float64(stats.FavoritesCount), nil
	case "activeTasksCount":
		return float64(stats.ActiveTasksCount), nil
	case "completedTasksCount":
		return float64(stats.CompletedTasksCount), nil
	}
	return 0, domain.NewBadRequestError(fmt.Sprintf("unknown stat %q", key))
}

// Invalidate drops the cached summary so the next read recomputes it.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "stats:*"); err != nil {
		s.log.Warn("failed invalidating stats cache", "error", err)
	}
}

// Compute derives the summary from a snapshot of listings and tasks.
func Compute(list []models.Listing, taskList []models.Task) KeyStats {
	stats := KeyStats{TotalListings: len(list)}
	for _, l := range list {
		stats.TotalValue += l.Price
		switch l.LeadType {
		case models.LeadTypeExpired:
			stats.ExpiredCount++
		case models.LeadTypeFSBO:
			stats.FsboCount++
		case models.LeadTypePreForeclosure:
			stats.PreForeclosureCount++
		}
		if l.AILeadScore != nil {
			switch l.AILeadScore.Score {
			case models.ScoreHot:
				stats.HotLeadsCount++
			case models.ScoreWarm:
				stats.WarmLeadsCount++
			case models.ScoreCold:
				stats.ColdLeadsCount++
			}
		}
		if l.IsFavorite {
			stats.FavoritesCount++
		}
	}
	if stats.TotalListings > 0 {
		stats.AvgPrice = stats.TotalValue / float64(stats.TotalListings)
	}
	for _, t := range taskList {
		if t.IsCompleted {
			stats.CompletedTasksCount++
		} else {
			stats.ActiveTasksCount++
		}
	}
	return stats
}

func (s *Service) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit("redis")
	} else {
		s.metrics.RecordCacheMiss("redis")
	}
}
