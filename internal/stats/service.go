package stats

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// FeedbackWindow is how far back the overview counts recent reports.
	FeedbackWindow = 7 * 24 * time.Hour
	// ActivityLimit is how many reports feed the activity block.
	ActivityLimit = 10
)

// Service assembles the dashboard, caching results in Redis and collapsing
// concurrent rebuilds of the same key into one query.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	group singleflight.Group
}

func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	key, err := s.cache.BuildKey(ctx, "stats", "overview")
	if err != nil {
		return nil, err
	}
	var ov Overview
	err = s.cache.FetchJSON(ctx, key, &ov, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, key, func(ctx context.Context) (interface{}, error) {
			return s.repo.Overview(ctx, time.Now().UTC().Add(-FeedbackWindow))
		})
	})
	if err != nil {
		return nil, err
	}
	return &ov, nil
}

func (s *Service) Activity(ctx context.Context) (*Activity, error) {
	key, err := s.cache.BuildKey(ctx, "stats", "activity")
	if err != nil {
		return nil, err
	}
	var activity Activity
	err = s.cache.FetchJSON(ctx, key, &activity, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, key, func(ctx context.Context) (interface{}, error) {
			return s.repo.RecentActivity(ctx, ActivityLimit)
		})
	})
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// Bump invalidates cached dashboards. Satisfies the write-side hooks other
// modules call after changing underlying data.
func (s *Service) Bump(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) build(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	resultChan := s.group.DoChan(key, func() (interface{}, error) {
		return fn(ctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultChan:
		return res.Val, res.Err
	}
}
