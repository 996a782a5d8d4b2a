package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// AnalyticsService backs the dashboard and analytics views. The three global
// counters come from the backend aggregate; only the priority numbers are
// derived client-side, from whatever task collection is currently cached.
type AnalyticsService struct {
	upstream ports.UpstreamClient
	cache    *ViewCache
	log      zerolog.Logger
}

func NewAnalyticsService(upstream ports.UpstreamClient, cache *ViewCache, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		upstream: upstream,
		cache:    cache,
		log:      log.With().Str("component", "analytics").Logger(),
	}
}

func (s *AnalyticsService) fetchStats(ctx context.Context, sess *domain.Session) (domain.DashboardStats, error) {
	if stats, ok := cacheGet[domain.DashboardStats](s.cache, sess.ID, ResourceStats); ok {
		return stats, nil
	}
	stats, err := s.upstream.DashboardStats(ctx, sess.Token)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	cacheSet(s.cache, sess.ID, ResourceStats, stats)
	return stats, nil
}

func (s *AnalyticsService) fetchTasks(ctx context.Context, sess *domain.Session) ([]domain.Task, error) {
	if tasks, ok := cacheGet[[]domain.Task](s.cache, sess.ID, ResourceTasks); ok {
		return tasks, nil
	}
	tasks, err := s.upstream.ListTasks(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceTasks, tasks)
	return tasks, nil
}

// Dashboard returns the backend's global aggregate for the landing view.
func (s *AnalyticsService) Dashboard(ctx context.Context, sess *domain.Session) (domain.DashboardStats, error) {
	return s.fetchStats(ctx, sess)
}

// Analytics loads the aggregate and the task list concurrently. Either read
// failing is logged and degrades its numbers to zero; the view settles
// regardless.
func (s *AnalyticsService) Analytics(ctx context.Context, sess *domain.Session) (ports.AnalyticsView, error) {
	var (
		wg       sync.WaitGroup
		stats    domain.DashboardStats
		statsErr error
		tasks    []domain.Task
		tasksErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = s.fetchStats(ctx, sess)
	}()
	go func() {
		defer wg.Done()
		tasks, tasksErr = s.fetchTasks(ctx, sess)
	}()
	wg.Wait()

	if statsErr != nil {
		s.log.Error().Err(statsErr).Msg("stats fetch failed, rendering zero aggregate")
		stats = domain.DashboardStats{}
	}
	if tasksErr != nil {
		s.log.Error().Err(tasksErr).Msg("task fetch failed, rendering zero priority counts")
		tasks = nil
	}

	priorities := PriorityCounts(tasks)
	return ports.AnalyticsView{
		Stats:        stats,
		InProgress:   inProgress(stats),
		HighPriority: priorities.High,
		Priorities:   priorities,
	}, nil
}

// PriorityCounts buckets a task collection by priority. Pure derivation:
// same input, same output, no side effects.
func PriorityCounts(tasks []domain.Task) ports.PriorityBreakdown {
	var b ports.PriorityBreakdown
	for _, t := range tasks {
		switch t.Priority {
		case domain.PriorityHigh:
			b.High++
		case domain.PriorityMedium:
			b.Medium++
		case domain.PriorityLow:
			b.Low++
		}
	}
	return b
}

// inProgress derives the in-progress count from the authoritative aggregate.
// Clamped at zero in case the backend's counters are momentarily out of step.
func inProgress(stats domain.DashboardStats) int {
	n := stats.TotalTasks - stats.CompletedTasks - stats.PendingTasks
	if n < 0 {
		return 0
	}
	return n
}
