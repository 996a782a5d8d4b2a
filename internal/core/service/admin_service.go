package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// AdminService backs the user and team administration views. Writes name the
// resources they invalidate and answer with the re-fetched collection so the
// caller always renders server truth.
type AdminService struct {
	upstream ports.UpstreamClient
	cache    *ViewCache
	log      zerolog.Logger
}

func NewAdminService(upstream ports.UpstreamClient, cache *ViewCache, log zerolog.Logger) *AdminService {
	return &AdminService{
		upstream: upstream,
		cache:    cache,
		log:      log.With().Str("component", "admin").Logger(),
	}
}

func (s *AdminService) fetchUsers(ctx context.Context, sess *domain.Session) ([]domain.User, error) {
	if users, ok := cacheGet[[]domain.User](s.cache, sess.ID, ResourceUsers); ok {
		return users, nil
	}
	users, err := s.upstream.ListUsers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceUsers, users)
	return users, nil
}

func (s *AdminService) fetchTeams(ctx context.Context, sess *domain.Session) ([]domain.Team, error) {
	if teams, ok := cacheGet[[]domain.Team](s.cache, sess.ID, ResourceTeams); ok {
		return teams, nil
	}
	teams, err := s.upstream.ListTeams(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceTeams, teams)
	return teams, nil
}

// Overview loads users and teams concurrently. A failed read is logged and
// degrades that collection to empty; the view never hangs on one bad fetch.
func (s *AdminService) Overview(ctx context.Context, sess *domain.Session) (ports.AdminOverview, error) {
	var (
		wg       sync.WaitGroup
		users    []domain.User
		usersErr error
		teams    []domain.Team
		teamsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, usersErr = s.fetchUsers(ctx, sess)
	}()
	go func() {
		defer wg.Done()
		teams, teamsErr = s.fetchTeams(ctx, sess)
	}()
	wg.Wait()

	if usersErr != nil {
		s.log.Error().Err(usersErr).Msg("user fetch failed, rendering empty roster")
		users = nil
	}
	if teamsErr != nil {
		s.log.Error().Err(teamsErr).Msg("team fetch failed, rendering empty list")
		teams = nil
	}

	return ports.AdminOverview{Users: users, Teams: teams}, nil
}

// UpdateRoles replaces a user's role set upstream, then re-fetches the user
// roster. The answer reflects exactly what the backend now holds.
func (s *AdminService) UpdateRoles(ctx context.Context, sess *domain.Session, userID int64, roles []string) ([]domain.User, error) {
	if err := s.upstream.UpdateUserRoles(ctx, sess.Token, userID, roles); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceUsers)
	return s.fetchUsers(ctx, sess)
}

// DeleteUser removes a user by user ID. Team membership may change as a side
// effect, so both collections are invalidated.
func (s *AdminService) DeleteUser(ctx context.Context, sess *domain.Session, userID int64) ([]domain.User, error) {
	if err := s.upstream.DeleteUser(ctx, sess.Token, userID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceUsers, ResourceTeams)
	return s.fetchUsers(ctx, sess)
}

// AvailableUsers lists users of the given role not yet placed on a team.
// Not cached: the result changes with every membership write and is only
// read inside a short-lived selection step.
func (s *AdminService) AvailableUsers(ctx context.Context, sess *domain.Session, role string) ([]domain.User, error) {
	return s.upstream.AvailableUsers(ctx, sess.Token, role)
}

// CreateTeam creates a team and answers with the re-fetched team list.
func (s *AdminService) CreateTeam(ctx context.Context, sess *domain.Session, name string) ([]domain.Team, error) {
	if err := s.upstream.CreateTeam(ctx, sess.Token, name); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceTeams)
	return s.fetchTeams(ctx, sess)
}

// DeleteTeam removes a team and answers with the re-fetched team list.
func (s *AdminService) DeleteTeam(ctx context.Context, sess *domain.Session, teamID int64) ([]domain.Team, error) {
	if err := s.upstream.DeleteTeam(ctx, sess.Token, teamID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceTeams)
	return s.fetchTeams(ctx, sess)
}

// TeamProgress proxies the backend's completion aggregate. Not cached: it is
// read once per detail dialog and staleness here confuses more than it saves.
func (s *AdminService) TeamProgress(ctx context.Context, sess *domain.Session, teamID int64) (domain.TeamProgress, error) {
	return s.upstream.TeamProgress(ctx, sess.Token, teamID)
}

// AddMember places a user on a team and answers with the re-fetched teams.
func (s *AdminService) AddMember(ctx context.Context, sess *domain.Session, teamID, userID int64) ([]domain.Team, error) {
	if err := s.upstream.AddTeamMember(ctx, sess.Token, teamID, userID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceTeams)
	return s.fetchTeams(ctx, sess)
}

// RemoveMember takes a user off a team and answers with the re-fetched teams.
func (s *AdminService) RemoveMember(ctx context.Context, sess *domain.Session, teamID, userID int64) ([]domain.Team, error) {
	if err := s.upstream.RemoveTeamMember(ctx, sess.Token, teamID, userID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(sess.ID, ResourceTeams)
	return s.fetchTeams(ctx, sess)
}

// Audit returns the backend audit trail.
func (s *AdminService) Audit(ctx context.Context, sess *domain.Session) ([]domain.AuditEntry, error) {
	if entries, ok := cacheGet[[]domain.AuditEntry](s.cache, sess.ID, ResourceAudit); ok {
		return entries, nil
	}
	entries, err := s.upstream.ListAudit(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	cacheSet(s.cache, sess.ID, ResourceAudit, entries)
	return entries, nil
}
