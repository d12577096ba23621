package service

import (
	"context"
	"errors"

	"github.com/evansarr33/sav-simulateur/internal/domain"
	"github.com/google/uuid"
)

// AdminService serves the trainer dashboard.
type AdminService struct {
	profileRepo    domain.ProfileRepository
	sessionRepo    domain.SessionRepository
	statsRepo      domain.StatsRepository
	recentSessions int
}

// NewAdminService creates a new admin service
func NewAdminService(
	profileRepo domain.ProfileRepository,
	sessionRepo domain.SessionRepository,
	statsRepo domain.StatsRepository,
	recentSessions int,
) *AdminService {
	if recentSessions <= 0 {
		recentSessions = 50
	}
	return &AdminService{
		profileRepo:    profileRepo,
		sessionRepo:    sessionRepo,
		statsRepo:      statsRepo,
		recentSessions: recentSessions,
	}
}

// Summary returns the aggregate KPIs plus the most recent sessions. Only
// callers whose profile carries the trainer role may see it.
func (s *AdminService) Summary(ctx context.Context, callerID uuid.UUID) (*domain.AdminSummary, error) {
	profile, err := s.profileRepo.Get(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoRows) {
			return nil, domain.Forbidden("trainer role required")
		}
		return nil, domain.UpstreamError("failed to load profile", err)
	}
	if profile.Role != domain.RoleTrainer {
		return nil, domain.Forbidden("trainer role required")
	}

	kpis, err := s.statsRepo.KPIs(ctx)
	if err != nil {
		return nil, domain.UpstreamError("failed to compute KPIs", err)
	}

	sessions, err := s.sessionRepo.ListRecent(ctx, s.recentSessions)
	if err != nil {
		return nil, domain.UpstreamError("failed to list sessions", err)
	}

	return &domain.AdminSummary{KPIs: *kpis, Sessions: sessions}, nil
}
