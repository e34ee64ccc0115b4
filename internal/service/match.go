package service

import (
	"context"

	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/repository"

	"github.com/rs/zerolog"
)

// MatchService reads match history pages out of the local store. It
// never reaches upstream; history grows only through profile refreshes.
type MatchService struct {
	matches *repository.MatchRepository
	logger  zerolog.Logger
}

func NewMatchService(matches *repository.MatchRepository, logger zerolog.Logger) *MatchService {
	return &MatchService{matches: matches, logger: logger}
}

// GetMatches returns a page of stored matches for a player, newest
// first. Out-of-range paging parameters are clamped, not rejected.
func (s *MatchService) GetMatches(ctx context.Context, puuid string, offset, limit int) ([]domain.Match, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = constants.MatchPageDefaultLimit
	}
	if limit > constants.MatchPageLimitMax {
		limit = constants.MatchPageLimitMax
	}
	return s.matches.ListByPUUID(ctx, puuid, offset, limit)
}
