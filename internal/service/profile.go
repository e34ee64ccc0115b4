package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"league-tracker/internal/api"
	"league-tracker/internal/assets"
	"league-tracker/internal/config"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/region"
	"league-tracker/internal/repository"
	"league-tracker/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnknownServer   = errors.New("unknown server code")
	ErrProfileNotFound = errors.New("no such player")
)

// RiotAPI is the upstream surface the aggregator consumes. *api.Client
// satisfies it; tests substitute a fake.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*api.AccountDTO, error)
	GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*api.SummonerDTO, error)
	GetLeagueEntries(ctx context.Context, platform, summonerID string) ([]api.LeagueEntryDTO, error)
	GetChampionMasteryTop(ctx context.Context, platform, puuid string, count int) ([]api.MasteryDTO, error)
	GetMatchIDs(ctx context.Context, routing, puuid string, start, count int) ([]string, error)
	GetMatch(ctx context.Context, routing, matchID string) (*api.MatchDTO, error)
}

// ProfileService owns the refresh decision and the upstream
// aggregation pipeline that feeds the local cache.
type ProfileService struct {
	riot        RiotAPI
	players     *repository.PlayerRepository
	matches     *repository.MatchRepository
	transformer *Transformer
	assets      *assets.Resolver
	puuidCache  *storage.RedisClient
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

func NewProfileService(
	riot RiotAPI,
	players *repository.PlayerRepository,
	matches *repository.MatchRepository,
	transformer *Transformer,
	resolver *assets.Resolver,
	puuidCache *storage.RedisClient,
	cfg *config.Config,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		riot:        riot,
		players:     players,
		matches:     matches,
		transformer: transformer,
		assets:      resolver,
		puuidCache:  puuidCache,
		cacheTTL:    cfg.CacheTTL,
		logger:      logger,
	}
}

// GetProfile serves a profile from the local cache when it is fresh
// enough, and otherwise rebuilds it from upstream and persists the
// result. force skips the cache entirely.
func (s *ProfileService) GetProfile(ctx context.Context, server, gameName, tagLine string, force bool) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if !force {
		cached, err := s.players.ReadProfile(ctx, gameName, tagLine, server)
		if err == nil && s.isFresh(cached.PlayerInfo.LastFetchAt) {
			matches, err := s.matches.ListByPUUID(ctx, cached.PlayerInfo.Puuid, 0, constants.MatchPageDefaultLimit)
			if err != nil {
				return nil, err
			}
			cached.Matches = matches
			s.logger.Debug().
				Str("puuid", cached.PlayerInfo.Puuid).
				Msg("serving profile from cache")
			return cached, nil
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	profile, err := s.Aggregate(ctx, server, gameName, tagLine)
	if err != nil {
		return nil, err
	}
	if err := s.players.WriteProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}
	return profile, nil
}

// isFresh reports whether a cached profile is still usable. A TTL of
// zero disables expiry: cached data lives until a forced refresh.
func (s *ProfileService) isFresh(lastFetch time.Time) bool {
	if lastFetch.IsZero() {
		return false
	}
	if s.cacheTTL == 0 {
		return true
	}
	return time.Since(lastFetch) <= s.cacheTTL
}

// Aggregate builds a complete profile from upstream. The identity
// chain (account, summoner) is sequential because each step feeds the
// next; match details fan out once the id window is known.
func (s *ProfileService) Aggregate(ctx context.Context, server, gameName, tagLine string) (*domain.Profile, error) {
	routing := region.ToRouting(server)
	platform := region.ToPlatform(server)
	if routing == region.Unknown || platform == region.Unknown {
		return nil, fmt.Errorf("%w: %q", ErrUnknownServer, server)
	}

	puuid, gameName, tagLine, err := s.resolveAccount(ctx, routing, server, gameName, tagLine)
	if err != nil {
		return nil, err
	}

	summoner, err := s.riot.GetSummonerByPUUID(ctx, platform, puuid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch summoner: %w", err)
	}

	entries, err := s.riot.GetLeagueEntries(ctx, platform, summoner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch league entries: %w", err)
	}

	rawMasteries, err := s.riot.GetChampionMasteryTop(ctx, platform, puuid, constants.MasteryTopCount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch champion masteries: %w", err)
	}

	matches, err := s.fetchRecentMatches(ctx, routing, platform, puuid)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		PlayerInfo: domain.PlayerInfo{
			Puuid:         puuid,
			GameName:      gameName,
			TagLine:       tagLine,
			Server:        server,
			ProfileIconID: summoner.ProfileIconID,
			SummonerLevel: summoner.SummonerLevel,
			LastFetchAt:   now,
		},
		Solo:      domain.UnrankedStanding(domain.QueueSolo),
		Flex:      domain.UnrankedStanding(domain.QueueFlex),
		Masteries: s.buildMasteries(rawMasteries),
		Entries:   buildEntries(entries),
		Matches:   matches,
	}

	for _, entry := range entries {
		queue := queueName(entry.QueueType)
		if queue == "" {
			continue
		}
		standing := domain.RankedStanding{
			Queue:        queue,
			Tier:         entry.Tier,
			Rank:         entry.Rank,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
			LeaguePoints: entry.LeaguePoints,
			WinRate:      domain.WinRate(entry.Wins, entry.Losses),
		}
		switch queue {
		case domain.QueueSolo:
			profile.Solo = standing
		case domain.QueueFlex:
			profile.Flex = standing
		}
	}

	s.logger.Info().
		Str("puuid", puuid).
		Str("server", server).
		Int("matches", len(matches)).
		Msg("aggregated profile from upstream")
	return profile, nil
}

// resolveAccount turns a riot id into a puuid, consulting the puuid
// cache first. On a cache hit the account call is skipped and the
// caller-supplied name casing is kept; the next cold lookup absorbs
// any rename.
func (s *ProfileService) resolveAccount(ctx context.Context, routing, server, gameName, tagLine string) (string, string, string, error) {
	if puuid := s.puuidCache.GetPUUID(ctx, gameName, tagLine, server); puuid != "" {
		return puuid, gameName, tagLine, nil
	}

	account, err := s.riot.GetAccountByRiotID(ctx, routing, gameName, tagLine)
	if err != nil {
		if api.IsNotFound(err) {
			return "", "", "", fmt.Errorf("%w: %s#%s", ErrProfileNotFound, gameName, tagLine)
		}
		return "", "", "", fmt.Errorf("failed to resolve account: %w", err)
	}

	s.puuidCache.SetPUUID(ctx, account.GameName, account.TagLine, server, account.Puuid)
	return account.Puuid, account.GameName, account.TagLine, nil
}

// fetchRecentMatches pulls the recent id window, then fetches and
// transforms the newest ids concurrently. Any failure fails the whole
// batch; order follows the upstream id list (newest first).
func (s *ProfileService) fetchRecentMatches(ctx context.Context, routing, platform, puuid string) ([]domain.Match, error) {
	ids, err := s.riot.GetMatchIDs(ctx, routing, puuid, 0, constants.MatchIDWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match ids: %w", err)
	}
	if len(ids) > constants.MatchDetailCount {
		ids = ids[:constants.MatchDetailCount]
	}

	matches := make([]domain.Match, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			raw, err := s.riot.GetMatch(gCtx, routing, id)
			if err != nil {
				return fmt.Errorf("failed to fetch match %s: %w", id, err)
			}
			match, err := s.transformer.Transform(gCtx, raw, platform)
			if err != nil {
				return err
			}
			matches[i] = *match
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matches, nil
}

// buildMasteries resolves champion names; an unknown champion keeps
// its id with an empty name rather than dropping the row.
func (s *ProfileService) buildMasteries(raw []api.MasteryDTO) []domain.ChampionMastery {
	out := make([]domain.ChampionMastery, 0, len(raw))
	for _, m := range raw {
		mastery := domain.ChampionMastery{
			ChampionID:     m.ChampionID,
			ChampionLevel:  m.ChampionLevel,
			ChampionPoints: m.ChampionPoints,
			LastPlayTime:   m.LastPlayTime,
		}
		if champ, err := s.assets.Champion(m.ChampionID); err == nil {
			mastery.ChampionName = champ.Name
		}
		out = append(out, mastery)
	}
	return out
}

func buildEntries(raw []api.LeagueEntryDTO) []domain.RankedEntry {
	out := make([]domain.RankedEntry, 0, len(raw))
	for _, e := range raw {
		out = append(out, domain.RankedEntry{
			QueueType:    e.QueueType,
			Tier:         e.Tier,
			Rank:         e.Rank,
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
			HotStreak:    e.HotStreak,
		})
	}
	return out
}
