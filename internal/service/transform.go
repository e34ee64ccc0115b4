package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"league-tracker/internal/api"
	"league-tracker/internal/assets"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Transformer reshapes one raw upstream match payload into the
// normalized match + participant records, resolving every referenced
// asset into a stored snapshot.
type Transformer struct {
	assets *assets.Resolver
	logger zerolog.Logger
}

func NewTransformer(resolver *assets.Resolver, logger zerolog.Logger) *Transformer {
	return &Transformer{assets: resolver, logger: logger}
}

// KDA reports (kills+assists)/deaths to two decimals, or "Perfect" for
// a deathless game.
func KDA(kills, deaths, assists int) string {
	if deaths == 0 {
		return domain.KDAPerfect
	}
	return fmt.Sprintf("%.2f", float64(kills+assists)/float64(deaths))
}

// matchMinutes mirrors the upstream duration convention: gameDuration
// is seconds, and the hour component is discarded.
func matchMinutes(gameDuration int64) int64 {
	return gameDuration % 3600 / 60
}

func perMinute(value int, minutes int64) string {
	if minutes == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(value)/float64(minutes))
}

// Transform produces the normalized match. All participants are
// processed concurrently and the call returns only once every one of
// them has completed; any failure fails the whole match.
func (t *Transformer) Transform(ctx context.Context, raw *api.MatchDTO, platform string) (*domain.Match, error) {
	match := &domain.Match{
		MatchID:          raw.Metadata.MatchID,
		GameMode:         raw.Info.GameMode,
		QueueID:          raw.Info.QueueID,
		GameDuration:     raw.Info.GameDuration,
		GameEndTimestamp: raw.Info.GameEndTimestamp,
		Platform:         platform,
	}

	participants := raw.Info.Participants
	if len(participants) > constants.MaxParticipants {
		t.logger.Warn().
			Str("match_id", match.MatchID).
			Int("count", len(participants)).
			Msg("participant roster exceeds cap, truncating")
		participants = participants[:constants.MaxParticipants]
	}

	minutes := matchMinutes(raw.Info.GameDuration)
	results := make([]domain.Participant, len(participants))

	g, gCtx := errgroup.WithContext(ctx)
	for i := range participants {
		g.Go(func() error {
			p, err := t.transformParticipant(gCtx, &participants[i], match.MatchID, platform, minutes)
			if err != nil {
				return err
			}
			results[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to transform match %s: %w", match.MatchID, err)
	}

	match.Participants = results
	return match, nil
}

func (t *Transformer) transformParticipant(ctx context.Context, raw *api.ParticipantDTO, matchID, platform string, minutes int64) (*domain.Participant, error) {
	minions := raw.TotalMinionsKilled + raw.NeutralMinionsKilled

	p := &domain.Participant{
		MatchID:          matchID,
		Puuid:            raw.Puuid,
		RiotIDGameName:   raw.RiotIDGameName,
		RiotIDTagline:    raw.RiotIDTagline,
		Server:           platform,
		TeamPosition:     raw.TeamPosition,
		ChampLevel:       raw.ChampLevel,
		Kills:            raw.Kills,
		Deaths:           raw.Deaths,
		Assists:          raw.Assists,
		KDA:              KDA(raw.Kills, raw.Deaths, raw.Assists),
		VisionScore:      raw.VisionScore,
		VisionPerMinute:  perMinute(raw.VisionScore, minutes),
		DamageDealt:      raw.TotalDamageDealtToChampions,
		GoldEarned:       raw.GoldEarned,
		WardsPlaced:      raw.WardsPlaced,
		MinionsKilled:    minions,
		MinionsPerMinute: perMinute(minions, minutes),
		Win:              raw.Win,
		TeamID:           raw.TeamID,
	}

	// Champion identity is structurally required; a miss fails the
	// whole match. Items, runes and augments are cosmetic and
	// unresolvable entries are dropped.
	champion, err := t.assets.Champion(raw.ChampionID)
	if err != nil {
		return nil, fmt.Errorf("participant %s: %w", raw.Puuid, err)
	}
	p.Champion = champion

	g, _ := errgroup.WithContext(ctx)
	var itemsMu, runesMu sync.Mutex
	items := make(map[int]domain.Item)
	runes := make(map[int]domain.Rune)

	itemIDs := raw.Items()
	for slot, id := range itemIDs {
		if id == 0 {
			continue // empty slot, omitted from the snapshot
		}
		g.Go(func() error {
			item, err := t.assets.Item(id)
			if err != nil {
				if errors.Is(err, assets.ErrNotFound) {
					return nil
				}
				return err
			}
			itemsMu.Lock()
			items[slot] = item
			itemsMu.Unlock()
			return nil
		})
	}

	runeIDs := raw.Perks.SelectedRunes()
	for order, id := range runeIDs {
		g.Go(func() error {
			rn, err := t.assets.Rune(id)
			if err != nil {
				if errors.Is(err, assets.ErrNotFound) {
					return nil
				}
				return err
			}
			runesMu.Lock()
			runes[order] = rn
			runesMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("participant %s: %w", raw.Puuid, err)
	}

	p.Items = collectOrdered(items)
	p.Runes = collectOrdered(runes)

	arena, err := t.arenaData(raw)
	if err != nil {
		return nil, fmt.Errorf("participant %s: %w", raw.Puuid, err)
	}
	p.ArenaData = arena

	return p, nil
}

// arenaData resolves the augment slots. A participant with no non-zero
// augment slot gets no arena data at all; its presence is what marks
// the match as Arena mode downstream.
func (t *Transformer) arenaData(raw *api.ParticipantDTO) (*domain.ArenaData, error) {
	var augments []domain.Augment
	var seen bool
	for _, id := range raw.Augments() {
		if id == 0 {
			continue
		}
		seen = true
		aug, err := t.assets.Augment(id)
		if err != nil {
			if errors.Is(err, assets.ErrNotFound) {
				continue
			}
			return nil, err
		}
		augments = append(augments, aug)
	}
	if !seen {
		return nil, nil
	}
	return &domain.ArenaData{
		PlayerAugments:  augments,
		PlayerSubteamID: raw.PlayerSubteamID,
		Placement:       raw.Placement,
	}, nil
}

// collectOrdered flattens a slot-indexed map into a slice ordered by
// slot, with gaps (empty or unresolved slots) closed up.
func collectOrdered[T any](m map[int]T) []T {
	slots := make([]int, 0, len(m))
	for slot := range m {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	out := make([]T, 0, len(slots))
	for _, slot := range slots {
		out = append(out, m[slot])
	}
	return out
}

// queueName maps an upstream queue type onto the internal queue key,
// or "" for queues the profile does not track.
func queueName(queueType string) string {
	switch strings.ToUpper(queueType) {
	case "RANKED_SOLO_5X5":
		return domain.QueueSolo
	case "RANKED_FLEX_SR":
		return domain.QueueFlex
	default:
		return ""
	}
}
