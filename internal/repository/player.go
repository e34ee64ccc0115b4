package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"league-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned for cache misses on the secondary
// (gameName, tagLine, server) index.
var ErrNotFound = errors.New("profile not found in cache")

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{db: sqlDB, logger: logger}
}

// ReadProfile is the point lookup by the mutable riot-id index. Match
// history is read separately through MatchRepository.
func (r *PlayerRepository) ReadProfile(ctx context.Context, gameName, tagLine, server string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT puuid, game_name, tag_line, server, profile_icon_id, summoner_level,
		       last_fetch_at, created_at, updated_at
		FROM players
		WHERE game_name = ? COLLATE NOCASE AND tag_line = ? COLLATE NOCASE AND server = ?`,
		gameName, tagLine, strings.ToLower(server))

	var info domain.PlayerInfo
	err := row.Scan(&info.Puuid, &info.GameName, &info.TagLine, &info.Server,
		&info.ProfileIconID, &info.SummonerLevel,
		&info.LastFetchAt, &info.CreatedAt, &info.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read player: %w", err)
	}

	profile := &domain.Profile{
		PlayerInfo: info,
		Solo:       domain.UnrankedStanding(domain.QueueSolo),
		Flex:       domain.UnrankedStanding(domain.QueueFlex),
	}

	if err := r.readStandings(ctx, profile); err != nil {
		return nil, err
	}
	if err := r.readMasteries(ctx, profile); err != nil {
		return nil, err
	}
	if err := r.readEntries(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *PlayerRepository) readStandings(ctx context.Context, profile *domain.Profile) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT queue, tier, rank, wins, losses, league_points, win_rate
		FROM ranked_standings WHERE puuid = ?`, profile.PlayerInfo.Puuid)
	if err != nil {
		return fmt.Errorf("failed to read standings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.RankedStanding
		if err := rows.Scan(&s.Queue, &s.Tier, &s.Rank, &s.Wins, &s.Losses, &s.LeaguePoints, &s.WinRate); err != nil {
			return fmt.Errorf("failed to scan standing: %w", err)
		}
		switch s.Queue {
		case domain.QueueSolo:
			profile.Solo = s
		case domain.QueueFlex:
			profile.Flex = s
		}
	}
	return rows.Err()
}

func (r *PlayerRepository) readMasteries(ctx context.Context, profile *domain.Profile) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT champion_id, champion_level, champion_points, last_play_time
		FROM champion_masteries WHERE puuid = ?
		ORDER BY champion_points DESC`, profile.PlayerInfo.Puuid)
	if err != nil {
		return fmt.Errorf("failed to read masteries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m domain.ChampionMastery
		if err := rows.Scan(&m.ChampionID, &m.ChampionLevel, &m.ChampionPoints, &m.LastPlayTime); err != nil {
			return fmt.Errorf("failed to scan mastery: %w", err)
		}
		profile.Masteries = append(profile.Masteries, m)
	}
	return rows.Err()
}

func (r *PlayerRepository) readEntries(ctx context.Context, profile *domain.Profile) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT queue_type, tier, rank, league_points, wins, losses, hot_streak
		FROM ranked_entries WHERE puuid = ?`, profile.PlayerInfo.Puuid)
	if err != nil {
		return fmt.Errorf("failed to read ranked entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.RankedEntry
		if err := rows.Scan(&e.QueueType, &e.Tier, &e.Rank, &e.LeaguePoints, &e.Wins, &e.Losses, &e.HotStreak); err != nil {
			return fmt.Errorf("failed to scan ranked entry: %w", err)
		}
		profile.Entries = append(profile.Entries, e)
	}
	return rows.Err()
}

// WriteProfile persists one aggregation result as a single transaction:
// player upserted by puuid, standings upserted by (puuid, queue),
// mastery and ranked-entry snapshots replaced wholesale, matches and
// participants inserted with duplicate-skip.
func (r *PlayerRepository) WriteProfile(ctx context.Context, profile *domain.Profile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	puuid := profile.PlayerInfo.Puuid

	if err := r.upsertPlayer(ctx, tx, &profile.PlayerInfo, now); err != nil {
		return err
	}
	for _, standing := range []domain.RankedStanding{profile.Solo, profile.Flex} {
		if err := r.upsertStanding(ctx, tx, puuid, standing, now); err != nil {
			return err
		}
	}
	if err := r.replaceMasteries(ctx, tx, puuid, profile.Masteries); err != nil {
		return err
	}
	if err := r.replaceEntries(ctx, tx, puuid, profile.Entries); err != nil {
		return err
	}
	for i := range profile.Matches {
		if err := insertMatchTx(ctx, tx, &profile.Matches[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile write: %w", err)
	}

	r.logger.Debug().
		Str("puuid", puuid).
		Int("masteries", len(profile.Masteries)).
		Int("matches", len(profile.Matches)).
		Msg("profile written")
	return nil
}

func (r *PlayerRepository) upsertPlayer(ctx context.Context, tx *sql.Tx, info *domain.PlayerInfo, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO players (puuid, game_name, tag_line, server, profile_icon_id, summoner_level,
		                     last_fetch_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			server = excluded.server,
			profile_icon_id = excluded.profile_icon_id,
			summoner_level = excluded.summoner_level,
			last_fetch_at = excluded.last_fetch_at,
			updated_at = excluded.updated_at`,
		info.Puuid, info.GameName, info.TagLine, strings.ToLower(info.Server),
		info.ProfileIconID, info.SummonerLevel, now, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", info.Puuid, err)
	}
	return nil
}

func (r *PlayerRepository) upsertStanding(ctx context.Context, tx *sql.Tx, puuid string, s domain.RankedStanding, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ranked_standings (puuid, queue, tier, rank, wins, losses, league_points, win_rate, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid, queue) DO UPDATE SET
			tier = excluded.tier,
			rank = excluded.rank,
			wins = excluded.wins,
			losses = excluded.losses,
			league_points = excluded.league_points,
			win_rate = excluded.win_rate,
			updated_at = excluded.updated_at`,
		puuid, s.Queue, s.Tier, s.Rank, s.Wins, s.Losses, s.LeaguePoints, s.WinRate, now)
	if err != nil {
		return fmt.Errorf("failed to upsert %s standing for %s: %w", s.Queue, puuid, err)
	}
	return nil
}

// Mastery and ranked-entry snapshots have no stable natural key across
// refreshes, so they are deleted and recreated under fresh row ids.
func (r *PlayerRepository) replaceMasteries(ctx context.Context, tx *sql.Tx, puuid string, masteries []domain.ChampionMastery) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM champion_masteries WHERE puuid = ?`, puuid); err != nil {
		return fmt.Errorf("failed to clear masteries for %s: %w", puuid, err)
	}
	for _, m := range masteries {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO champion_masteries (id, puuid, champion_id, champion_level, champion_points, last_play_time)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, puuid, m.ChampionID, m.ChampionLevel, m.ChampionPoints, m.LastPlayTime)
		if err != nil {
			return fmt.Errorf("failed to insert mastery for %s: %w", puuid, err)
		}
	}
	return nil
}

func (r *PlayerRepository) replaceEntries(ctx context.Context, tx *sql.Tx, puuid string, entries []domain.RankedEntry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM ranked_entries WHERE puuid = ?`, puuid); err != nil {
		return fmt.Errorf("failed to clear ranked entries for %s: %w", puuid, err)
	}
	for _, e := range entries {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ranked_entries (id, puuid, queue_type, tier, rank, league_points, wins, losses, hot_streak)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, puuid, e.QueueType, e.Tier, e.Rank, e.LeaguePoints, e.Wins, e.Losses, e.HotStreak)
		if err != nil {
			return fmt.Errorf("failed to insert ranked entry for %s: %w", puuid, err)
		}
	}
	return nil
}
