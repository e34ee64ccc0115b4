package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{db: sqlDB, logger: logger}
}

// InsertBatch stores matches and their participants in one
// transaction. Matches are immutable, so rows that already exist are
// skipped, not rewritten.
func (r *MatchRepository) InsertBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range matches {
		if err := insertMatchTx(ctx, tx, &matches[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListByPUUID returns the matches a player appeared in, newest first by
// gameEndTimestamp, with full participant rosters attached.
func (r *MatchRepository) ListByPUUID(ctx context.Context, puuid string, offset, limit int) ([]domain.Match, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.match_id, m.game_mode, m.queue_id, m.game_duration, m.game_end_timestamp, m.platform
		FROM matches m
		JOIN match_participants mp ON mp.match_id = m.match_id
		WHERE mp.puuid = ?
		ORDER BY m.game_end_timestamp DESC
		LIMIT ? OFFSET ?`, puuid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.MatchID, &m.GameMode, &m.QueueID, &m.GameDuration, &m.GameEndTimestamp, &m.Platform); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range matches {
		participants, err := r.participantsByMatch(ctx, matches[i].MatchID)
		if err != nil {
			return nil, err
		}
		matches[i].Participants = participants
	}
	return matches, nil
}

func (r *MatchRepository) participantsByMatch(ctx context.Context, matchID string) ([]domain.Participant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT match_id, puuid, riot_id_game_name, riot_id_tagline, server, team_position,
		       champ_level, kills, deaths, assists, kda, vision_score, vision_per_minute,
		       damage_dealt, gold_earned, wards_placed, minions_killed, minions_per_minute,
		       win, team_id, champion, runes, items, arena_data
		FROM match_participants WHERE match_id = ?`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to read participants for %s: %w", matchID, err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		var p domain.Participant
		var championJSON, runesJSON, itemsJSON string
		var arenaJSON sql.NullString

		err := rows.Scan(&p.MatchID, &p.Puuid, &p.RiotIDGameName, &p.RiotIDTagline, &p.Server,
			&p.TeamPosition, &p.ChampLevel, &p.Kills, &p.Deaths, &p.Assists, &p.KDA,
			&p.VisionScore, &p.VisionPerMinute, &p.DamageDealt, &p.GoldEarned, &p.WardsPlaced,
			&p.MinionsKilled, &p.MinionsPerMinute, &p.Win, &p.TeamID,
			&championJSON, &runesJSON, &itemsJSON, &arenaJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}

		if err := json.Unmarshal([]byte(championJSON), &p.Champion); err != nil {
			return nil, fmt.Errorf("corrupt champion snapshot for %s/%s: %w", matchID, p.Puuid, err)
		}
		if err := json.Unmarshal([]byte(runesJSON), &p.Runes); err != nil {
			return nil, fmt.Errorf("corrupt rune snapshot for %s/%s: %w", matchID, p.Puuid, err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &p.Items); err != nil {
			return nil, fmt.Errorf("corrupt item snapshot for %s/%s: %w", matchID, p.Puuid, err)
		}
		if arenaJSON.Valid {
			p.ArenaData = &domain.ArenaData{}
			if err := json.Unmarshal([]byte(arenaJSON.String), p.ArenaData); err != nil {
				return nil, fmt.Errorf("corrupt arena snapshot for %s/%s: %w", matchID, p.Puuid, err)
			}
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// insertMatchTx inserts one match and its participants with
// duplicate-skip semantics, inside the caller's transaction.
func insertMatchTx(ctx context.Context, tx *sql.Tx, m *domain.Match) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO matches (match_id, game_mode, queue_id, game_duration, game_end_timestamp, platform, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id) DO NOTHING`,
		m.MatchID, m.GameMode, m.QueueID, m.GameDuration, m.GameEndTimestamp, m.Platform, time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.MatchID, err)
	}

	for i := range m.Participants {
		if err := insertParticipantTx(ctx, tx, &m.Participants[i]); err != nil {
			return err
		}
	}
	return nil
}

func insertParticipantTx(ctx context.Context, tx *sql.Tx, p *domain.Participant) error {
	championJSON, err := json.Marshal(p.Champion)
	if err != nil {
		return fmt.Errorf("failed to marshal champion snapshot: %w", err)
	}
	runesJSON, err := json.Marshal(p.Runes)
	if err != nil {
		return fmt.Errorf("failed to marshal rune snapshot: %w", err)
	}
	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal item snapshot: %w", err)
	}

	var arenaJSON any
	if p.ArenaData != nil {
		raw, err := json.Marshal(p.ArenaData)
		if err != nil {
			return fmt.Errorf("failed to marshal arena snapshot: %w", err)
		}
		arenaJSON = string(raw)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO match_participants (match_id, puuid, riot_id_game_name, riot_id_tagline, server,
			team_position, champ_level, kills, deaths, assists, kda, vision_score, vision_per_minute,
			damage_dealt, gold_earned, wards_placed, minions_killed, minions_per_minute,
			win, team_id, champion, runes, items, arena_data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_id, puuid) DO NOTHING`,
		p.MatchID, p.Puuid, p.RiotIDGameName, p.RiotIDTagline, p.Server,
		p.TeamPosition, p.ChampLevel, p.Kills, p.Deaths, p.Assists, p.KDA,
		p.VisionScore, p.VisionPerMinute, p.DamageDealt, p.GoldEarned, p.WardsPlaced,
		p.MinionsKilled, p.MinionsPerMinute, p.Win, p.TeamID,
		string(championJSON), string(runesJSON), string(itemsJSON), arenaJSON)
	if err != nil {
		return fmt.Errorf("failed to insert participant %s/%s: %w", p.MatchID, p.Puuid, err)
	}
	return nil
}
