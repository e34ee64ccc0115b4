package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"league-tracker/internal/database"
	"league-tracker/internal/domain"

	"github.com/rs/zerolog"
)

var testDBSeq atomic.Int64

func newTestRepos(t *testing.T) (*PlayerRepository, *MatchRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := database.Open(dsn, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPlayerRepository(db, zerolog.Nop()), NewMatchRepository(db, zerolog.Nop())
}

func testProfile() *domain.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Profile{
		PlayerInfo: domain.PlayerInfo{
			Puuid:         "puuid-kast",
			GameName:      "kast220",
			TagLine:       "EUNE",
			Server:        "eune",
			ProfileIconID: 512,
			SummonerLevel: 230,
			LastFetchAt:   now,
		},
		Solo: domain.RankedStanding{
			Queue: domain.QueueSolo, Tier: "GOLD", Rank: "II",
			Wins: 3, Losses: 7, LeaguePoints: 40, WinRate: 30,
		},
		Flex: domain.UnrankedStanding(domain.QueueFlex),
		Masteries: []domain.ChampionMastery{
			{ChampionID: 103, ChampionName: "Ahri", ChampionLevel: 7, ChampionPoints: 250000},
			{ChampionID: 157, ChampionName: "Yasuo", ChampionLevel: 5, ChampionPoints: 90000},
		},
		Entries: []domain.RankedEntry{
			{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 40, Wins: 3, Losses: 7},
		},
		Matches: []domain.Match{testStoredMatch("EUN1_1", 2000), testStoredMatch("EUN1_2", 1000)},
	}
}

func testStoredMatch(id string, endTS int64) domain.Match {
	return domain.Match{
		MatchID:          id,
		GameMode:         "CLASSIC",
		QueueID:          420,
		GameDuration:     1800,
		GameEndTimestamp: endTS,
		Platform:         "EUN1",
		Participants: []domain.Participant{
			{
				MatchID: id, Puuid: "puuid-kast", RiotIDGameName: "kast220", RiotIDTagline: "EUNE",
				Server: "EUN1", TeamPosition: "MIDDLE", ChampLevel: 15,
				Kills: 10, Deaths: 2, Assists: 5, KDA: "7.50",
				VisionScore: 45, VisionPerMinute: "1.5",
				MinionsKilled: 180, MinionsPerMinute: "6.0",
				Win: true, TeamID: 100,
				Champion: domain.Champion{ID: 103, Name: "Ahri"},
				Runes:    []domain.Rune{{ID: 8005, Name: "Press the Attack", Tree: "Precision"}},
				Items:    []domain.Item{{ID: 3031, Name: "Infinity Edge"}},
			},
		},
	}
}

func TestWriteAndReadProfile(t *testing.T) {
	players, _ := newTestRepos(t)
	ctx := context.Background()

	if err := players.WriteProfile(ctx, testProfile()); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	got, err := players.ReadProfile(ctx, "kast220", "EUNE", "eune")
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if got.PlayerInfo.Puuid != "puuid-kast" {
		t.Errorf("puuid = %q", got.PlayerInfo.Puuid)
	}
	if got.PlayerInfo.LastFetchAt.IsZero() {
		t.Error("last fetch timestamp not persisted")
	}
	if got.Solo.Tier != "GOLD" || got.Solo.WinRate != 30 {
		t.Errorf("solo standing = %+v", got.Solo)
	}
	if got.Flex.Tier != "Unranked" {
		t.Errorf("flex tier = %q, want Unranked", got.Flex.Tier)
	}
	if len(got.Masteries) != 2 || got.Masteries[0].ChampionName != "Ahri" {
		t.Errorf("masteries = %+v", got.Masteries)
	}
	if len(got.Entries) != 1 || got.Entries[0].QueueType != "RANKED_SOLO_5x5" {
		t.Errorf("entries = %+v", got.Entries)
	}
}

func TestReadProfileCaseInsensitiveRiotID(t *testing.T) {
	players, _ := newTestRepos(t)
	ctx := context.Background()

	if err := players.WriteProfile(ctx, testProfile()); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	got, err := players.ReadProfile(ctx, "KAST220", "eune", "EUNE")
	if err != nil {
		t.Fatalf("ReadProfile with different casing: %v", err)
	}
	if got.PlayerInfo.GameName != "kast220" {
		t.Errorf("stored casing = %q, want kast220", got.PlayerInfo.GameName)
	}
}

func TestReadProfileMiss(t *testing.T) {
	players, _ := newTestRepos(t)

	_, err := players.ReadProfile(context.Background(), "nobody", "0000", "eune")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestWriteProfileIdempotent(t *testing.T) {
	players, matches := newTestRepos(t)
	ctx := context.Background()

	profile := testProfile()
	if err := players.WriteProfile(ctx, profile); err != nil {
		t.Fatalf("first WriteProfile: %v", err)
	}
	if err := players.WriteProfile(ctx, profile); err != nil {
		t.Fatalf("second WriteProfile: %v", err)
	}

	got, err := players.ReadProfile(ctx, "kast220", "EUNE", "eune")
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if len(got.Masteries) != 2 {
		t.Errorf("got %d masteries after rewrite, want 2", len(got.Masteries))
	}
	if len(got.Entries) != 1 {
		t.Errorf("got %d entries after rewrite, want 1", len(got.Entries))
	}

	stored, err := matches.ListByPUUID(ctx, "puuid-kast", 0, 10)
	if err != nil {
		t.Fatalf("ListByPUUID: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("got %d matches after rewrite, want 2", len(stored))
	}
}

func TestWriteProfileAbsorbsRename(t *testing.T) {
	players, _ := newTestRepos(t)
	ctx := context.Background()

	profile := testProfile()
	if err := players.WriteProfile(ctx, profile); err != nil {
		t.Fatalf("WriteProfile: %v", err)
	}

	profile.PlayerInfo.GameName = "kast221"
	if err := players.WriteProfile(ctx, profile); err != nil {
		t.Fatalf("WriteProfile after rename: %v", err)
	}

	got, err := players.ReadProfile(ctx, "kast221", "EUNE", "eune")
	if err != nil {
		t.Fatalf("ReadProfile under new name: %v", err)
	}
	if got.PlayerInfo.Puuid != "puuid-kast" {
		t.Errorf("puuid changed across rename: %q", got.PlayerInfo.Puuid)
	}
	if _, err := players.ReadProfile(ctx, "kast220", "EUNE", "eune"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name still resolves after rename: %v", err)
	}
}

func TestListByPUUIDOrderAndPaging(t *testing.T) {
	_, matches := newTestRepos(t)
	ctx := context.Background()

	batch := []domain.Match{
		testStoredMatch("EUN1_old", 1000),
		testStoredMatch("EUN1_new", 3000),
		testStoredMatch("EUN1_mid", 2000),
	}
	if err := matches.InsertBatch(ctx, batch); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	got, err := matches.ListByPUUID(ctx, "puuid-kast", 0, 2)
	if err != nil {
		t.Fatalf("ListByPUUID: %v", err)
	}
	if len(got) != 2 || got[0].MatchID != "EUN1_new" || got[1].MatchID != "EUN1_mid" {
		t.Fatalf("first page = %+v, want EUN1_new then EUN1_mid", got)
	}

	rest, err := matches.ListByPUUID(ctx, "puuid-kast", 2, 2)
	if err != nil {
		t.Fatalf("ListByPUUID offset: %v", err)
	}
	if len(rest) != 1 || rest[0].MatchID != "EUN1_old" {
		t.Fatalf("second page = %+v, want EUN1_old", rest)
	}
}

func TestParticipantSnapshotRoundTrip(t *testing.T) {
	_, matches := newTestRepos(t)
	ctx := context.Background()

	arenaMatch := testStoredMatch("EUN1_arena", 5000)
	arenaMatch.QueueID = 1700
	arenaMatch.GameMode = "CHERRY"
	arenaMatch.Participants[0].ArenaData = &domain.ArenaData{
		PlayerAugments:  []domain.Augment{{ID: 1, Name: "Flashy Dasher", Rarity: "Gold"}},
		PlayerSubteamID: 3,
		Placement:       2,
	}

	if err := matches.InsertBatch(ctx, []domain.Match{arenaMatch, testStoredMatch("EUN1_sr", 4000)}); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	got, err := matches.ListByPUUID(ctx, "puuid-kast", 0, 10)
	if err != nil {
		t.Fatalf("ListByPUUID: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}

	arena := got[0].Participants[0]
	if arena.Champion.Name != "Ahri" || len(arena.Runes) != 1 || len(arena.Items) != 1 {
		t.Errorf("snapshot fields lost: %+v", arena)
	}
	if arena.ArenaData == nil || arena.ArenaData.Placement != 2 || len(arena.ArenaData.PlayerAugments) != 1 {
		t.Errorf("arena snapshot = %+v", arena.ArenaData)
	}
	if got[1].Participants[0].ArenaData != nil {
		t.Error("arena data appeared on a non-arena match")
	}
}
