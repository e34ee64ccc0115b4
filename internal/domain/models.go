package domain

import "time"

// KDAPerfect is the KDA value reported when a participant has zero
// deaths. It is a qualitative outcome, not a number.
const KDAPerfect = "Perfect"

const (
	QueueSolo = "solo"
	QueueFlex = "flex"
)

// PlayerInfo is keyed by puuid, which never changes. game_name/tag_line
// are a mutable secondary index; renames are absorbed on refresh.
type PlayerInfo struct {
	Puuid         string    `json:"puuid"`
	GameName      string    `json:"gameName"`
	TagLine       string    `json:"tagLine"`
	Server        string    `json:"server"`
	ProfileIconID int       `json:"profileIconId"`
	SummonerLevel int       `json:"summonerLevel"`
	LastFetchAt   time.Time `json:"lastFetchAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// RankedStanding is one row per queue per player, replaced wholesale on
// refresh. An absent queue is represented by UnrankedStanding, never
// omitted.
type RankedStanding struct {
	Queue        string `json:"queue"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	LeaguePoints int    `json:"leaguePoints"`
	WinRate      int    `json:"winRate"`
}

// UnrankedStanding is the explicit default for a queue the player has
// no entry in.
func UnrankedStanding(queue string) RankedStanding {
	return RankedStanding{
		Queue: queue,
		Tier:  "Unranked",
	}
}

// WinRate returns the win percentage rounded to the nearest integer.
func WinRate(wins, losses int) int {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return int(float64(wins)/float64(total)*100 + 0.5)
}

type ChampionMastery struct {
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
}

type RankedEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

// Match facts are immutable once the game ends. GameEndTimestamp is the
// sole ordering key for recent-match queries.
type Match struct {
	MatchID          string        `json:"matchId"`
	GameMode         string        `json:"gameMode"`
	QueueID          int           `json:"queueId"`
	GameDuration     int64         `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	Platform         string        `json:"platform"`
	Participants     []Participant `json:"participants,omitempty"`
}

type Champion struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Image string `json:"image"`
}

type Item struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type Rune struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Tree  string `json:"tree"`
}

type Augment struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Icon   string `json:"iconSmall"`
}

// ArenaData is attached only for Arena-mode matches; its presence is
// the signal the UI keys mode-specific rendering on.
type ArenaData struct {
	PlayerAugments  []Augment `json:"playerAugments"`
	PlayerSubteamID int       `json:"playerSubteamId"`
	Placement       int       `json:"placement"`
}

// Participant is a denormalized snapshot: champion, items and runes are
// stored as resolved objects so later asset-table versions cannot
// change what the match looked like when it was processed.
type Participant struct {
	MatchID          string     `json:"matchId"`
	Puuid            string     `json:"puuid"`
	RiotIDGameName   string     `json:"riotIdGameName"`
	RiotIDTagline    string     `json:"riotIdTagline"`
	Server           string     `json:"server"`
	TeamPosition     string     `json:"teamPosition"`
	ChampLevel       int        `json:"champLevel"`
	Kills            int        `json:"kills"`
	Deaths           int        `json:"deaths"`
	Assists          int        `json:"assists"`
	KDA              string     `json:"kda"`
	VisionScore      int        `json:"visionScore"`
	VisionPerMinute  string     `json:"visionPerMinute"`
	DamageDealt      int        `json:"damageDealt"`
	GoldEarned       int        `json:"goldEarned"`
	WardsPlaced      int        `json:"wardsPlaced"`
	MinionsKilled    int        `json:"minionsKilled"`
	MinionsPerMinute string     `json:"minionsPerMinute"`
	Win              bool       `json:"win"`
	TeamID           int        `json:"teamId"`
	Champion         Champion   `json:"champion"`
	Runes            []Rune     `json:"runes"`
	Items            []Item     `json:"items"`
	ArenaData        *ArenaData `json:"arenaData,omitempty"`
}

// Profile is the unified record returned to the UI layer.
type Profile struct {
	PlayerInfo PlayerInfo        `json:"playerInfo"`
	Solo       RankedStanding    `json:"solo"`
	Flex       RankedStanding    `json:"flex"`
	Masteries  []ChampionMastery `json:"masteries"`
	Entries    []RankedEntry     `json:"entries"`
	Matches    []Match           `json:"matches"`
}
