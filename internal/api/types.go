package api

type AccountDTO struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type SummonerDTO struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntryDTO struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"` // RANKED_SOLO_5x5, RANKED_FLEX_SR
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
}

type MasteryDTO struct {
	Puuid          string `json:"puuid"`
	ChampionID     int    `json:"championId"`
	ChampionLevel  int    `json:"championLevel"`
	ChampionPoints int    `json:"championPoints"`
	LastPlayTime   int64  `json:"lastPlayTime"`
}

type MatchDTO struct {
	Metadata MatchMetadataDTO `json:"metadata"`
	Info     MatchInfoDTO     `json:"info"`
}

type MatchMetadataDTO struct {
	MatchID string `json:"matchId"`
}

type MatchInfoDTO struct {
	GameMode         string           `json:"gameMode"`
	QueueID          int              `json:"queueId"`
	GameDuration     int64            `json:"gameDuration"`
	GameEndTimestamp int64            `json:"gameEndTimestamp"`
	Participants     []ParticipantDTO `json:"participants"`
}

type ParticipantDTO struct {
	Puuid          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	ChampionID     int    `json:"championId"`
	ChampLevel     int    `json:"champLevel"`
	TeamPosition   string `json:"teamPosition"`
	TeamID         int    `json:"teamId"`
	Win            bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	VisionScore                 int `json:"visionScore"`
	WardsPlaced                 int `json:"wardsPlaced"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	GoldEarned                  int `json:"goldEarned"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`

	Perks PerksDTO `json:"perks"`

	// Arena-mode fields; zero when the match is not Arena.
	PlayerAugment1  int `json:"playerAugment1"`
	PlayerAugment2  int `json:"playerAugment2"`
	PlayerAugment3  int `json:"playerAugment3"`
	PlayerAugment4  int `json:"playerAugment4"`
	PlayerAugment5  int `json:"playerAugment5"`
	PlayerAugment6  int `json:"playerAugment6"`
	PlayerSubteamID int `json:"playerSubteamId"`
	Placement       int `json:"placement"`
}

// Items lists the six slots in order; a zero means an empty slot.
func (p *ParticipantDTO) Items() []int {
	return []int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5}
}

// Augments lists the six augment slots in order; a zero means unused.
func (p *ParticipantDTO) Augments() []int {
	return []int{
		p.PlayerAugment1, p.PlayerAugment2, p.PlayerAugment3,
		p.PlayerAugment4, p.PlayerAugment5, p.PlayerAugment6,
	}
}

type PerksDTO struct {
	Styles []PerkStyleDTO `json:"styles"`
}

type PerkStyleDTO struct {
	Description string             `json:"description"`
	Style       int                `json:"style"`
	Selections  []PerkSelectionDTO `json:"selections"`
}

type PerkSelectionDTO struct {
	Perk int `json:"perk"`
}

// SelectedRunes flattens the nested style/selection structure into the
// ordered list of selected rune ids.
func (p PerksDTO) SelectedRunes() []int {
	var runes []int
	for _, style := range p.Styles {
		for _, sel := range style.Selections {
			runes = append(runes, sel.Perk)
		}
	}
	return runes
}
