package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	// MatchIDWindow is how many match ids are requested upstream;
	// MatchDetailCount is how many of those get full detail fetches.
	MatchIDWindow    = 100
	MatchDetailCount = 5

	MasteryTopCount = 10

	// MaxParticipants caps stored rosters regardless of game mode.
	MaxParticipants = 16
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	RetryMaxAttempts = 4
	RetryBaseDelay   = 500 * time.Millisecond
	PuuidCacheTTL    = 24 * time.Hour
)

const (
	MatchPageDefaultLimit = 5
	MatchPageLimitMax     = 50
)

const (
	ShutdownTimeout = 5 * time.Second
)
