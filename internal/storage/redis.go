// Package storage provides the optional Redis cache that fronts
// riot-id to puuid resolution. The service runs fine without it; a
// disabled client answers every read with a miss.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RedisClient struct {
	client  *redis.Client
	enabled bool
	logger  zerolog.Logger
}

func NewRedisClient(cfg *config.Config, logger zerolog.Logger) *RedisClient {
	if cfg.RedisURL == "" {
		logger.Info().Msg("redis not configured, puuid cache disabled")
		return &RedisClient{logger: logger}
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to parse REDIS_URL, puuid cache disabled")
		return &RedisClient{logger: logger}
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, puuid cache disabled")
		return &RedisClient{logger: logger}
	}

	logger.Info().Msg("redis connected")
	return &RedisClient{client: client, enabled: true, logger: logger}
}

func puuidKey(gameName, tagLine, server string) string {
	return fmt.Sprintf("puuid:%s:%s#%s",
		strings.ToLower(server), strings.ToLower(gameName), strings.ToLower(tagLine))
}

// GetPUUID returns the cached puuid for a riot id, or "" on a miss.
// Cache failures degrade to a miss; the caller re-resolves upstream.
func (r *RedisClient) GetPUUID(ctx context.Context, gameName, tagLine, server string) string {
	if !r.enabled {
		return ""
	}
	val, err := r.client.Get(ctx, puuidKey(gameName, tagLine, server)).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		r.logger.Warn().Err(err).Msg("puuid cache read failed")
		return ""
	}
	return val
}

// SetPUUID caches a resolved puuid. Riot ids can be reassigned after a
// rename, so entries expire rather than living forever.
func (r *RedisClient) SetPUUID(ctx context.Context, gameName, tagLine, server, puuid string) {
	if !r.enabled || puuid == "" {
		return
	}
	if err := r.client.Set(ctx, puuidKey(gameName, tagLine, server), puuid, constants.PuuidCacheTTL).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("puuid cache write failed")
	}
}

func (r *RedisClient) Close() error {
	if !r.enabled {
		return nil
	}
	return r.client.Close()
}
