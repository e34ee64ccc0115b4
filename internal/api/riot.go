// Package api is the single authenticated entry point to the Riot API.
// Account and match endpoints route by continent, summoner/league/
// mastery endpoints route by platform; the caller passes the value the
// endpoint needs.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"league-tracker/internal/config"
	"league-tracker/internal/constants"

	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

// ErrMissingAPIKey is a configuration error, surfaced before any
// network call is made.
var ErrMissingAPIKey = errors.New("riot api key is not configured")

// Error carries the upstream HTTP status so callers can distinguish
// not-found from transient failures from caller errors.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("riot api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == fasthttp.StatusNotFound
}

// IsTransient reports whether err is a rate limit or upstream 5xx.
func IsTransient(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == fasthttp.StatusTooManyRequests || apiErr.StatusCode >= 500
}

type Client struct {
	apiKey string
	client *fasthttp.Client

	// baseURL overrides the riotgames.com hosts; tests point it at a
	// local server.
	baseURL string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) host(route string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", strings.ToLower(route))
}

func (c *Client) GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*AccountDTO, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.host(routing), url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[AccountDTO](ctx, c, u)
}

func (c *Client) GetSummonerByPUUID(ctx context.Context, platform, puuid string) (*SummonerDTO, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.host(platform), puuid)
	return doRequest[SummonerDTO](ctx, c, u)
}

func (c *Client) GetLeagueEntries(ctx context.Context, platform, summonerID string) ([]LeagueEntryDTO, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", c.host(platform), summonerID)
	entries, err := doRequest[[]LeagueEntryDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *Client) GetChampionMasteryTop(ctx context.Context, platform, puuid string, count int) ([]MasteryDTO, error) {
	u := fmt.Sprintf("%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top?count=%d",
		c.host(platform), puuid, count)
	masteries, err := doRequest[[]MasteryDTO](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *Client) GetMatchIDs(ctx context.Context, routing, puuid string, start, count int) ([]string, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=%d&count=%d",
		c.host(routing), puuid, start, count)
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *Client) GetMatch(ctx context.Context, routing, matchID string) (*MatchDTO, error) {
	u := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.host(routing), matchID)
	return doRequest[MatchDTO](ctx, c, u)
}

// doRequest issues an authenticated GET and decodes the JSON body.
// 429 and 5xx responses are retried with exponential backoff, honoring
// an upstream Retry-After hint; every other non-2xx status surfaces
// immediately as *Error.
func doRequest[T any](ctx context.Context, client *Client, reqURL string) (*T, error) {
	if client.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var result T
	backoff := retry.WithMaxRetries(constants.RetryMaxAttempts-1, retry.NewExponential(constants.RetryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.SetRequestURI(reqURL)
		req.Header.SetMethod(fasthttp.MethodGet)
		req.Header.Set("X-Riot-Token", client.apiKey)

		if deadline, ok := ctx.Deadline(); ok {
			if err := client.client.DoDeadline(req, resp, deadline); err != nil {
				return retry.RetryableError(err)
			}
		} else {
			if err := client.client.Do(req, resp); err != nil {
				return retry.RetryableError(err)
			}
		}

		status := resp.StatusCode()
		if status >= 200 && status < 300 {
			if err := json.Unmarshal(resp.Body(), &result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil
		}

		apiErr := &Error{StatusCode: status, Message: string(resp.Body())}
		if status == fasthttp.StatusTooManyRequests || status >= 500 {
			waitForRetryHint(ctx, resp)
			return retry.RetryableError(apiErr)
		}
		return apiErr
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// waitForRetryHint sleeps for an upstream Retry-After value, capped so
// a hostile header cannot stall the pipeline.
func waitForRetryHint(ctx context.Context, resp *fasthttp.Response) {
	hint := string(resp.Header.Peek("Retry-After"))
	if hint == "" {
		return
	}
	seconds, err := strconv.Atoi(hint)
	if err != nil || seconds <= 0 {
		return
	}
	wait := time.Duration(seconds) * time.Second
	if wait > constants.ExternalAPITimeout {
		wait = constants.ExternalAPITimeout
	}
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
