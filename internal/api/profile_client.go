package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"xray-tracker/internal/config"
	"xray-tracker/internal/constants"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/tier"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// ProfileClient reads player profiles from the player-data service. It is the
// alternative to the local players table when PROFILE_SOURCE=remote.
type ProfileClient struct {
	baseURL     string
	apiKey      string
	client      *fasthttp.Client
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*domain.PlayerProfile]
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewProfileClient(cfg *config.Config, logger zerolog.Logger) *ProfileClient {
	c := &ProfileClient{
		baseURL: strings.TrimRight(cfg.ProfileAPIURL, "/"),
		apiKey:  cfg.ProfileAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     constants.ProfileAPIMaxConnsPerHost,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Every(time.Minute/constants.ProfileAPIRequestsPerMinute), constants.ProfileAPIBurst),
		logger:  logger.With().Str("component", "profile_client").Logger(),
		rateLimit: RateLimitInfo{
			Limit:     constants.ProfileAPIRequestsPerMinute,
			Remaining: constants.ProfileAPIRequestsPerMinute,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}

	c.breaker = gobreaker.NewCircuitBreaker[*domain.PlayerProfile](gobreaker.Settings{
		Name:        "profile-api",
		MaxRequests: constants.BreakerHalfOpenRequests,
		Interval:    constants.BreakerInterval,
		Timeout:     constants.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= constants.BreakerFailureThreshold
		},
		// missing players and cancelled callers are not outages
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, domain.ErrNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return c
}

func (c *ProfileClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *ProfileClient) BreakerState() string {
	return c.breaker.State().String()
}

// GetProfile returns domain.ErrNotFound for unknown players and
// domain.ErrUpstreamUnavailable when the service cannot answer.
func (c *ProfileClient) GetProfile(ctx context.Context, puuid string) (*domain.PlayerProfile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: rate limit: %v", domain.ErrUpstreamUnavailable, err)
	}

	profile, err := c.breaker.Execute(func() (*domain.PlayerProfile, error) {
		endpoint := fmt.Sprintf("%s/v1/players/%s", c.baseURL, url.PathEscape(puuid))
		resp, err := doRequest[ProfileResponse](ctx, c, endpoint)
		if err != nil {
			return nil, err
		}
		return resp.Data.toProfile(), nil
	})

	switch {
	case err == nil:
		return profile, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	default:
		return nil, err
	}
}

func (c *ProfileClient) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func doRequest[T any](ctx context.Context, client *ProfileClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	release := func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if client.apiKey != "" {
		req.Header.Set("Authorization", client.apiKey)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.ExternalAPITimeout)
	}

	// DoDeadline ignores cancellation, so the caller stops waiting on ctx
	done := make(chan error, 1)
	go func() { done <- client.client.DoDeadline(req, resp, deadline) }()

	var err error
	select {
	case <-ctx.Done():
		// req and resp belong to the in-flight call until it returns
		go func() {
			<-done
			release()
		}()
		return nil, ctx.Err()
	case err = <-done:
	}
	defer release()

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// the caller's deadline was the request deadline
		if ok && errors.Is(err, fasthttp.ErrTimeout) {
			return nil, context.DeadlineExceeded
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	client.updateRateLimit(resp)

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return nil, domain.ErrNotFound
	case status != fasthttp.StatusOK:
		return nil, fmt.Errorf("%w: API error: %d", domain.ErrUpstreamUnavailable, status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", domain.ErrUpstreamUnavailable, err)
	}
	return &result, nil
}

type ProfileResponse struct {
	Status int         `json:"status"`
	Data   ProfileData `json:"data"`
}

type ProfileData struct {
	Puuid         string `json:"puuid"`
	SummonerName  string `json:"summoner_name"`
	Tier          string `json:"tier"`
	Rank          string `json:"rank"`
	ProfileIconID int    `json:"profile_icon_id"`
}

func (d ProfileData) toProfile() *domain.PlayerProfile {
	div, _ := tier.ParseDivision(d.Rank)
	return &domain.PlayerProfile{
		Puuid:         d.Puuid,
		DisplayName:   d.SummonerName,
		Tier:          tier.Name(strings.ToUpper(d.Tier)),
		Division:      div,
		ProfileIconID: d.ProfileIconID,
	}
}
