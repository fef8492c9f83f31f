package api

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"
	"xray-tracker/internal/config"
	"xray-tracker/internal/domain"
	"xray-tracker/internal/tier"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *ProfileClient {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() { srv.Shutdown() })

	c := NewProfileClient(&config.Config{
		ProfileAPIURL: "http://profiles.test/",
		ProfileAPIKey: "secret",
	}, zerolog.Nop())
	c.client.Dial = func(string) (net.Conn, error) { return ln.Dial() }
	return c
}

func TestProfileClient_GetProfile(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		assert.Equal(t, "/v1/players/p-1", string(ctx.Path()))
		assert.Equal(t, "secret", string(ctx.Request.Header.Peek("Authorization")))

		ctx.Response.Header.Set("X-Ratelimit-Remaining", "41")
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":200,"data":{"puuid":"p-1","summoner_name":"petRoXD","tier":"gold","rank":"II","profile_icon_id":4568}}`)
	})

	profile, err := c.GetProfile(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.PlayerProfile{
		Puuid:         "p-1",
		DisplayName:   "petRoXD",
		Tier:          tier.Gold,
		Division:      tier.DivisionII,
		ProfileIconID: 4568,
	}, profile)
	assert.Equal(t, 41, c.GetRateLimitInfo().Remaining)
}

func TestProfileClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	_, err := c.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "closed", c.BreakerState())
}

func TestProfileClient_ServerErrorsTripBreaker(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		calls.Add(1)
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		_, err := c.GetProfile(context.Background(), "p-1")
		assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	}
	assert.Equal(t, "open", c.BreakerState())

	_, err := c.GetProfile(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, int32(5), calls.Load(), "open breaker must not reach the server")
}

func TestProfileClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(`{"data":`)
	})

	_, err := c.GetProfile(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestProfileClient_CancelledContext(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetProfile(ctx, "p-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestProfileClient_CancelAbandonsInFlightRequest(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(500 * time.Millisecond)
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	start := time.Now()
	_, err := c.GetProfile(ctx, "p-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 300*time.Millisecond)
}

func TestProfileClient_CallerTimeoutsDoNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(50 * time.Millisecond)
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		_, err := c.GetProfile(ctx, "p-1")
		cancel()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}
	assert.Equal(t, "closed", c.BreakerState())

	_, err := c.GetProfile(context.Background(), "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
