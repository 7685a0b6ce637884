// Package heroapi fetches hero cards from the public superhero catalogue
// (https://superheroapi.com). Identifiers run from 1 to MaxHeroID.
package heroapi

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/netx"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL = "https://superheroapi.com/api"
	DefaultTimeout = 15 * time.Second
	MaxHeroID      = 731
)

// ErrRemoteFetch wraps every failure to obtain a card.
var ErrRemoteFetch = errors.New("hero fetch failed")

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
	group   singleflight.Group
	logger  logging.Logger

	// randID picks an identifier in [1, MaxHeroID].
	randID func() int
}

func New(cfg Config, logger logging.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger = logger.With("module", "heroapi")

	st := gobreaker.Settings{
		Name:        "heroapi",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		timeout: cfg.Timeout,
		breaker: gobreaker.NewCircuitBreaker(st),
		logger:  logger,
		randID:  func() int { return rand.IntN(MaxHeroID) + 1 },
	}
}

// FetchRandomCard fetches a uniformly chosen hero.
func (c *Client) FetchRandomCard(ctx context.Context) (*models.HeroCard, error) {
	return c.FetchCardByID(ctx, c.randID())
}

// FetchCardByID fetches one hero. Concurrent calls for the same id share a
// single request, which keeps running when the caller that started it goes
// away. A cancelled caller returns its context error without waiting.
func (c *Client) FetchCardByID(ctx context.Context, id int) (*models.HeroCard, error) {
	if id < 1 || id > MaxHeroID {
		return nil, fmt.Errorf("%w: id %d out of range", ErrRemoteFetch, id)
	}

	key := strconv.Itoa(id)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.breaker.Execute(func() (interface{}, error) {
			return c.fetch(sctx, key)
		})
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, ctx.Err())
	case res = <-ch:
	}

	v, err := res.Val, res.Err
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: service temporarily unavailable: %w", ErrRemoteFetch, err)
		}
		return nil, err
	}

	// shared results must not alias between callers
	card := *v.(*models.HeroCard)
	return &card, nil
}

func (c *Client) fetch(ctx context.Context, id string) (*models.HeroCard, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.token, id)

	var resp heroResponse
	if err := netx.GetJSON(ctx, c.http, url, &resp); err != nil {
		c.logger.Warn(ctx, "hero request failed", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}

	card, err := resp.toCard()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}
	return card, nil
}
