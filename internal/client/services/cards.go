package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

var (
	ErrNoOpportunities = errors.New("no draws left today")
	ErrCooldownActive  = errors.New("next draw is not available yet")
)

// Fetcher produces a random hero card from the remote catalogue.
type Fetcher interface {
	FetchRandomCard(ctx context.Context) (*models.HeroCard, error)
}

// DrawResult describes one successful draw. Duplicate is set when the
// drawn hero was already collected; the draw is still spent.
type DrawResult struct {
	Card      *models.HeroCard
	Duplicate bool
	User      *models.User
}

// CardService draws cards for the signed-in player and reports on the
// collection. Registry mutations run on the user worker.
type CardService struct {
	users    *AsyncUserService
	fetcher  Fetcher
	cooldown time.Duration
	logger   logging.Logger
	now      func() time.Time
}

func NewCardService(users *AsyncUserService, fetcher Fetcher, cooldown time.Duration, logger logging.Logger) *CardService {
	return &CardService{
		users:    users,
		fetcher:  fetcher,
		cooldown: cooldown,
		logger:   logger.With("module", "cards"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (c *CardService) current(ctx context.Context) (*models.User, error) {
	u, err := c.users.CurrentUser(ctx).Await(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrNoActiveSession
	}
	return u, nil
}

func (c *CardService) checkAllowance(u *models.User) error {
	if !u.CanObtainCard() {
		return ErrNoOpportunities
	}
	if left := u.RemainingCooldown(c.now(), c.cooldown); left > 0 {
		return fmt.Errorf("%w: %s left", ErrCooldownActive, models.FormatCooldown(left))
	}
	return nil
}

// Cooldown returns the time until the next draw is allowed.
func (c *CardService) Cooldown(ctx context.Context) (time.Duration, error) {
	u, err := c.current(ctx)
	if err != nil {
		return 0, err
	}
	return u.RemainingCooldown(c.now(), c.cooldown), nil
}

// Draw fetches a card and, if the player may still draw, spends one
// opportunity and adds the card to the collection.
func (c *CardService) Draw(ctx context.Context) (*DrawResult, error) {
	u, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.checkAllowance(u); err != nil {
		return nil, err
	}

	card, err := c.fetcher.FetchRandomCard(ctx)
	if err != nil {
		return nil, err
	}

	res, err := Do(c.users, func(users UserService) (*DrawResult, error) {
		u := users.CurrentUser(ctx)
		if u == nil {
			return nil, common.ErrNoActiveSession
		}
		// re-check: another operation may have run since the precheck
		if err := c.checkAllowance(u); err != nil {
			return nil, err
		}

		u.ConsumeOpportunity()
		dup := false
		if err := u.AddCard(card); err != nil {
			if !errors.Is(err, models.ErrDuplicateCard) {
				return nil, err
			}
			dup = true
		}
		if err := users.UpdateUser(ctx, u); err != nil {
			return nil, err
		}
		return &DrawResult{Card: card, Duplicate: dup, User: u}, nil
	}).Await(ctx)
	if err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "card drawn",
		"user", res.User.Username, "card", res.Card.ID, "rarity", res.Card.Rarity, "duplicate", res.Duplicate)
	return res, nil
}

func (c *CardService) Collection(ctx context.Context) ([]*models.HeroCard, error) {
	u, err := c.current(ctx)
	if err != nil {
		return nil, err
	}
	return u.Collection, nil
}

func (c *CardService) Stats(ctx context.Context) (models.CollectionStats, error) {
	u, err := c.current(ctx)
	if err != nil {
		return models.CollectionStats{}, err
	}
	return u.Stats(), nil
}

func (c *CardService) ShareText(ctx context.Context) (string, error) {
	u, err := c.current(ctx)
	if err != nil {
		return "", err
	}
	return u.ShareText(), nil
}
