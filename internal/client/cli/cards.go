package cli

import (
	"context"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
)

func (a *App) Draw(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	a.println("Summoning a hero...")
	res, err := a.cards.Draw(ctx)
	if err != nil {
		return err
	}

	renderCard(a.out, res.Card)
	if res.Duplicate {
		a.println("You already own this hero. The draw still counts.")
	}
	a.printf("Draws left today: %d\n", res.User.DailyOpportunities)
	return nil
}

func (a *App) Collection(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	cards, err := a.cards.Collection(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		a.println("Your collection is empty. Try 'draw'.")
		return nil
	}
	return renderCollection(a.out, cards)
}

func (a *App) Stats(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	s, err := a.cards.Stats(ctx)
	if err != nil {
		return err
	}
	return renderStats(a.out, s)
}

func (a *App) Cooldown(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	left, err := a.cards.Cooldown(ctx)
	if err != nil {
		return err
	}
	a.printf("Next draw: %s\n", models.FormatCooldown(left))
	return nil
}

// Reset restores today's draws after confirmation.
func (a *App) Reset(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "Reset today's draws?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	u, err := a.users.ResetDailyOpportunities(ctx).Await(ctx)
	if err != nil {
		return err
	}
	a.printf("Draws reset to %d.\n", u.DailyOpportunities)
	return nil
}

func (a *App) Share(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	txt, err := a.cards.ShareText(ctx)
	if err != nil {
		return err
	}
	a.println(txt)
	return nil
}
