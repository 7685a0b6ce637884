package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/epicquest/internal/client/client"
	"github.com/dmitrijs2005/epicquest/internal/client/heroapi"
	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/client/services"
	"github.com/dmitrijs2005/epicquest/internal/common"
)

func renderCard(w io.Writer, c *models.HeroCard) {
	fmt.Fprintf(w, "[%s] %s (#%s)\n", c.Rarity, c.Name, c.ID)
	if c.Biography != "" {
		fmt.Fprintf(w, "  %s\n", c.Biography)
	}
	p := c.PowerStats
	fmt.Fprintf(w, "  INT %d  STR %d  SPD %d  DUR %d  PWR %d  CMB %d  = %d\n",
		p.Intelligence, p.Strength, p.Speed, p.Durability, p.Power, p.Combat, c.TotalPower)
}

func renderCollection(w io.Writer, cards []*models.HeroCard) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRARITY\tPOWER\tOBTAINED")
	for _, c := range cards {
		obtained := "-"
		if !c.ObtainedAt.IsZero() {
			obtained = c.ObtainedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Rarity, c.TotalPower, obtained)
	}
	return tw.Flush()
}

func renderStats(w io.Writer, s models.CollectionStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total cards\t%d\n", s.TotalCards)
	for i := len(models.Rarities) - 1; i >= 0; i-- {
		r := models.Rarities[i]
		fmt.Fprintf(tw, "  %s\t%d\n", r, s.ByRarity[r])
	}
	fmt.Fprintf(tw, "Total power\t%d\n", s.TotalPower)
	fmt.Fprintf(tw, "Average power\t%d\n", s.AveragePower)
	fmt.Fprintf(tw, "Draws left today\t%d\n", s.Opportunities)
	if !s.MemberSince.IsZero() {
		fmt.Fprintf(tw, "Member since\t%s\n", s.MemberSince.Local().Format("2006-01-02"))
	}
	return tw.Flush()
}

// describe turns service errors into short messages for the prompt.
func describe(err error) string {
	switch {
	case services.IsValidationError(err):
		return err.Error()
	case errors.Is(err, common.ErrBadCredentials):
		return "invalid username or password"
	case errors.Is(err, common.ErrorNotFound):
		return "user not found"
	case errors.Is(err, common.ErrDuplicateUsername):
		return "username already exists"
	case errors.Is(err, common.ErrNoActiveSession):
		return "you are not logged in"
	case errors.Is(err, services.ErrNoOpportunities):
		return "no draws left today, come back tomorrow or use 'reset'"
	case errors.Is(err, services.ErrCooldownActive):
		return err.Error()
	case errors.Is(err, heroapi.ErrRemoteFetch):
		return "could not reach the hero catalogue, try again later"
	case errors.Is(err, client.ErrNotSignedIn):
		return "sign in to the cloud first ('cloud-login')"
	case errors.Is(err, client.ErrUnavailable):
		return "cloud is unavailable"
	case errors.Is(err, client.ErrUnauthorized):
		return "cloud rejected the credentials"
	case errors.Is(err, client.ErrAlreadyExists):
		return "cloud account already exists"
	case errors.Is(err, client.ErrNotFound):
		return "nothing stored in the cloud yet"
	default:
		return err.Error()
	}
}
