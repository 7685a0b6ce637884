package heroapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
)

type heroResponse struct {
	Response   string `json:"response"`
	Error      string `json:"error"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	PowerStats struct {
		Intelligence string `json:"intelligence"`
		Strength     string `json:"strength"`
		Speed        string `json:"speed"`
		Durability   string `json:"durability"`
		Power        string `json:"power"`
		Combat       string `json:"combat"`
	} `json:"powerstats"`
	Biography struct {
		FullName  string `json:"full-name"`
		Publisher string `json:"publisher"`
	} `json:"biography"`
	Image struct {
		URL string `json:"url"`
	} `json:"image"`
}

func (r *heroResponse) toCard() (*models.HeroCard, error) {
	if r.Response != "success" {
		msg := r.Error
		if msg == "" {
			msg = "response " + strconv.Quote(r.Response)
		}
		return nil, fmt.Errorf("api error: %s", msg)
	}
	if r.ID == "" {
		return nil, errors.New("api response without id")
	}

	stats := models.PowerStats{
		Intelligence: parseStat(r.PowerStats.Intelligence),
		Strength:     parseStat(r.PowerStats.Strength),
		Speed:        parseStat(r.PowerStats.Speed),
		Durability:   parseStat(r.PowerStats.Durability),
		Power:        parseStat(r.PowerStats.Power),
		Combat:       parseStat(r.PowerStats.Combat),
	}

	bio := r.Biography.FullName + " - " + r.Biography.Publisher
	return models.NewHeroCard(r.ID, r.Name, bio, r.Image.URL, stats), nil
}

// parseStat treats "null", blanks and other non-numeric values as zero.
func parseStat(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
