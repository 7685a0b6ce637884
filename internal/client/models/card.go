package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/timex"
)

// Rarity tiers, ordered from weakest to strongest.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Rarities lists every tier in ascending order.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

// RarityForPower maps a total power value to its tier.
func RarityForPower(total int) Rarity {
	switch {
	case total >= 500:
		return RarityLegendary
	case total >= 400:
		return RarityEpic
	case total >= 300:
		return RarityRare
	case total >= 200:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// PowerStats are the six hero attributes, conventionally 0–100 each.
type PowerStats struct {
	Intelligence int `json:"intelligence"`
	Strength     int `json:"strength"`
	Speed        int `json:"speed"`
	Durability   int `json:"durability"`
	Power        int `json:"power"`
	Combat       int `json:"combat"`
}

func (p PowerStats) Total() int {
	return p.Intelligence + p.Strength + p.Speed + p.Durability + p.Power + p.Combat
}

// HeroCard is one collectible. TotalPower and Rarity are derived from
// PowerStats and are recomputed whenever the stats are set or decoded.
type HeroCard struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Biography  string     `json:"biography"`
	ImageURL   string     `json:"imageUrl"`
	PowerStats PowerStats `json:"powerStats"`
	TotalPower int        `json:"totalPower"`
	Rarity     Rarity     `json:"rarity"`
	ObtainedAt time.Time  `json:"obtainedAt"`
}

// NewHeroCard builds a card stamped with the current time.
func NewHeroCard(id, name, biography, imageURL string, stats PowerStats) *HeroCard {
	c := &HeroCard{
		ID:         id,
		Name:       name,
		Biography:  biography,
		ImageURL:   imageURL,
		ObtainedAt: nowFn(),
	}
	c.SetPowerStats(stats)
	return c
}

func (c *HeroCard) SetPowerStats(stats PowerStats) {
	c.PowerStats = stats
	c.TotalPower = stats.Total()
	c.Rarity = RarityForPower(c.TotalPower)
}

// UnmarshalJSON also reads obtainedAt as epoch milliseconds, the form older
// records carry.
func (c *HeroCard) UnmarshalJSON(b []byte) error {
	type plain HeroCard
	aux := struct {
		*plain
		ObtainedAt timex.Timestamp `json:"obtainedAt"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.ObtainedAt = aux.ObtainedAt.Time
	c.SetPowerStats(c.PowerStats)
	return nil
}
