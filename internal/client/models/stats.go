package models

import (
	"fmt"
	"strings"
	"time"
)

// CollectionStats summarises a player's collection.
type CollectionStats struct {
	TotalCards    int
	ByRarity      map[Rarity]int
	TotalPower    int
	AveragePower  int
	Opportunities int
	MemberSince   time.Time
}

// Stats computes collection statistics. AveragePower is the integer mean
// and zero for an empty collection.
func (u *User) Stats() CollectionStats {
	s := CollectionStats{
		ByRarity:      make(map[Rarity]int, len(Rarities)),
		Opportunities: u.DailyOpportunities,
		MemberSince:   u.CreatedAt,
	}
	for _, r := range Rarities {
		s.ByRarity[r] = 0
	}
	for _, c := range u.Collection {
		if c == nil {
			continue
		}
		s.TotalCards++
		s.TotalPower += c.TotalPower
		s.ByRarity[c.Rarity]++
	}
	if s.TotalCards > 0 {
		s.AveragePower = s.TotalPower / s.TotalCards
	}
	return s
}

// ShareText renders the collection summary players can paste elsewhere.
func (u *User) ShareText() string {
	s := u.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "My EpicQuest collection (%s)\n", u.Username)
	fmt.Fprintf(&b, "Total cards: %d\n", s.TotalCards)
	fmt.Fprintf(&b, "Legendary: %d\n", s.ByRarity[RarityLegendary])
	fmt.Fprintf(&b, "Epic: %d\n", s.ByRarity[RarityEpic])
	fmt.Fprintf(&b, "Rare: %d\n", s.ByRarity[RarityRare])
	fmt.Fprintf(&b, "Uncommon: %d\n", s.ByRarity[RarityUncommon])
	fmt.Fprintf(&b, "Common: %d\n", s.ByRarity[RarityCommon])
	fmt.Fprintf(&b, "Total power: %d\n", s.TotalPower)
	fmt.Fprintf(&b, "Average power: %d", s.AveragePower)
	return b.String()
}

// FormatCooldown renders d as mm:ss, or "ready" once it has elapsed.
func FormatCooldown(d time.Duration) string {
	if d <= 0 {
		return "ready"
	}
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
