// Package models defines the player record, hero cards and derived
// collection statistics.
package models

import (
	"encoding/json"
	"errors"
	"slices"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/timex"
)

// DefaultDailyOpportunities is the allowance granted to new players and
// restored by a daily reset.
const DefaultDailyOpportunities = 5

var ErrDuplicateCard = errors.New("card already in collection")

var nowFn = func() time.Time { return time.Now().UTC() }

// User is the persisted player record. Password holds a legacy plaintext
// secret and is only populated for records written before hashing was
// introduced; a HashedPassword+Salt pair always takes precedence.
type User struct {
	Username           string      `json:"username"`
	Password           string      `json:"password,omitempty"`
	HashedPassword     string      `json:"hashedPassword,omitempty"`
	Salt               []byte      `json:"salt,omitempty"`
	Email              string      `json:"email"`
	Collection         []*HeroCard `json:"collection"`
	DailyOpportunities int         `json:"dailyOpportunities"`
	LastCardTime       time.Time   `json:"lastCardTime"`
	PlayerLevel        int         `json:"playerLevel"`
	Achievements       []string    `json:"achievements"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// UnmarshalJSON accepts lastCardTime and createdAt either as RFC 3339
// strings or as epoch milliseconds, where 0 means never.
func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		LastCardTime timex.Timestamp `json:"lastCardTime"`
		CreatedAt    timex.Timestamp `json:"createdAt"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	u.LastCardTime = aux.LastCardTime.Time
	u.CreatedAt = aux.CreatedAt.Time
	return nil
}

// NewUser returns a fresh record with the given daily allowance.
func NewUser(username, email string, opportunities int) *User {
	return &User{
		Username:           username,
		Email:              email,
		Collection:         []*HeroCard{},
		DailyOpportunities: opportunities,
		PlayerLevel:        1,
		Achievements:       []string{},
		CreatedAt:          nowFn(),
	}
}

// HasHashedCredentials reports whether the record carries a usable digest.
func (u *User) HasHashedCredentials() bool {
	return u.HashedPassword != "" && len(u.Salt) > 0
}

// HasCard reports whether a card with id is already collected.
func (u *User) HasCard(id string) bool {
	return slices.ContainsFunc(u.Collection, func(c *HeroCard) bool {
		return c != nil && c.ID == id
	})
}

// AddCard appends card unless it is nil or already present.
func (u *User) AddCard(card *HeroCard) error {
	if card == nil {
		return errors.New("nil card")
	}
	if u.HasCard(card.ID) {
		return ErrDuplicateCard
	}
	u.Collection = append(u.Collection, card)
	return nil
}

func (u *User) CanObtainCard() bool {
	return u.DailyOpportunities > 0
}

// ConsumeOpportunity spends one draw and starts the cooldown. It is a no-op
// when the allowance is exhausted.
func (u *User) ConsumeOpportunity() {
	if u.DailyOpportunities <= 0 {
		return
	}
	u.DailyOpportunities--
	u.LastCardTime = nowFn()
}

// ResetDailyOpportunities restores the allowance and clears the cooldown anchor.
func (u *User) ResetDailyOpportunities(n int) {
	u.DailyOpportunities = n
	u.LastCardTime = time.Time{}
}

// RemainingCooldown returns how long until the next draw is allowed.
func (u *User) RemainingCooldown(now time.Time, cooldown time.Duration) time.Duration {
	if u.LastCardTime.IsZero() {
		return 0
	}
	left := cooldown - now.Sub(u.LastCardTime)
	if left < 0 {
		return 0
	}
	return left
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Salt = slices.Clone(u.Salt)
	c.Achievements = slices.Clone(u.Achievements)
	if u.Collection != nil {
		c.Collection = make([]*HeroCard, 0, len(u.Collection))
		for _, card := range u.Collection {
			if card == nil {
				continue
			}
			cp := *card
			c.Collection = append(c.Collection, &cp)
		}
	}
	return &c
}
