// Package services contains the application services of the EpicQuest
// client. This file defines the user registry: registration, login with
// legacy credential migration, logout and profile updates, all persisted as
// one registry blob in the preferences store.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/client/preferences"
	"github.com/dmitrijs2005/epicquest/internal/client/session"
	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/cryptox"
	"github.com/dmitrijs2005/epicquest/internal/logging"
	"github.com/dmitrijs2005/epicquest/internal/validation"
)

// KeyUsersData is the preference key holding the whole registry.
const KeyUsersData = "users_data"

// UserService is the synchronous user registry.
//
// Contract:
//   - Register/Login validate input before reading any stored state.
//   - A successful Register or Login leaves the user signed in.
//   - UpdateUser is an upsert and refreshes the session when one is active.
//   - Returned users are copies; mutate them and call UpdateUser to persist.
//
// Implementations are not safe for concurrent use; AsyncUserService
// serializes access through a single worker.
type UserService interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
	UpdateUser(ctx context.Context, u *models.User) error
	IsUsernameTaken(ctx context.Context, username string) bool
	IsLoggedIn(ctx context.Context) bool
	ResetDailyOpportunities(ctx context.Context) (*models.User, error)
}

type userService struct {
	store              *preferences.Store
	session            *session.Manager
	logger             logging.Logger
	dailyOpportunities int
	registry           map[string]*models.User
}

// NewUserService builds the registry on top of store and sm. New accounts
// and daily resets grant dailyOpportunities draws.
func NewUserService(store *preferences.Store, sm *session.Manager, logger logging.Logger, dailyOpportunities int) UserService {
	return &userService{
		store:              store,
		session:            sm,
		logger:             logger.With("module", "users"),
		dailyOpportunities: dailyOpportunities,
	}
}

// load returns the registry, reading it from the store on first use.
// Entries whose key does not match the record are dropped.
func (s *userService) load(ctx context.Context) map[string]*models.User {
	if s.registry != nil {
		return s.registry
	}

	raw := preferences.GetObject[map[string]*models.User](ctx, s.store, KeyUsersData, nil)
	reg := make(map[string]*models.User, len(raw))
	for name, u := range raw {
		if u == nil || u.Username != name {
			s.logger.Warn(ctx, "dropping inconsistent registry entry", "key", name)
			continue
		}
		reg[name] = u
	}
	s.registry = reg
	return reg
}

func (s *userService) save(ctx context.Context) error {
	if err := s.store.PutObject(ctx, KeyUsersData, s.registry); err != nil {
		// the in-memory copy is ahead of disk now; reload on next access
		s.registry = nil
		return fmt.Errorf("save registry: %w", err)
	}
	return nil
}

func validationError(r validation.Result) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, r.Message)
}

func (s *userService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	if r := validation.ValidateRegistration(username, password, email); !r.Valid {
		return nil, validationError(r)
	}

	reg := s.load(ctx)
	if _, ok := reg[username]; ok {
		return nil, common.ErrDuplicateUsername
	}

	u := models.NewUser(username, email, s.dailyOpportunities)
	u.Salt = cryptox.GenerateSalt()
	u.HashedPassword = cryptox.HashPassword(password, u.Salt)

	reg[username] = u
	if err := s.save(ctx); err != nil {
		return nil, err
	}
	if err := s.session.Login(ctx, u); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user", username)
	return u.Clone(), nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if r := validation.ValidateLogin(username, password); !r.Valid {
		return nil, validationError(r)
	}

	u, ok := s.load(ctx)[username]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if !checkPassword(u, password) {
		return nil, common.ErrBadCredentials
	}

	if !u.HasHashedCredentials() {
		u.Salt = cryptox.GenerateSalt()
		u.HashedPassword = cryptox.HashPassword(password, u.Salt)
		u.Password = ""
		if err := s.save(ctx); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "migrated legacy credentials", "user", username)
	}

	if err := s.session.Login(ctx, u); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return u.Clone(), nil
}

// checkPassword prefers the hashed form and only falls back to the legacy
// plaintext field for records that were never migrated.
func checkPassword(u *models.User, password string) bool {
	if u.HasHashedCredentials() {
		return cryptox.VerifyPassword(password, u.Salt, u.HashedPassword)
	}
	if u.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

func (s *userService) Logout(ctx context.Context) error {
	u := s.session.CurrentUser()
	if u == nil {
		return common.ErrNoActiveSession
	}

	reg := s.load(ctx)
	reg[u.Username] = u
	if err := s.save(ctx); err != nil {
		return err
	}
	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (s *userService) CurrentUser(_ context.Context) *models.User {
	return s.session.CurrentUser()
}

func (s *userService) UpdateUser(ctx context.Context, u *models.User) error {
	if u == nil || u.Username == "" {
		return common.ErrInvalidUser
	}

	c := u.Clone()
	reg := s.load(ctx)
	reg[c.Username] = c
	if err := s.save(ctx); err != nil {
		return err
	}

	if cur := s.session.CurrentUser(); cur != nil && cur.Username == c.Username {
		if err := s.session.Login(ctx, c); err != nil {
			return fmt.Errorf("refresh session: %w", err)
		}
	}
	return nil
}

func (s *userService) IsUsernameTaken(ctx context.Context, username string) bool {
	_, ok := s.load(ctx)[username]
	return ok
}

func (s *userService) IsLoggedIn(_ context.Context) bool {
	return s.session.IsLoggedIn()
}

func (s *userService) ResetDailyOpportunities(ctx context.Context) (*models.User, error) {
	u := s.session.CurrentUser()
	if u == nil {
		return nil, common.ErrNoActiveSession
	}

	u.ResetDailyOpportunities(s.dailyOpportunities)
	if err := s.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// IsValidationError reports whether err came from input validation.
func IsValidationError(err error) bool {
	return errors.Is(err, common.ErrValidation)
}
