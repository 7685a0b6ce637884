// Package services contains the cloud server's business logic: account
// sign-up and sign-in with ID tokens, and per-account document storage.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/epicquest/internal/common"
	"github.com/dmitrijs2005/epicquest/internal/cryptox"
	"github.com/dmitrijs2005/epicquest/internal/dbx"
	"github.com/dmitrijs2005/epicquest/internal/server/auth"
	"github.com/dmitrijs2005/epicquest/internal/server/config"
	"github.com/dmitrijs2005/epicquest/internal/server/models"
	"github.com/dmitrijs2005/epicquest/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/epicquest/internal/validation"
	"github.com/google/uuid"
)

// Identity is what a successful sign-up or sign-in hands back.
type Identity struct {
	UID     string
	IDToken string
}

type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:          db,
		repomanager: m,
		jwtSecret:   []byte(cfg.SecretKey),
		tokenTTL:    cfg.TokenTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if r := validation.ValidateEmail(email); !r.Valid {
		return fmt.Errorf("%w: %s", common.ErrValidation, r.Message)
	}
	if r := validation.ValidatePassword(password); !r.Valid {
		return fmt.Errorf("%w: %s", common.ErrValidation, r.Message)
	}
	return nil
}

// SignUp creates an account and signs it in. A taken email yields
// common.ErrAlreadyExists.
func (s *IdentityService) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	account, err := dbx.WithTxValue(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (*models.Account, error) {
		repo := s.repomanager.Accounts(tx)

		exists, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.ErrAlreadyExists
		}

		salt := cryptox.GenerateSalt()
		return repo.Create(ctx, &models.Account{
			ID:           uuid.NewString(),
			Email:        email,
			PasswordHash: cryptox.HashPassword(password, salt),
			Salt:         salt,
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	return s.issue(account.ID)
}

// SignIn checks the password. Unknown emails and wrong passwords are
// indistinguishable to the caller: both yield common.ErrorUnauthorized.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !cryptox.VerifyPassword(password, account.Salt, account.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(account.ID)
}

// VerifyToken returns the account id an ID token was issued for.
func (s *IdentityService) VerifyToken(token string) (string, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *IdentityService) issue(uid string) (*Identity, error) {
	token, err := auth.GenerateToken(uid, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Identity{UID: uid, IDToken: token}, nil
}
