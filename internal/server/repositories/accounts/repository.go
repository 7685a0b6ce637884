package accounts

import (
	"context"

	"github.com/dmitrijs2005/epicquest/internal/server/models"
)

type Repository interface {
	// Create stores a new account; a taken email yields common.ErrAlreadyExists.
	Create(ctx context.Context, a *models.Account) (*models.Account, error)
	// GetByEmail returns common.ErrorNotFound for unknown emails.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
