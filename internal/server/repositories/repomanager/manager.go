package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/epicquest/internal/dbx"
	"github.com/dmitrijs2005/epicquest/internal/server/repositories/accounts"
)

// RepositoryManager vends repositories bound to a DBTX, so the same
// constructors serve both plain connections and transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
