// Package repomanager vends repositories bound to a dbx.DBTX so services can
// use the same repositories on the pool and inside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gigbook/internal/dbx"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/clients"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/drafts"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/events"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/settings"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Clients(db dbx.DBTX) clients.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Settings(db dbx.DBTX) settings.Repository
	Drafts(db dbx.DBTX) drafts.Repository
	Events(db dbx.DBTX) events.Repository
}
