// Package repomanager vends the repositories of one storage backend together
// with its transaction and migration hooks.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/admins"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/recruiters"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/seekers"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/verifications"
)

// RepositoryManager binds repositories to a handle obtained from Conn or
// passed into a WithTx callback.
type RepositoryManager interface {
	dbx.Transactor

	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error

	Admins(db dbx.DBTX) admins.Repository
	JobSeekers(db dbx.DBTX) seekers.Repository
	Recruiters(db dbx.DBTX) recruiters.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Applications(db dbx.DBTX) applications.Repository
	Verifications(db dbx.DBTX) verifications.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}

// New opens the backend selected by cfg.DatabaseDriver.
func New(cfg *config.Config) (RepositoryManager, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		return OpenPostgres(cfg.DatabaseDSN)
	case config.DriverMemory:
		return NewMemoryRepositoryManager(), nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
}
