package repomanager

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/admins"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/memory"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/notifications"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/recruiters"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/seekers"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/verifications"
)

// MemoryRepositoryManager keeps everything in process memory. The handle
// passed to the factories is ignored.
type MemoryRepositoryManager struct {
	*memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{Store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Close() error                        { return nil }

func (m *MemoryRepositoryManager) Admins(dbx.DBTX) admins.Repository {
	return memory.NewAdminRepository(m.Store)
}

func (m *MemoryRepositoryManager) JobSeekers(dbx.DBTX) seekers.Repository {
	return memory.NewSeekerRepository(m.Store)
}

func (m *MemoryRepositoryManager) Recruiters(dbx.DBTX) recruiters.Repository {
	return memory.NewRecruiterRepository(m.Store)
}

func (m *MemoryRepositoryManager) Jobs(dbx.DBTX) jobs.Repository {
	return memory.NewJobRepository(m.Store)
}

func (m *MemoryRepositoryManager) Applications(dbx.DBTX) applications.Repository {
	return memory.NewApplicationRepository(m.Store)
}

func (m *MemoryRepositoryManager) Verifications(dbx.DBTX) verifications.Repository {
	return memory.NewVerificationRepository(m.Store)
}

func (m *MemoryRepositoryManager) Notifications(dbx.DBTX) notifications.Repository {
	return memory.NewNotificationRepository(m.Store)
}

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return memory.NewRefreshTokenRepository(m.Store)
}
