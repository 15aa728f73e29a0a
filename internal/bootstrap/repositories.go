package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slabworks/cardstand/internal/database/postgres"
	"github.com/slabworks/cardstand/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Catalog  repository.Catalog
	Order    repository.Order
	EventLog repository.EventLog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Catalog:  postgres.NewCatalogRepository(dbPool),
		Order:    postgres.NewOrderRepository(dbPool),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
