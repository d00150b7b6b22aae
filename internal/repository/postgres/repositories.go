package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/jayyu23/daNomNoms-monad/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Catalog: NewCatalogRepository(db, logger),
	}
}
