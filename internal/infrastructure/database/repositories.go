package database

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/adapter/repository"
	domainRepo "github.com/flexdb/flexdb-server/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Field        domainRepo.FieldRepository
	Customer     domainRepo.CustomerRepository
	AllowedEmail domainRepo.AllowedEmailRepository
}

// NewRepositories creates new repository instances on the given database.
func NewRepositories(db *mongo.Database, logger *zap.Logger) *Repositories {
	return &Repositories{
		Field:        repository.NewFieldRepository(db, logger),
		Customer:     repository.NewCustomerRepository(db, logger),
		AllowedEmail: repository.NewAllowedEmailRepository(db, logger),
	}
}
