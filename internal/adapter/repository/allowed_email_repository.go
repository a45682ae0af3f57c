package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
	domainRepo "github.com/flexdb/flexdb-server/internal/domain/repository"
	pkgErrors "github.com/flexdb/flexdb-server/pkg/errors"
)

const allowedEmailCollection = "allowedEmails"

type allowedEmailRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewAllowedEmailRepository creates a new allow-list repository backed by MongoDB.
func NewAllowedEmailRepository(db *mongo.Database, logger *zap.Logger) domainRepo.AllowedEmailRepository {
	return &allowedEmailRepository{
		coll:   db.Collection(allowedEmailCollection),
		logger: logger,
	}
}

// List retrieves every allow-listed email address.
func (r *allowedEmailRepository) List(ctx context.Context) ([]string, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to list allowed emails", zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to list allowed emails")
	}
	defer cursor.Close(ctx)

	var entries []model.AllowedEmail
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to decode allowed emails")
	}

	emails := make([]string, 0, len(entries))
	for _, entry := range entries {
		emails = append(emails, entry.Email)
	}

	return emails, nil
}

// Exists reports whether the email is on the allow-list.
func (r *allowedEmailRepository) Exists(ctx context.Context, email string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		r.logger.Error("Failed to check allowed email",
			zap.String("email", email),
			zap.Error(err))
		return false, pkgErrors.Wrap(err, "failed to check allowed email")
	}
	return count > 0, nil
}

// Add inserts an email into the allow-list.
func (r *allowedEmailRepository) Add(ctx context.Context, email string) error {
	if _, err := r.coll.InsertOne(ctx, model.AllowedEmail{Email: email}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		r.logger.Error("Failed to add allowed email",
			zap.String("email", email),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to add allowed email")
	}
	return nil
}

// Remove deletes an email from the allow-list.
func (r *allowedEmailRepository) Remove(ctx context.Context, email string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"email": email}); err != nil {
		r.logger.Error("Failed to remove allowed email",
			zap.String("email", email),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to remove allowed email")
	}
	return nil
}
