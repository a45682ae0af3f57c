package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
	domainRepo "github.com/flexdb/flexdb-server/internal/domain/repository"
	pkgErrors "github.com/flexdb/flexdb-server/pkg/errors"
)

const fieldCollection = "fields"

type fieldRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewFieldRepository creates a new field repository backed by MongoDB.
func NewFieldRepository(db *mongo.Database, logger *zap.Logger) domainRepo.FieldRepository {
	return &fieldRepository{
		coll:   db.Collection(fieldCollection),
		logger: logger,
	}
}

// List retrieves all field definitions sorted by order, insertion time
// breaking ties.
func (r *fieldRepository) List(ctx context.Context) ([]model.FieldDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		r.logger.Error("Failed to list fields", zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to list fields")
	}
	defer cursor.Close(ctx)

	fields := []model.FieldDefinition{}
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to decode fields")
	}

	return fields, nil
}

// GetByID retrieves a field by its id, returning (nil, nil) when absent or
// when the id is not a valid object id.
func (r *fieldRepository) GetByID(ctx context.Context, id string) (*model.FieldDefinition, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var field model.FieldDefinition
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&field)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get field by id",
			zap.String("id", id),
			zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to get field")
	}

	return &field, nil
}

// GetByName retrieves a field by its record attribute key.
func (r *fieldRepository) GetByName(ctx context.Context, name string) (*model.FieldDefinition, error) {
	var field model.FieldDefinition
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&field)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get field by name",
			zap.String("name", name),
			zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to get field")
	}

	return &field, nil
}

// Insert stores a new field definition and fills in its assigned id.
func (r *fieldRepository) Insert(ctx context.Context, field *model.FieldDefinition) error {
	result, err := r.coll.InsertOne(ctx, field)
	if err != nil {
		r.logger.Error("Failed to insert field",
			zap.String("name", field.Name),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to insert field")
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		field.ID = oid
	}

	return nil
}

// Update replaces the mutable parts of a field definition.
func (r *fieldRepository) Update(ctx context.Context, field *model.FieldDefinition) error {
	update := bson.M{"$set": bson.M{
		"label":   field.Label,
		"type":    field.Type,
		"options": field.Options,
		"order":   field.Order,
	}}

	if _, err := r.coll.UpdateByID(ctx, field.ID, update); err != nil {
		r.logger.Error("Failed to update field",
			zap.String("id", field.ID.Hex()),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to update field")
	}

	return nil
}

// Delete removes a field definition.
func (r *fieldRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, fmt.Sprintf("invalid field id %q", id), err)
	}

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		r.logger.Error("Failed to delete field",
			zap.String("id", id),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to delete field")
	}

	return nil
}

// SetOrder updates a single field's order rank.
func (r *fieldRepository) SetOrder(ctx context.Context, id string, order int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pkgErrors.NewAppError(pkgErrors.ErrInvalidArgument, fmt.Sprintf("invalid field id %q", id), err)
	}

	update := bson.M{"$set": bson.M{"order": order}}
	if _, err := r.coll.UpdateByID(ctx, oid, update); err != nil {
		r.logger.Error("Failed to set field order",
			zap.String("id", id),
			zap.Int("order", order),
			zap.Error(err))
		return pkgErrors.Wrap(err, "failed to set field order")
	}

	return nil
}

// MaxOrder returns the highest order value currently assigned, or 0 when the
// registry is empty.
func (r *fieldRepository) MaxOrder(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})

	var field model.FieldDefinition
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&field)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, pkgErrors.Wrap(err, "failed to get max field order")
	}

	return field.Order, nil
}
