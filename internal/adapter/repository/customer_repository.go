package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/domain/model"
	domainRepo "github.com/flexdb/flexdb-server/internal/domain/repository"
	pkgErrors "github.com/flexdb/flexdb-server/pkg/errors"
)

const customerCollection = "customers"

type customerRepository struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewCustomerRepository creates a new customer repository backed by MongoDB.
func NewCustomerRepository(db *mongo.Database, logger *zap.Logger) domainRepo.CustomerRepository {
	return &customerRepository{
		coll:   db.Collection(customerCollection),
		logger: logger,
	}
}

// List retrieves all customer records.
func (r *customerRepository) List(ctx context.Context) ([]model.CustomerRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		r.logger.Error("Failed to list customers", zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to list customers")
	}
	defer cursor.Close(ctx)

	records := []model.CustomerRecord{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, pkgErrors.Wrap(err, "failed to decode customer")
		}
		records = append(records, recordFromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, pkgErrors.Wrap(err, "failed to iterate customers")
	}

	return records, nil
}

// Insert stores a new customer record.
func (r *customerRepository) Insert(ctx context.Context, attrs model.Attributes) (*model.CustomerRecord, error) {
	doc := bson.M(attrs.Clone())
	delete(doc, "_id")

	result, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		r.logger.Error("Failed to insert customer", zap.Error(err))
		return nil, pkgErrors.Wrap(err, "failed to insert customer")
	}

	record := &model.CustomerRecord{Attributes: model.Attributes(doc)}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}

	return record, nil
}

// Update replaces the given attributes on an existing record. Returns false
// when no record matched the id.
func (r *customerRepository) Update(ctx context.Context, id string, attrs model.Attributes) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	set := bson.M(attrs.Clone())
	delete(set, "_id")

	result, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		r.logger.Error("Failed to update customer",
			zap.String("id", id),
			zap.Error(err))
		return false, pkgErrors.Wrap(err, "failed to update customer")
	}

	return result.MatchedCount > 0, nil
}

// Delete removes a customer record. Returns false when no record matched.
func (r *customerRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete customer",
			zap.String("id", id),
			zap.Error(err))
		return false, pkgErrors.Wrap(err, "failed to delete customer")
	}

	return result.DeletedCount > 0, nil
}

// SetAttributeAll sets an attribute to the given value on every record.
// Used by the field-creation cascade with a null default.
func (r *customerRepository) SetAttributeAll(ctx context.Context, name string, value any) error {
	update := bson.M{"$set": bson.M{name: value}}

	result, err := r.coll.UpdateMany(ctx, bson.M{}, update)
	if err != nil {
		r.logger.Error("Failed to set attribute on all customers",
			zap.String("attribute", name),
			zap.Error(err))
		return pkgErrors.Wrap(err, fmt.Sprintf("failed to set attribute %q", name))
	}

	r.logger.Info("Attribute set on all customers",
		zap.String("attribute", name),
		zap.Int64("modified", result.ModifiedCount))
	return nil
}

// UnsetAttributeAll removes an attribute key from every record. Used by the
// field-deletion cascade.
func (r *customerRepository) UnsetAttributeAll(ctx context.Context, name string) error {
	update := bson.M{"$unset": bson.M{name: ""}}

	result, err := r.coll.UpdateMany(ctx, bson.M{}, update)
	if err != nil {
		r.logger.Error("Failed to unset attribute on all customers",
			zap.String("attribute", name),
			zap.Error(err))
		return pkgErrors.Wrap(err, fmt.Sprintf("failed to unset attribute %q", name))
	}

	r.logger.Info("Attribute unset on all customers",
		zap.String("attribute", name),
		zap.Int64("modified", result.ModifiedCount))
	return nil
}

// recordFromDocument splits a raw document into id and attributes.
func recordFromDocument(doc bson.M) model.CustomerRecord {
	record := model.CustomerRecord{Attributes: model.Attributes{}}
	for k, v := range doc {
		if k == "_id" {
			if oid, ok := v.(primitive.ObjectID); ok {
				record.ID = oid
			}
			continue
		}
		record.Attributes[k] = v
	}
	return record
}
