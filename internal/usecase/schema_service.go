package usecase

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/flexdb/flexdb-server/internal/cache"
	domainErrors "github.com/flexdb/flexdb-server/internal/domain/errors"
	"github.com/flexdb/flexdb-server/internal/domain/model"
	"github.com/flexdb/flexdb-server/internal/domain/repository"
)

const (
	generatedNameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	generatedNameLength   = 10
	// maxNameAttempts bounds the collision-checked retry loop for
	// generated field names.
	maxNameAttempts = 5
)

// CreateFieldInput carries the caller-supplied parts of a new field
// definition. Name may be empty, in which case a unique one is generated.
type CreateFieldInput struct {
	Name    string
	Label   string
	Type    model.FieldType
	Options []string
}

// SchemaService owns the field registry and coordinates the two-step
// mutations that keep field definitions and stored records consistent.
// The registry write always happens before the record cascade, so a failure
// mid-cascade leaves the registry reflecting the intended schema; reads
// tolerate the resulting record drift permanently.
type SchemaService struct {
	fields    repository.FieldRepository
	customers repository.CustomerRepository
	cache     *cache.SchemaCache
	logger    *zap.Logger
}

// NewSchemaService creates a new schema service.
func NewSchemaService(
	fields repository.FieldRepository,
	customers repository.CustomerRepository,
	schemaCache *cache.SchemaCache,
	logger *zap.Logger,
) *SchemaService {
	return &SchemaService{
		fields:    fields,
		customers: customers,
		cache:     schemaCache,
		logger:    logger,
	}
}

// ListFields returns all field definitions sorted by order.
func (s *SchemaService) ListFields(ctx context.Context) ([]model.FieldDefinition, error) {
	if fields, ok := s.cache.Get(ctx); ok {
		return fields, nil
	}

	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, fields)
	return fields, nil
}

// CreateField registers a new field definition and sets a null default for
// it on every existing customer record.
func (s *SchemaService) CreateField(ctx context.Context, input CreateFieldInput) (*model.FieldDefinition, error) {
	if !input.Type.Valid() {
		return nil, domainErrors.NewValidationError("unknown field type %q", input.Type)
	}
	if input.Type == model.FieldTypeSelect && input.Options == nil {
		return nil, domainErrors.NewValidationError("field type %q requires options", model.FieldTypeSelect)
	}

	name := input.Name
	if name == "" {
		generated, err := s.generateName(ctx)
		if err != nil {
			return nil, err
		}
		name = generated
	} else {
		existing, err := s.fields.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domainErrors.NewValidationError("field name %q already exists", name)
		}
	}

	maxOrder, err := s.fields.MaxOrder(ctx)
	if err != nil {
		return nil, err
	}

	field := &model.FieldDefinition{
		Name:      name,
		Label:     input.Label,
		Type:      input.Type,
		Options:   input.Options,
		Order:     maxOrder + 1,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.fields.Insert(ctx, field); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	// The cascade is not rolled back on failure: records missing the key
	// read as null through projection, so the intermediate state is safe.
	if err := s.customers.SetAttributeAll(ctx, field.Name, nil); err != nil {
		s.logger.Warn("Field created but default cascade failed",
			zap.String("field", field.Name),
			zap.Error(err))
	}

	s.logger.Info("Field created",
		zap.String("id", field.ID.Hex()),
		zap.String("name", field.Name),
		zap.String("type", string(field.Type)))

	return field, nil
}

// UpdateField applies a partial update to a field definition. The field's
// name is the addressing key into every stored record and cannot change.
func (s *SchemaService) UpdateField(ctx context.Context, id string, patch model.FieldPatch) (*model.FieldDefinition, error) {
	field, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if field == nil {
		return nil, domainErrors.ErrFieldNotFound
	}

	if patch.Name != nil && *patch.Name != field.Name {
		return nil, domainErrors.NewValidationError("field name is immutable; %q cannot become %q", field.Name, *patch.Name)
	}

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, domainErrors.NewValidationError("unknown field type %q", *patch.Type)
		}
		field.Type = *patch.Type
	}
	if patch.Options != nil {
		field.Options = *patch.Options
	}
	if patch.Order != nil {
		field.Order = *patch.Order
	}

	if field.Type == model.FieldTypeSelect && field.Options == nil {
		return nil, domainErrors.NewValidationError("field type %q requires options", model.FieldTypeSelect)
	}

	if err := s.fields.Update(ctx, field); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	s.logger.Info("Field updated",
		zap.String("id", field.ID.Hex()),
		zap.String("name", field.Name))

	return field, nil
}

// DeleteField removes a field definition and unsets its attribute on every
// customer record.
func (s *SchemaService) DeleteField(ctx context.Context, id string) error {
	field, err := s.fields.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if field == nil {
		return domainErrors.ErrFieldNotFound
	}

	if err := s.fields.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	// Stale keys left behind by a partial cascade are inert: views are
	// schema-driven and never surface unknown keys.
	if err := s.customers.UnsetAttributeAll(ctx, field.Name); err != nil {
		s.logger.Warn("Field deleted but unset cascade failed",
			zap.String("field", field.Name),
			zap.Error(err))
	}

	s.logger.Info("Field deleted",
		zap.String("id", id),
		zap.String("name", field.Name))

	return nil
}

// ReorderFields assigns new order ranks following the position of each id in
// orderedIDs. Fields not mentioned keep their relative order after the
// supplied ones. Reordering never touches customer records.
func (s *SchemaService) ReorderFields(ctx context.Context, orderedIDs []string) ([]model.FieldDefinition, error) {
	current, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.FieldDefinition, len(current))
	for i := range current {
		byID[current[i].ID.Hex()] = &current[i]
	}

	supplied := make(map[string]bool, len(orderedIDs))
	rank := 0

	for _, id := range orderedIDs {
		field, ok := byID[id]
		if !ok {
			return nil, domainErrors.NewValidationError("unknown field id %q in reorder request", id)
		}
		if supplied[id] {
			return nil, domainErrors.NewValidationError("duplicate field id %q in reorder request", id)
		}
		supplied[id] = true

		if field.Order != rank {
			if err := s.fields.SetOrder(ctx, id, rank); err != nil {
				return nil, err
			}
		}
		rank++
	}

	// Remaining fields follow in their current relative order.
	for i := range current {
		id := current[i].ID.Hex()
		if supplied[id] {
			continue
		}
		if current[i].Order != rank {
			if err := s.fields.SetOrder(ctx, id, rank); err != nil {
				return nil, err
			}
		}
		rank++
	}

	s.cache.Invalidate(ctx)

	return s.fields.List(ctx)
}

// generateName produces a field name guaranteed unique at creation time by
// checking each candidate against the registry.
func (s *SchemaService) generateName(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		suffix, err := gonanoid.Generate(generatedNameAlphabet, generatedNameLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate field name: %w", err)
		}
		name := "fld_" + suffix

		existing, err := s.fields.GetByName(ctx, name)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return name, nil
		}

		s.logger.Warn("Generated field name collided, retrying",
			zap.String("name", name),
			zap.Int("attempt", attempt+1))
	}

	return "", fmt.Errorf("failed to generate a unique field name after %d attempts", maxNameAttempts)
}
