package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domainErrors "github.com/flexdb/flexdb-server/internal/domain/errors"
	"github.com/flexdb/flexdb-server/internal/domain/model"
	"github.com/flexdb/flexdb-server/internal/domain/repository"
)

// RecordService projects customer records onto the current field set and
// handles record CRUD. Projection is what makes partially-applied schema
// cascades harmless: missing keys read as null, stale keys stay invisible
// to schema-driven views.
type RecordService struct {
	customers repository.CustomerRepository
	fields    repository.FieldRepository
	logger    *zap.Logger
}

// NewRecordService creates a new record service.
func NewRecordService(
	customers repository.CustomerRepository,
	fields repository.FieldRepository,
	logger *zap.Logger,
) *RecordService {
	return &RecordService{
		customers: customers,
		fields:    fields,
		logger:    logger,
	}
}

// Project fills in a null value for every current field the record lacks.
// Keys without a matching field are kept unless strict is set.
func Project(record model.CustomerRecord, fields []model.FieldDefinition, strict bool) model.CustomerRecord {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f.Name] = true
	}

	attrs := model.Attributes{}
	for k, v := range record.Attributes {
		if strict && !known[k] {
			continue
		}
		attrs[k] = v
	}
	for _, f := range fields {
		if _, ok := attrs[f.Name]; !ok {
			attrs[f.Name] = nil
		}
	}

	return model.CustomerRecord{ID: record.ID, Attributes: attrs}
}

// Validate checks record attributes against the field set. Only select
// membership is enforced; typing for the remaining field types is a
// presentation concern and the persisted layer stays permissive.
func Validate(attrs model.Attributes, fields []model.FieldDefinition) error {
	for _, f := range fields {
		if f.Type != model.FieldTypeSelect {
			continue
		}
		value, ok := attrs[f.Name]
		if !ok || value == nil {
			continue
		}
		str, ok := value.(string)
		if !ok {
			str = fmt.Sprintf("%v", value)
		}
		// An empty string is an untouched select control, not a choice.
		if str == "" {
			continue
		}
		if !f.HasOption(str) {
			return &domainErrors.OptionNotAllowedError{
				Field:   f.Name,
				Value:   str,
				Options: f.Options,
			}
		}
	}
	return nil
}

// Search filters records by a case-insensitive substring match of term
// against the string form of any field's value, preserving record order.
// An empty term matches everything.
func Search(records []model.CustomerRecord, fields []model.FieldDefinition, term string) []model.CustomerRecord {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)

	matched := []model.CustomerRecord{}
	for _, record := range records {
		for _, f := range fields {
			value, ok := record.Attributes[f.Name]
			if !ok || value == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprintf("%v", value)), needle) {
				matched = append(matched, record)
				break
			}
		}
	}
	return matched
}

// ListCustomers returns every record projected onto the current field set,
// optionally filtered by a search term.
func (s *RecordService) ListCustomers(ctx context.Context, term string) ([]model.CustomerRecord, error) {
	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i] = Project(records[i], fields, false)
	}

	return Search(records, fields, term), nil
}

// CreateCustomer validates the attributes against the current schema and
// stores a new record with nulls for any omitted fields.
func (s *RecordService) CreateCustomer(ctx context.Context, attrs model.Attributes) (*model.CustomerRecord, error) {
	fields, err := s.fields.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := Validate(attrs, fields); err != nil {
		return nil, err
	}

	projected := Project(model.CustomerRecord{Attributes: attrs}, fields, false)

	record, err := s.customers.Insert(ctx, projected.Attributes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer created", zap.String("id", record.ID.Hex()))
	return record, nil
}

// UpdateCustomer validates and applies attribute changes to an existing record.
func (s *RecordService) UpdateCustomer(ctx context.Context, id string, attrs model.Attributes) error {
	fields, err := s.fields.List(ctx)
	if err != nil {
		return err
	}

	if err := Validate(attrs, fields); err != nil {
		return err
	}

	matched, err := s.customers.Update(ctx, id, attrs)
	if err != nil {
		return err
	}
	if !matched {
		return domainErrors.ErrCustomerNotFound
	}

	s.logger.Info("Customer updated", zap.String("id", id))
	return nil
}

// DeleteCustomer removes a record.
func (s *RecordService) DeleteCustomer(ctx context.Context, id string) error {
	deleted, err := s.customers.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domainErrors.ErrCustomerNotFound
	}

	s.logger.Info("Customer deleted", zap.String("id", id))
	return nil
}
