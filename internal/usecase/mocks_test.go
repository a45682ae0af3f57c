package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/flexdb/flexdb-server/internal/domain/model"
)

// MockFieldRepository is a mock implementation of repository.FieldRepository
type MockFieldRepository struct {
	mock.Mock
}

func (m *MockFieldRepository) List(ctx context.Context) ([]model.FieldDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FieldDefinition), args.Error(1)
}

func (m *MockFieldRepository) GetByID(ctx context.Context, id string) (*model.FieldDefinition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FieldDefinition), args.Error(1)
}

func (m *MockFieldRepository) GetByName(ctx context.Context, name string) (*model.FieldDefinition, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FieldDefinition), args.Error(1)
}

func (m *MockFieldRepository) Insert(ctx context.Context, field *model.FieldDefinition) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockFieldRepository) Update(ctx context.Context, field *model.FieldDefinition) error {
	args := m.Called(ctx, field)
	return args.Error(0)
}

func (m *MockFieldRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFieldRepository) SetOrder(ctx context.Context, id string, order int) error {
	args := m.Called(ctx, id, order)
	return args.Error(0)
}

func (m *MockFieldRepository) MaxOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of repository.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]model.CustomerRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CustomerRecord), args.Error(1)
}

func (m *MockCustomerRepository) Insert(ctx context.Context, attrs model.Attributes) (*model.CustomerRecord, error) {
	args := m.Called(ctx, attrs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CustomerRecord), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id string, attrs model.Attributes) (bool, error) {
	args := m.Called(ctx, id, attrs)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) SetAttributeAll(ctx context.Context, name string, value any) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func (m *MockCustomerRepository) UnsetAttributeAll(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockAllowedEmailRepository is a mock implementation of repository.AllowedEmailRepository
type MockAllowedEmailRepository struct {
	mock.Mock
}

func (m *MockAllowedEmailRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAllowedEmailRepository) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAllowedEmailRepository) Add(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAllowedEmailRepository) Remove(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
