package repository

import (
	"context"

	"github.com/flexdb/flexdb-server/internal/domain/model"
)

// FieldRepository handles field definition storage. Lookups return
// (nil, nil) when nothing matches; callers decide whether that is an error.
type FieldRepository interface {
	List(ctx context.Context) ([]model.FieldDefinition, error)
	GetByID(ctx context.Context, id string) (*model.FieldDefinition, error)
	GetByName(ctx context.Context, name string) (*model.FieldDefinition, error)
	Insert(ctx context.Context, field *model.FieldDefinition) error
	Update(ctx context.Context, field *model.FieldDefinition) error
	Delete(ctx context.Context, id string) error
	SetOrder(ctx context.Context, id string, order int) error
	MaxOrder(ctx context.Context) (int, error)
}

// CustomerRepository handles customer record storage, including the bulk
// attribute rewrites that keep records aligned with schema changes.
type CustomerRepository interface {
	List(ctx context.Context) ([]model.CustomerRecord, error)
	Insert(ctx context.Context, attrs model.Attributes) (*model.CustomerRecord, error)
	Update(ctx context.Context, id string, attrs model.Attributes) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	// SetAttributeAll sets name to value on every stored record.
	SetAttributeAll(ctx context.Context, name string, value any) error
	// UnsetAttributeAll removes the attribute key from every stored record.
	UnsetAttributeAll(ctx context.Context, name string) error
}

// AllowedEmailRepository handles the access allow-list.
type AllowedEmailRepository interface {
	List(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, email string) error
	Remove(ctx context.Context, email string) error
}
