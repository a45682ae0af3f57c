package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldType enumerates the supported input types for a field.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeEmail    FieldType = "email"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeURL      FieldType = "url"
)

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeEmail, FieldTypeDate,
		FieldTypeTextarea, FieldTypeSelect, FieldTypeURL:
		return true
	}
	return false
}

// FieldDefinition describes one record attribute. Name is the key under
// which every customer record stores the attribute's value; it is unique
// across all fields and immutable once set.
type FieldDefinition struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Label     string             `bson:"label" json:"label"`
	Type      FieldType          `bson:"type" json:"type"`
	Options   []string           `bson:"options" json:"options"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasOption reports whether v is one of the field's select options.
func (f *FieldDefinition) HasOption(v string) bool {
	for _, opt := range f.Options {
		if opt == v {
			return true
		}
	}
	return false
}

// FieldPatch carries a partial update for a field definition. Nil members
// leave the current value untouched. Name is present only so that an
// attempted rename can be rejected explicitly.
type FieldPatch struct {
	Name    *string
	Label   *string
	Type    *FieldType
	Options *[]string
	Order   *int
}
