package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// AllowedEmail is one entry of the access allow-list.
type AllowedEmail struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Email string             `bson:"email" json:"email"`
}
