package model

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attributes maps field names to stored values. The store enforces no
// schema: values are whatever the driver decoded (string, float64, int32,
// bool, nil). Keys may lag behind the current field set in both directions;
// projection fills missing keys and views ignore stale ones.
type Attributes map[string]any

// Clone returns a shallow copy of the attribute map.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// CustomerRecord is one customer entry. Attributes are stored inline so the
// persisted document stays flat, matching the schema-less collection layout.
type CustomerRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Attributes Attributes         `bson:",inline"`
}

// MarshalJSON flattens the record into a single JSON object with the
// attribute keys at the top level next to "_id".
func (r CustomerRecord) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(r.Attributes)+1)
	for k, v := range r.Attributes {
		doc[k] = v
	}
	if !r.ID.IsZero() {
		doc["_id"] = r.ID.Hex()
	}
	return json.Marshal(doc)
}
