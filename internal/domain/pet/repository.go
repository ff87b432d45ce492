package pet

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// Store is the document collection holding pets.
type Store interface {
	// Find returns documents matching filter ordered by created_at descending.
	Find(ctx context.Context, filter Filter, page Page) ([]*Pet, error)

	// FindOne returns the document with id, or ErrPetNotFound.
	FindOne(ctx context.Context, id bson.ObjectID) (*Pet, error)

	// InsertOne persists a new document and returns the store-generated id.
	InsertOne(ctx context.Context, pet *Pet) (bson.ObjectID, error)

	// UpdateOne sets the given attributes and last_modified on the document with id.
	UpdateOne(ctx context.Context, id bson.ObjectID, attrs Attributes, lastModified time.Time) (UpdateResult, error)

	// DeleteOne removes the document with id and returns the deleted count.
	DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error)

	// CountDocuments counts documents matching filter.
	CountDocuments(ctx context.Context, filter Filter) (int64, error)

	// Ping checks connectivity to the backing store.
	Ping(ctx context.Context) error
}
