package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// PetDocument is the BSON shape of a pet in the pet collection.
type PetDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Kind         string        `bson:"kind"`
	Status       string        `bson:"status"`
	Breed        string        `bson:"breed"`
	AgeMonths    int           `bson:"age_months"`
	Description  string        `bson:"description"`
	CreatedAt    string        `bson:"created_at"`
	LastModified string        `bson:"last_modified"`
}

// MongoPetStore implements the pet Store on a MongoDB collection.
type MongoPetStore struct {
	coll *mongo.Collection
}

func NewMongoPetStore(coll *mongo.Collection) *MongoPetStore {
	return &MongoPetStore{coll: coll}
}

func (r *MongoPetStore) Find(ctx context.Context, filter petDomain.Filter, page petDomain.Page) ([]*petDomain.Pet, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page.Skip).
		SetLimit(page.Limit)

	cursor, err := r.coll.Find(ctx, toBSONFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pets: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []PetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode pets: %w", err)
	}

	pets := make([]*petDomain.Pet, 0, len(docs))
	for i := range docs {
		p, err := docToDomain(&docs[i])
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, nil
}

func (r *MongoPetStore) FindOne(ctx context.Context, id bson.ObjectID) (*petDomain.Pet, error) {
	var doc PetDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, petDomain.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return docToDomain(&doc)
}

func (r *MongoPetStore) InsertOne(ctx context.Context, pet *petDomain.Pet) (bson.ObjectID, error) {
	result, err := r.coll.InsertOne(ctx, domainToDoc(pet))
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("failed to insert pet: %w", err)
	}
	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok || id.IsZero() {
		return bson.NilObjectID, petDomain.ErrInsertFailed
	}
	return id, nil
}

func (r *MongoPetStore) UpdateOne(ctx context.Context, id bson.ObjectID, attrs petDomain.Attributes, lastModified time.Time) (petDomain.UpdateResult, error) {
	set := bson.M(attributeFields(attrs))
	set["last_modified"] = petDomain.FormatTimestamp(lastModified)

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return petDomain.UpdateResult{}, fmt.Errorf("failed to update pet: %w", err)
	}
	return petDomain.UpdateResult{
		MatchedCount:  result.MatchedCount,
		ModifiedCount: result.ModifiedCount,
	}, nil
}

func (r *MongoPetStore) DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error) {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete pet: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *MongoPetStore) CountDocuments(ctx context.Context, filter petDomain.Filter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, toBSONFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return n, nil
}

func (r *MongoPetStore) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}

func toBSONFilter(f petDomain.Filter) bson.M {
	return bson.M(f.Equalities())
}

func domainToDoc(p *petDomain.Pet) *PetDocument {
	return &PetDocument{
		ID:           p.ID(),
		Name:         p.Name(),
		Kind:         string(p.Kind()),
		Status:       string(p.Status()),
		Breed:        p.Breed(),
		AgeMonths:    p.AgeMonths(),
		Description:  p.Description(),
		CreatedAt:    petDomain.FormatTimestamp(p.CreatedAt()),
		LastModified: petDomain.FormatTimestamp(p.LastModified()),
	}
}

func docToDomain(d *PetDocument) (*petDomain.Pet, error) {
	if d.ID.IsZero() {
		return nil, fmt.Errorf("pet document without _id")
	}
	createdAt, err := petDomain.ParseTimestamp(d.CreatedAt)
	if err != nil {
		return nil, err
	}
	lastModified, err := petDomain.ParseTimestamp(d.LastModified)
	if err != nil {
		return nil, err
	}
	return petDomain.Reconstruct(d.ID, petDomain.Attributes{
		Name:        d.Name,
		Kind:        petDomain.Kind(d.Kind),
		Status:      petDomain.Status(d.Status),
		Breed:       d.Breed,
		AgeMonths:   d.AgeMonths,
		Description: d.Description,
	}, createdAt, lastModified), nil
}
