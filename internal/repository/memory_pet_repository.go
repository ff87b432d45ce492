package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryPetStore is an ephemeral pet Store for development and tests.
type MemoryPetStore struct {
	mu   sync.RWMutex
	byID map[bson.ObjectID]*petDomain.Pet
}

func NewMemoryPetStore() *MemoryPetStore {
	return &MemoryPetStore{byID: make(map[bson.ObjectID]*petDomain.Pet)}
}

func (r *MemoryPetStore) Find(_ context.Context, filter petDomain.Filter, page petDomain.Page) ([]*petDomain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*petDomain.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		// ObjectIDs embed a timestamp and counter, so they break ties in insertion order.
		return a.ID().Hex() > b.ID().Hex()
	})

	if page.Skip >= int64(len(matched)) {
		return []*petDomain.Pet{}, nil
	}
	end := int64(len(matched))
	if page.Limit < end-page.Skip {
		end = page.Skip + page.Limit
	}
	return matched[page.Skip:end], nil
}

func (r *MemoryPetStore) FindOne(_ context.Context, id bson.ObjectID) (*petDomain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, petDomain.ErrPetNotFound
	}
	return p, nil
}

func (r *MemoryPetStore) InsertOne(_ context.Context, pet *petDomain.Pet) (bson.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := pet.ID()
	if id.IsZero() {
		id = bson.NewObjectID()
	}
	r.byID[id] = petDomain.Reconstruct(id, pet.Attributes(), pet.CreatedAt(), pet.LastModified())
	return id, nil
}

func (r *MemoryPetStore) UpdateOne(_ context.Context, id bson.ObjectID, attrs petDomain.Attributes, lastModified time.Time) (petDomain.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return petDomain.UpdateResult{}, nil
	}
	stamp := petDomain.Stamp(lastModified)
	if current.HasAttributes(attrs) && current.LastModified().Equal(stamp) {
		return petDomain.UpdateResult{MatchedCount: 1}, nil
	}
	r.byID[id] = petDomain.Reconstruct(id, attrs, current.CreatedAt(), stamp)
	return petDomain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *MemoryPetStore) DeleteOne(_ context.Context, id bson.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *MemoryPetStore) CountDocuments(_ context.Context, filter petDomain.Filter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, p := range r.byID {
		if filter.Matches(p) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryPetStore) Ping(context.Context) error { return nil }
