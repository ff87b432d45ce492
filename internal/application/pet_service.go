package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// PetRequest is the request DTO for creating or replacing a pet.
type PetRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Kind        string `json:"kind" binding:"required,oneof=dog cat bird rabbit fish reptile other"`
	Status      string `json:"status" binding:"required,oneof=available pending adopted"`
	Breed       string `json:"breed" binding:"max=100"`
	AgeMonths   int    `json:"age_months" binding:"gte=0"`
	Description string `json:"description" binding:"max=1000"`
}

// ListPetsQuery is the query DTO for listing pets.
type ListPetsQuery struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=dog cat bird rabbit fish reptile other"`
	Status string `form:"status" binding:"omitempty,oneof=available pending adopted"`
	Limit  int64  `form:"limit"`
	Skip   int64  `form:"skip"`
}

// PetDTO is the API response representation of a pet.
type PetDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Status       string `json:"status"`
	Breed        string `json:"breed,omitempty"`
	AgeMonths    int    `json:"age_months"`
	Description  string `json:"description,omitempty"`
	CreatedAt    string `json:"created_at"`
	LastModified string `json:"last_modified"`
}

// PetListDTO is one page of pets plus the filtered total.
type PetListDTO struct {
	Pets  []PetDTO `json:"pets"`
	Count int64    `json:"count"`
}

// DeleteResultDTO reports a physical delete.
type DeleteResultDTO struct {
	Status string `json:"status"`
}

// PetStatsDTO holds registry counts by status.
type PetStatsDTO struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// EventPublisher publishes pet lifecycle events.
type EventPublisher interface {
	PublishPetEvent(ctx context.Context, eventType string, pet PetDTO) error
}

// Pet lifecycle event types.
const (
	PetCreated = "pet.created"
	PetUpdated = "pet.updated"
	PetDeleted = "pet.deleted"
)

// PetService implements the pet registry use cases.
type PetService struct {
	store     petDomain.Store
	codec     *petDomain.IDCodec
	publisher EventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewPetService creates a new PetService. publisher may be nil.
func NewPetService(store petDomain.Store, codec *petDomain.IDCodec, publisher EventPublisher, logger *zap.Logger) *PetService {
	return &PetService{
		store:     store,
		codec:     codec,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPets returns one page of pets matching the optional kind and status.
func (s *PetService) ListPets(ctx context.Context, q ListPetsQuery) (*PetListDTO, error) {
	filter, err := buildFilter(q.Kind, q.Status)
	if err != nil {
		return nil, err
	}
	page := petDomain.NormalizePage(q.Skip, q.Limit)

	pets, err := s.store.Find(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	count, err := s.store.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}

	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = s.toPetDTO(p)
	}
	return &PetListDTO{Pets: dtos, Count: count}, nil
}

// GetPet returns a single pet by its external id.
func (s *PetService) GetPet(ctx context.Context, rawID string) (*PetDTO, error) {
	p, err := s.getPetOrNotFound(ctx, rawID)
	if err != nil {
		return nil, err
	}
	result := s.toPetDTO(p)
	return &result, nil
}

// CreatePet stamps and inserts a new pet, then returns it as stored.
func (s *PetService) CreatePet(ctx context.Context, req PetRequest) (*PetDTO, error) {
	attrs, err := toAttributes(req)
	if err != nil {
		return nil, err
	}
	p, err := petDomain.NewPet(attrs, s.now())
	if err != nil {
		return nil, err
	}

	id, err := s.store.InsertOne(ctx, p)
	if err != nil {
		s.logger.Error("failed to create pet", zap.Error(err))
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}
	if id.IsZero() {
		return nil, petDomain.ErrInsertFailed
	}

	stored, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load created pet: %w", err)
	}

	result := s.toPetDTO(stored)
	s.logger.Info("pet created",
		zap.String("pet_id", result.ID),
		zap.String("kind", result.Kind),
	)
	s.publish(ctx, PetCreated, result)
	return &result, nil
}

// UpdatePet merges req into the stored pet and re-stamps last_modified.
func (s *PetService) UpdatePet(ctx context.Context, rawID string, req PetRequest) (*PetDTO, error) {
	current, err := s.getPetOrNotFound(ctx, rawID)
	if err != nil {
		return nil, err
	}
	attrs, err := toAttributes(req)
	if err != nil {
		return nil, err
	}
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, attrs)
}

// ChangeStatus moves a pet to status, keeping every other field.
func (s *PetService) ChangeStatus(ctx context.Context, id bson.ObjectID, status petDomain.Status) (*PetDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", petDomain.ErrInvalidPet, status)
	}
	current, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	attrs := current.Attributes()
	attrs.Status = status
	return s.applyUpdate(ctx, current, attrs)
}

func (s *PetService) applyUpdate(ctx context.Context, current *petDomain.Pet, attrs petDomain.Attributes) (*PetDTO, error) {
	if current.HasAttributes(attrs) {
		return nil, petDomain.ErrNotModified
	}

	res, err := s.store.UpdateOne(ctx, current.ID(), attrs, petDomain.Stamp(s.now()))
	if err != nil {
		s.logger.Error("failed to update pet", zap.Error(err))
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}
	if res.ModifiedCount == 0 {
		return nil, petDomain.ErrNotModified
	}

	updated, err := s.store.FindOne(ctx, current.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load updated pet: %w", err)
	}

	result := s.toPetDTO(updated)
	s.logger.Info("pet updated",
		zap.String("pet_id", result.ID),
		zap.String("status", result.Status),
	)
	s.publish(ctx, PetUpdated, result)
	return &result, nil
}

// DeletePet physically removes an existing pet.
func (s *PetService) DeletePet(ctx context.Context, rawID string) (*DeleteResultDTO, error) {
	current, err := s.getPetOrNotFound(ctx, rawID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.store.DeleteOne(ctx, current.ID())
	if err != nil {
		s.logger.Error("failed to delete pet", zap.Error(err))
		return nil, fmt.Errorf("failed to delete pet: %w", err)
	}
	if deleted == 0 {
		// Removed by a concurrent request after the existence check.
		return nil, petDomain.ErrPetNotFound
	}

	result := s.toPetDTO(current)
	s.logger.Info("pet deleted", zap.String("pet_id", result.ID))
	s.publish(ctx, PetDeleted, result)
	return &DeleteResultDTO{Status: fmt.Sprintf("deleted count: %d", deleted)}, nil
}

// PetStats counts pets in total and per status.
func (s *PetService) PetStats(ctx context.Context) (*PetStatsDTO, error) {
	total, err := s.store.CountDocuments(ctx, petDomain.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count pets: %w", err)
	}
	byStatus := make(map[string]int64, len(petDomain.Statuses))
	for _, st := range petDomain.Statuses {
		n, err := s.store.CountDocuments(ctx, petDomain.NewFilter("", st))
		if err != nil {
			return nil, fmt.Errorf("failed to count %s pets: %w", st, err)
		}
		byStatus[string(st)] = n
	}
	return &PetStatsDTO{Total: total, ByStatus: byStatus}, nil
}

// Ping reports whether the backing store is reachable.
func (s *PetService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *PetService) getPetOrNotFound(ctx context.Context, rawID string) (*petDomain.Pet, error) {
	id, err := s.codec.Validate(rawID)
	if err != nil {
		return nil, err
	}
	p, err := s.store.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, petDomain.ErrPetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return p, nil
}

func (s *PetService) publish(ctx context.Context, eventType string, pet PetDTO) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPetEvent(ctx, eventType, pet); err != nil {
		s.logger.Error("failed to publish pet event",
			zap.String("event_type", eventType),
			zap.String("pet_id", pet.ID),
			zap.Error(err),
		)
	}
}

func buildFilter(kind, status string) (petDomain.Filter, error) {
	var f petDomain.Filter
	if kind != "" {
		k, err := petDomain.ParseKind(kind)
		if err != nil {
			return f, err
		}
		f.Kind = k
	}
	if status != "" {
		st, err := petDomain.ParseStatus(status)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	return f, nil
}

func toAttributes(req PetRequest) (petDomain.Attributes, error) {
	kind, err := petDomain.ParseKind(req.Kind)
	if err != nil {
		return petDomain.Attributes{}, err
	}
	status, err := petDomain.ParseStatus(req.Status)
	if err != nil {
		return petDomain.Attributes{}, err
	}
	return petDomain.Attributes{
		Name:        req.Name,
		Kind:        kind,
		Status:      status,
		Breed:       req.Breed,
		AgeMonths:   req.AgeMonths,
		Description: req.Description,
	}, nil
}

func (s *PetService) toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
		ID:           s.codec.ToExternal(p.ID()),
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
