package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	petDomain "github.com/Kilat-Pet-Delivery/service-pet/internal/domain/pet"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"
)

// PetModel is the GORM model for the pet table.
type PetModel struct {
	ID           string `gorm:"type:varchar(24);primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	Kind         string `gorm:"type:varchar(20);not null"`
	Status       string `gorm:"type:varchar(20);not null"`
	Breed        string `gorm:"type:varchar(100)"`
	AgeMonths    int    `gorm:"type:int;not null;default:0"`
	Description  string `gorm:"type:text"`
	CreatedAt    string `gorm:"column:created_at;type:varchar(32);not null"`
	LastModified string `gorm:"column:last_modified;type:varchar(32);not null"`
}

func (PetModel) TableName() string { return "pet" }

// BeforeCreate assigns an ObjectID so the relational backends share the
// document store's identifier format.
func (m *PetModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = bson.NewObjectID().Hex()
	}
	return nil
}

// GormPetStore implements the pet Store on a relational database via GORM.
type GormPetStore struct {
	db *gorm.DB
}

func NewGormPetStore(db *gorm.DB) *GormPetStore {
	return &GormPetStore{db: db}
}

// AutoMigrate creates or updates the pet table.
func (r *GormPetStore) AutoMigrate() error {
	return r.db.AutoMigrate(&PetModel{})
}

func (r *GormPetStore) Find(ctx context.Context, filter petDomain.Filter, page petDomain.Page) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := r.db.WithContext(ctx).
		Where(filter.Equalities()).
		Order("created_at DESC").
		Offset(int(page.Skip)).
		Limit(int(page.Limit)).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find pets: %w", err)
	}

	pets := make([]*petDomain.Pet, 0, len(models))
	for i := range models {
		p, err := toPetDomain(&models[i])
		if err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, nil
}

func (r *GormPetStore) FindOne(ctx context.Context, id bson.ObjectID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id.Hex()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, petDomain.ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}
	return toPetDomain(&model)
}

func (r *GormPetStore) InsertOne(ctx context.Context, pet *petDomain.Pet) (bson.ObjectID, error) {
	model := toPetModel(pet)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return bson.NilObjectID, fmt.Errorf("failed to insert pet: %w", err)
	}
	id, err := bson.ObjectIDFromHex(model.ID)
	if err != nil {
		return bson.NilObjectID, petDomain.ErrInsertFailed
	}
	return id, nil
}

func (r *GormPetStore) UpdateOne(ctx context.Context, id bson.ObjectID, attrs petDomain.Attributes, lastModified time.Time) (petDomain.UpdateResult, error) {
	fields := attributeFields(attrs)
	fields["last_modified"] = petDomain.FormatTimestamp(lastModified)

	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ?", id.Hex()).
		Updates(fields)
	if result.Error != nil {
		return petDomain.UpdateResult{}, fmt.Errorf("failed to update pet: %w", result.Error)
	}
	// SQL drivers report matched rows; a matched row always changes last_modified.
	return petDomain.UpdateResult{
		MatchedCount:  result.RowsAffected,
		ModifiedCount: result.RowsAffected,
	}, nil
}

func (r *GormPetStore) DeleteOne(ctx context.Context, id bson.ObjectID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id.Hex()).Delete(&PetModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete pet: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormPetStore) CountDocuments(ctx context.Context, filter petDomain.Filter) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PetModel{}).Where(filter.Equalities()).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count pets: %w", err)
	}
	return total, nil
}

func (r *GormPetStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (r *GormPetStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// --- Conversions ---

func attributeFields(a petDomain.Attributes) map[string]interface{} {
	return map[string]interface{}{
		"name":        a.Name,
		"kind":        string(a.Kind),
		"status":      string(a.Status),
		"breed":       a.Breed,
		"age_months":  a.AgeMonths,
		"description": a.Description,
	}
}

func toPetModel(p *petDomain.Pet) *PetModel {
	m := &PetModel{
		Name:         p.Name(),
		Kind:         string(p.Kind()),
		Status:       string(p.Status()),
		Breed:        p.Breed(),
		AgeMonths:    p.AgeMonths(),
		Description:  p.Description(),
		CreatedAt:    petDomain.FormatTimestamp(p.CreatedAt()),
		LastModified: petDomain.FormatTimestamp(p.LastModified()),
	}
	if !p.ID().IsZero() {
		m.ID = p.ID().Hex()
	}
	return m
}

func toPetDomain(m *PetModel) (*petDomain.Pet, error) {
	id, err := bson.ObjectIDFromHex(m.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt pet id %q: %w", m.ID, err)
	}
	createdAt, err := petDomain.ParseTimestamp(m.CreatedAt)
	if err != nil {
		return nil, err
	}
	lastModified, err := petDomain.ParseTimestamp(m.LastModified)
	if err != nil {
		return nil, err
	}
	return petDomain.Reconstruct(id, petDomain.Attributes{
		Name:        m.Name,
		Kind:        petDomain.Kind(m.Kind),
		Status:      petDomain.Status(m.Status),
		Breed:       m.Breed,
		AgeMonths:   m.AgeMonths,
		Description: m.Description,
	}, createdAt, lastModified), nil
}
