package pet

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// TimestampLayout is the fixed-width ISO-8601 form used for persisted timestamps.
// Fixed width keeps lexical and chronological order identical.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Attributes is the mutable field set of a pet document.
type Attributes struct {
	Name        string
	Kind        Kind
	Status      Status
	Breed       string
	AgeMonths   int
	Description string
}

// Validate checks the attribute set against the pet schema.
func (a Attributes) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPet)
	}
	if !a.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPet, a.Kind)
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPet, a.Status)
	}
	if a.AgeMonths < 0 {
		return fmt.Errorf("%w: age_months must not be negative", ErrInvalidPet)
	}
	return nil
}

// Pet is the aggregate root for a registered pet document.
type Pet struct {
	id           bson.ObjectID
	attrs        Attributes
	createdAt    time.Time
	lastModified time.Time
}

// NewPet builds an unsaved pet with both timestamps set to the same instant.
func NewPet(attrs Attributes, now time.Time) (*Pet, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	stamp := Stamp(now)
	return &Pet{
		attrs:        attrs,
		createdAt:    stamp,
		lastModified: stamp,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(id bson.ObjectID, attrs Attributes, createdAt, lastModified time.Time) *Pet {
	return &Pet{
		id:           id,
		attrs:        attrs,
		createdAt:    createdAt,
		lastModified: lastModified,
	}
}

// --- Getters ---

func (p *Pet) ID() bson.ObjectID { return p.id }
func (p *Pet) Attributes() Attributes { return p.attrs }
func (p *Pet) Name() string { return p.attrs.Name }
func (p *Pet) Kind() Kind { return p.attrs.Kind }
func (p *Pet) Status() Status { return p.attrs.Status }
func (p *Pet) Breed() string { return p.attrs.Breed }
func (p *Pet) AgeMonths() int { return p.attrs.AgeMonths }
func (p *Pet) Description() string { return p.attrs.Description }
func (p *Pet) CreatedAt() time.Time { return p.createdAt }
func (p *Pet) LastModified() time.Time { return p.lastModified }

// HasAttributes reports whether the stored field set equals attrs.
func (p *Pet) HasAttributes(attrs Attributes) bool {
	return p.attrs == attrs
}

// Stamp normalizes t to the persisted timestamp precision.
func Stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a value written by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
