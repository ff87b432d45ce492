package pet

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttributes() Attributes {
	return Attributes{Name: "Rex", Kind: KindDog, Status: StatusAvailable, Breed: "beagle", AgeMonths: 14}
}

func TestNewPet_StampsEqualTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.FixedZone("X", 3600))

	p, err := NewPet(validAttributes(), now)
	require.NoError(t, err)

	assert.Equal(t, p.CreatedAt(), p.LastModified())
	assert.Equal(t, time.UTC, p.CreatedAt().Location())
	assert.Equal(t, 123456000, p.CreatedAt().Nanosecond())
	assert.True(t, p.ID().IsZero(), "id is assigned by the store")
}

func TestNewPet_RejectsInvalidAttributes(t *testing.T) {
	cases := map[string]func(a *Attributes){
		"blank name":   func(a *Attributes) { a.Name = "  " },
		"bad kind":     func(a *Attributes) { a.Kind = "dragon" },
		"bad status":   func(a *Attributes) { a.Status = "sold" },
		"negative age": func(a *Attributes) { a.AgeMonths = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			attrs := validAttributes()
			mutate(&attrs)
			_, err := NewPet(attrs, time.Now())
			assert.True(t, errors.Is(err, ErrInvalidPet))
		})
	}
}

func TestHasAttributes(t *testing.T) {
	p, err := NewPet(validAttributes(), time.Now())
	require.NoError(t, err)

	assert.True(t, p.HasAttributes(validAttributes()))

	changed := validAttributes()
	changed.Status = StatusAdopted
	assert.False(t, p.HasAttributes(changed))
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := Stamp(time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC))

	s := FormatTimestamp(ts)
	assert.Equal(t, "2026-01-02T03:04:05.000006Z", s)

	back, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestTimestampOrderingIsLexical(t *testing.T) {
	earlier := FormatTimestamp(time.Date(2026, 1, 1, 9, 59, 59, 999999000, time.UTC))
	later := FormatTimestamp(time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC))
	assert.Less(t, earlier, later)
}

func TestParseKindAndStatus(t *testing.T) {
	k, err := ParseKind("cat")
	require.NoError(t, err)
	assert.Equal(t, KindCat, k)

	_, err = ParseKind("Cat")
	assert.ErrorIs(t, err, ErrInvalidPet)

	s, err := ParseStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, s)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidPet)
}
