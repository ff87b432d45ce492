package pet

import "fmt"

// Kind is the species category of a pet.
type Kind string

const (
	KindDog     Kind = "dog"
	KindCat     Kind = "cat"
	KindBird    Kind = "bird"
	KindRabbit  Kind = "rabbit"
	KindFish    Kind = "fish"
	KindReptile Kind = "reptile"
	KindOther   Kind = "other"
)

var validKinds = map[Kind]struct{}{
	KindDog:     {},
	KindCat:     {},
	KindBird:    {},
	KindRabbit:  {},
	KindFish:    {},
	KindReptile: {},
	KindOther:   {},
}

// IsValid returns true if the kind is a recognized category.
func (k Kind) IsValid() bool {
	_, ok := validKinds[k]
	return ok
}

func (k Kind) String() string { return string(k) }

// ParseKind converts a string to a Kind, returning an error if invalid.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidPet, s)
	}
	return k, nil
}

// Status represents the adoption lifecycle state of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusAvailable, StatusPending, StatusAdopted}

// IsValid returns true if the status is a recognized lifecycle state.
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidPet, s)
	}
	return st, nil
}
