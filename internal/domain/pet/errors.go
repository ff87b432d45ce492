package pet

import "errors"

var (
	// ErrInvalidIdentifier is returned when an external id is not a valid ObjectID.
	ErrInvalidIdentifier = errors.New("invalid object id")
	// ErrPetNotFound is returned when no document has the requested id.
	ErrPetNotFound = errors.New("pet not found")
	// ErrNotModified is returned when an update left the document unchanged.
	ErrNotModified = errors.New("pet not modified")
	// ErrInsertFailed is returned when the store reports no generated id.
	ErrInsertFailed = errors.New("insert returned no id")
	// ErrInvalidPet is returned when a payload violates the pet schema.
	ErrInvalidPet = errors.New("invalid pet")
)
