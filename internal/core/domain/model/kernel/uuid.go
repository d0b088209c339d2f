package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not initialized through
// one of the constructor functions. It is returned when validating a
// zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID is a value object that wraps github.com/google/uuid to provide
// domain-specific behavior and immutability. It identifies entities and
// aggregates throughout the domain model.
//
// The zero value is invalid and must be constructed through NewUUID,
// UUIDFromString, or UUIDFromBytes. UUID is immutable and thread-safe.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4). This is the primary way
// to create identifiers for new entities.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses a UUID from its string representation. It accepts
// the standard formats understood by google/uuid, including braced and
// urn-prefixed forms. Typically used when parsing identifiers from requests
// or external systems.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice. Used when
// reconstructing identifiers from binary database columns.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
// representation. A zero value renders as the nil UUID string.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for integration with
// persistence and external libraries. For a byte slice use Bytes()[:].
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs represent the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed when the UUID is the zero value,
// nil otherwise.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
