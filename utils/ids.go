package utils

import "github.com/google/uuid"

// IDGenerator produces the two identifier spaces carried by each user
// record: the primary id used for lookups and the display guid.
type IDGenerator interface {
	NewID() string
	NewGUID() string
}

// UUIDGenerator backs both identifier spaces with random v4 UUIDs. The
// guid keeps the xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx shape of records
// already in the wild.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string   { return uuid.NewString() }
func (UUIDGenerator) NewGUID() string { return uuid.NewString() }
