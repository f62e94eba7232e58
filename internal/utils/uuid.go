package utils

import "github.com/google/uuid"

// UUIDGenerator hands out time-ordered ids, falling back to random v4 ids
// when a v7 id cannot be produced.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
