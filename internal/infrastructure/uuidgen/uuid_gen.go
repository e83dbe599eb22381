package uuidgen

import (
	"github.com/google/uuid"

	"boardpulse/internal/domain/contract"
)

// Generator implements contract.IUUIDGenerator.
type Generator struct{}

// NewGenerator creates a new UUID generator.
func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

// NewUUID generates a new UUID.
func (g *Generator) NewUUID() string {
	return uuid.New().String()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
