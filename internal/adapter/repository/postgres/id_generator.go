package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator mints ULIDs for transactions, accounts and transfer-pair
// identifiers. Lexicographic order follows creation time, which keeps the
// sorted-ID lock ordering stable.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
