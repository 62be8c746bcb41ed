package link

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// CodeLength is the length of generated fallback aliases.
const CodeLength = 6

// Generator supplies record ids and random short codes. It is an interface so
// tests can substitute deterministic sequences and assert collision-retry
// behavior.
type Generator interface {
	// NewID returns an opaque unique identifier for a new record.
	NewID() string
	// NewCode returns a random lowercase alphanumeric short code.
	NewCode() string
}

// RandomGenerator is the production Generator: crypto/rand-backed UUIDs for
// ids and nanoid codes over [a-z0-9] for aliases.
type RandomGenerator struct {
	code   func() string
	suffix func() string
}

// NewRandomGenerator creates a RandomGenerator with codes of the given length.
func NewRandomGenerator(codeLength int) (*RandomGenerator, error) {
	code, err := nanoid.CustomASCII(codeAlphabet, codeLength)
	if err != nil {
		return nil, fmt.Errorf("code generator: %w", err)
	}

	suffix, err := nanoid.CustomASCII(codeAlphabet, 8)
	if err != nil {
		return nil, fmt.Errorf("suffix generator: %w", err)
	}

	return &RandomGenerator{code: code, suffix: suffix}, nil
}

// NewID returns a random UUID. If the system's randomness source fails it
// falls back to a timestamp plus random suffix; that form is best-effort and
// carries a vanishingly small residual collision risk.
func (g *RandomGenerator) NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), g.suffix())
	}

	return id.String()
}

// NewCode returns a fresh random short code.
func (g *RandomGenerator) NewCode() string {
	return g.code()
}
