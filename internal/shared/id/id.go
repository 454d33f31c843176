// Package id provides centralized debug ID generation for the kernel.
//
// Handle identifiers are prefixed ULIDs: lexicographically sortable,
// unique across the process, and readable in logs. Object identifiers
// with ABI meaning (such as pipe IDs) stay plain counters owned by
// their objects; this package only covers debug naming.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// HandleID identifies a file handle in logs and traces.
type HandleID string

// HandlePrefix is the prefix carried by handle IDs.
const HandlePrefix = "fh"

// String returns the ID as a plain string.
func (id HandleID) String() string { return string(id) }

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by secure entropy.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy
// source, useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewHandleID generates a new handle ID.
func NewHandleID() HandleID {
	return HandleID(Default().GenerateWithPrefix(HandlePrefix))
}

// IsValid checks whether an ID string carries a parseable ULID after
// its prefix.
func IsValid(s string) bool {
	if len(s) < len(HandlePrefix)+1 {
		return false
	}
	_, err := ulid.Parse(s[len(HandlePrefix)+1:])
	return err == nil
}
