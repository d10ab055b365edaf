package ingest

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rshade/dynlist/internal/logging"
)

var (
	// ErrEmptyID indicates a structured record without an id.
	ErrEmptyID = errors.New("record has empty id")
	// ErrNegativeCount indicates Generate was asked for fewer than zero records.
	ErrNegativeCount = errors.New("record count must not be negative")
)

// Record is one list row.
type Record struct {
	ID   string `json:"id"   yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// IDs returns the record ids in order.
func IDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// Index maps each id to its record.
func Index(records []Record) map[string]Record {
	m := make(map[string]Record, len(records))
	for _, r := range records {
		m[r.ID] = r
	}
	return m
}

// dedupe drops records whose id was already seen and logs each drop.
func dedupe(ctx context.Context, records []Record, source string) []Record {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	dropped := 0
	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			dropped++
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	if dropped > 0 {
		log := logging.FromContext(ctx)
		log.Warn().
			Str("component", "ingest").
			Str("source", source).
			Int("dropped", dropped).
			Msg("duplicate record ids dropped")
	}
	return out
}

//nolint:gochecknoglobals // Read-only word list for synthetic text.
var words = strings.Fields(`alpha bravo charlie delta echo foxtrot golf hotel india juliet
kilo lima mike november oscar papa quebec romeo sierra tango uniform victor whiskey
xray yankee zulu`)

// Generate returns n synthetic records with ids "item-0".."item-(n-1)" and
// text of varying length. The same seed always yields the same records.
func Generate(n int, seed uint64) ([]Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, n)
	}
	//nolint:gosec // Deterministic synthetic data, not security sensitive.
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	records := make([]Record, n)
	for i := range records {
		count := 1 + rng.IntN(24)
		parts := make([]string, count)
		for j := range parts {
			parts[j] = words[rng.IntN(len(words))]
		}
		records[i] = Record{
			ID:   fmt.Sprintf("item-%d", i),
			Text: strings.Join(parts, " "),
		}
	}
	return records, nil
}
