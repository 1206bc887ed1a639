// Package overrides holds the per-variant quantity and compare-price state
// layered over the values extracted from the upload. Writes arrive in
// increasing precedence: seeding, bulk assignment, size surcharges, then
// explicit edits; an explicit edit is never reverted by a later seed pass.
package overrides

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/loomworks/shopforge/pkg/models"
)

// Key builds the canonical variant identity string. Stable across
// re-renders of the same upload: same (size, color, title) always yields
// the same key.
func Key(size, color, title string) string {
	return fmt.Sprintf("%s|%s|%s", strings.TrimSpace(size), strings.TrimSpace(color), strings.TrimSpace(title))
}

// KeySize returns the size component of a variant key
func KeySize(key string) string {
	parts := strings.SplitN(key, "|", 3)
	return parts[0]
}

// HistoryEntry records one mutation applied to the store
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"` // seed, bulk_qty, bulk_compare, surcharge, set
	Count     int       `json:"count"`  // variants affected
	Details   string    `json:"details"`
}

// Defaults are the configured fallbacks used while seeding and for reads
// of unknown keys.
type Defaults struct {
	Quantity     int
	ComparePrice float64
}

// Store manages variant quantity and compare-price overrides
type Store struct {
	mu        sync.RWMutex
	defaults  Defaults
	qty       map[string]int
	compare   map[string]float64
	edited    map[string]bool // keys written by an explicit Set
	history   []HistoryEntry
}

// NewStore creates an empty override store
func NewStore(defaults Defaults) *Store {
	return &Store{
		defaults: defaults,
		qty:      make(map[string]int),
		compare:  make(map[string]float64),
		edited:   make(map[string]bool),
	}
}

// Seed initializes overrides from exploded variant rows. Keys already
// present keep their current values, so re-seeding within a session never
// clobbers bulk writes or explicit edits.
func (s *Store) Seed(rows []models.VariantRow, titleOf func(models.Row) string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded := 0
	for _, row := range rows {
		key := Key(row.Size, row.Color, titleOf(row.Source))
		if _, exists := s.qty[key]; !exists {
			if row.ExtractedQty > 0 {
				s.qty[key] = row.ExtractedQty
			} else {
				s.qty[key] = s.defaults.Quantity
			}
			seeded++
		}
		if _, exists := s.compare[key]; !exists {
			// row.ComparePrice already fell back to the configured default
			// during explosion when the upload carried no usable value
			s.compare[key] = row.ComparePrice
		}
	}

	s.record("seed", seeded, fmt.Sprintf("Seeded %d variants from extracted data", seeded))
	return seeded
}

// ApplyBulkQuantity overwrites every known variant's quantity
func (s *Store) ApplyBulkQuantity(value int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.qty {
		if s.edited[key] {
			continue
		}
		s.qty[key] = value
		count++
	}

	s.record("bulk_qty", count, fmt.Sprintf("Bulk quantity %d applied to %d variants", value, count))
	return count
}

// ApplyBulkComparePrice overwrites every known variant's compare-at price
func (s *Store) ApplyBulkComparePrice(value float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for key := range s.compare {
		if s.edited[key] {
			continue
		}
		s.compare[key] = value
		count++
	}

	s.record("bulk_compare", count, fmt.Sprintf("Bulk compare price %.2f applied to %d variants", value, count))
	return count
}

// ApplySizeSurcharge recomputes compare-at prices for variants whose size
// appears in the rules, basing the uplift on the variant's current list
// price via priceLookup. Variants of other sizes are untouched.
func (s *Store) ApplySizeSurcharge(rules map[string]float64, priceLookup func(key string) float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, key := range s.keysLocked() {
		if s.edited[key] {
			continue
		}
		size := strings.ToUpper(strings.TrimSpace(KeySize(key)))
		percent, ok := rules[size]
		if !ok {
			continue
		}
		base := priceLookup(key)
		s.compare[key] = math.Round(base*(1+percent)*100) / 100
		count++
	}

	s.record("surcharge", count, fmt.Sprintf("Size surcharge applied to %d variants", count))
	return count
}

// Set records an explicit edit for one variant. Highest precedence: the
// values stick for the rest of the session regardless of later seed or
// bulk passes.
func (s *Store) Set(key string, quantity int, comparePrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.qty[key] = quantity
	s.compare[key] = comparePrice
	s.edited[key] = true

	s.record("set", 1, fmt.Sprintf("Explicit edit for %s", key))
}

// Quantity returns the stored quantity for a key, 0 when unknown
func (s *Store) Quantity(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.qty[key]
}

// ComparePrice returns the stored compare-at price for a key, falling back
// to the configured default when unknown.
func (s *Store) ComparePrice(key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.compare[key]; ok {
		return v
	}
	return s.defaults.ComparePrice
}

// Keys returns all known variant keys in sorted order
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keysLocked()
}

func (s *Store) keysLocked() []string {
	keys := make([]string, 0, len(s.qty))
	for key := range s.qty {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of known variants
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.qty)
}

// History returns the mutations applied so far
func (s *Store) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) record(action string, count int, details string) {
	s.history = append(s.history, HistoryEntry{
		Timestamp: time.Now(),
		Action:    action,
		Count:     count,
		Details:   details,
	})
}
