// Package store owns the wardrobe's collections. It is the single
// writer: in-memory state is authoritative and mutations apply
// synchronously, while durable persistence is best-effort and
// asynchronous. A failed write never rolls back or blocks a mutation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"

	"digistyle/internal/db"
	"digistyle/internal/model"
)

// Storage keys. One row per collection, written independently so a
// failure on one never affects the other.
const (
	itemsKey   = "digistyle_items"
	outfitsKey = "digistyle_outfits"
	profileKey = "digistyle_profile"
)

// SaveResult reports the outcome of one durable write. Observing these
// is optional telemetry; persistence stays fire-and-forget either way.
type SaveResult struct {
	Key string
	Err error
}

// Store holds the wardrobe collections and persists them to the
// key/value storage table after every mutation.
type Store struct {
	logger  *slog.Logger
	sdb     *sql.DB
	results chan SaveResult

	mu      sync.Mutex
	items   []model.ClothingItem
	outfits []model.Outfit
	profile model.Profile
	seq     uint64

	writeMu sync.Mutex
	applied map[string]uint64
	wg      sync.WaitGroup
}

// New loads the wardrobe from storage. Missing or unreadable state is
// replaced by the demonstration seed (items) or an empty list
// (outfits); loading never fails and never blocks startup on bad data.
func New(ctx context.Context, sdb *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		logger:  logger,
		sdb:     sdb,
		results: make(chan SaveResult, 64),
		applied: make(map[string]uint64),
	}

	if !s.load(ctx, itemsKey, &s.items) {
		s.items = SeedItems()
	}
	if !s.load(ctx, outfitsKey, &s.outfits) {
		s.outfits = nil
	}
	// A missing profile is simply the zero profile.
	s.load(ctx, profileKey, &s.profile)

	logger.Info("wardrobe loaded", "items", len(s.items), "outfits", len(s.outfits))
	return s
}

// load reads and decodes one collection, reporting whether usable state
// was found. Decode failures are logged and treated as absent.
func (s *Store) load(ctx context.Context, key string, target any) bool {
	value, ok, err := db.Get(ctx, s.sdb, key)
	if err != nil {
		s.logger.Error("failed to read stored state, using defaults", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		s.logger.Error("stored state is corrupt, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// Items returns the items, most recently added first.
func (s *Store) Items() []model.ClothingItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ClothingItem, len(s.items))
	copy(out, s.items)
	return out
}

// Outfits returns the outfits, most recently created first.
func (s *Store) Outfits() []model.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Outfit, len(s.outfits))
	copy(out, s.outfits)
	return out
}

// Counts returns the number of items and outfits.
func (s *Store) Counts() (items, outfits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), len(s.outfits)
}

// AddItem inserts item at the front of the collection.
func (s *Store) AddItem(item model.ClothingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.ClothingItem{item}, s.items...)
	s.persist(itemsKey, s.items)
}

// DeleteItem removes the item with the given id. Deleting an unknown
// id is a no-op. Outfits that embedded a copy of the item keep it.
func (s *Store) DeleteItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(s.items) {
		return
	}
	s.items = kept
	s.persist(itemsKey, s.items)
}

// CreateOutfit inserts outfit at the front of the collection.
func (s *Store) CreateOutfit(outfit model.Outfit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outfits = append([]model.Outfit{outfit}, s.outfits...)
	s.persist(outfitsKey, s.outfits)
}

// DeleteOutfit removes the outfit with the given id; no-op if unknown.
func (s *Store) DeleteOutfit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.outfits[:0]
	for _, outfit := range s.outfits {
		if outfit.ID != id {
			kept = append(kept, outfit)
		}
	}
	if len(kept) == len(s.outfits) {
		return
	}
	s.outfits = kept
	s.persist(outfitsKey, s.outfits)
}

// Profile returns the stored user profile.
func (s *Store) Profile() model.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SetProfile replaces the stored user profile.
func (s *Store) SetProfile(p model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.persist(profileKey, s.profile)
}

// SaveResults exposes durable-write outcomes for telemetry. The channel
// is buffered and never blocks the store; results are dropped when no
// one is listening.
func (s *Store) SaveResults() <-chan SaveResult {
	return s.results
}

// Flush waits for all outstanding durable writes to finish.
func (s *Store) Flush() {
	s.wg.Wait()
}

// persist serializes the collection snapshot and writes it in the
// background. Caller must hold s.mu; the generation counter makes a
// late older write lose to a newer one.
func (s *Store) persist(key string, snapshot any) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		// Cannot happen for these types, but keep the fail-soft contract.
		s.logger.Error("failed to encode state", "key", key, "error", err)
		s.report(key, err)
		return
	}

	s.seq++
	gen := s.seq
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		if gen < s.applied[key] {
			return
		}
		s.applied[key] = gen

		if err := db.Set(context.Background(), s.sdb, key, string(data)); err != nil {
			s.logger.Error("failed to persist state; in-memory state remains authoritative",
				"key", key, "error", err)
			s.report(key, err)
			return
		}
		s.report(key, nil)
	}()
}

func (s *Store) report(key string, err error) {
	select {
	case s.results <- SaveResult{Key: key, Err: err}:
	default:
	}
}
