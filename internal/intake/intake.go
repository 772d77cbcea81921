// Package intake turns a captured photo into a persisted wardrobe
// item. Each session walks an explicit state machine:
//
//	Upload -> Preview -> Details
//
// with backward navigation allowed one step at a time. Analysis
// failures are localized to the action that triggered them; the
// session keeps its partial state until saved or discarded.
package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"digistyle/internal/analysis"
	"digistyle/internal/imaging"
	"digistyle/internal/model"
)

// State is the current step of an intake session.
type State int

const (
	StateUpload State = iota
	StatePreview
	StateDetails
)

func (s State) String() string {
	switch s {
	case StateUpload:
		return "upload"
	case StatePreview:
		return "preview"
	case StateDetails:
		return "details"
	}
	return "unknown"
}

var (
	// ErrNotFound is returned for an unknown or discarded session.
	ErrNotFound = errors.New("intake session not found")

	// ErrBusy is returned when an analysis call is already in flight
	// for the session; duplicate concurrent requests are rejected.
	ErrBusy = errors.New("intake session is busy")

	// ErrWrongState is returned when an operation is not allowed at
	// the session's current step.
	ErrWrongState = errors.New("operation not allowed at this step")

	// ErrNotModified is returned by Undo when the working image
	// already matches the original.
	ErrNotModified = errors.New("working image matches the original")

	// ErrAlreadyModified is returned by RemoveBackground when the
	// background was already removed; undo first.
	ErrAlreadyModified = errors.New("background already removed")
)

// ItemStore is the mutation contract intake needs from the wardrobe store.
type ItemStore interface {
	AddItem(item model.ClothingItem)
}

// Snapshot is a read-only view of a session, safe to serialize.
type Snapshot struct {
	ID               string                   `json:"id"`
	State            string                   `json:"state"`
	ImageURL         string                   `json:"imageUrl,omitempty"`
	OriginalImageURL string                   `json:"originalImageUrl,omitempty"`
	Modified         bool                     `json:"modified"`
	Busy             bool                     `json:"busy"`
	Classification   *analysis.Classification `json:"classification,omitempty"`
}

// Session is one in-progress intake workflow.
type Session struct {
	id string

	mu             sync.Mutex
	state          State
	image          string // working data URI
	original       string // snapshot taken at upload, enables undo
	classification *analysis.Classification
	busy           bool
	closed         bool
}

// Manager owns the live intake sessions.
type Manager struct {
	store   ItemStore
	service analysis.Service

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an intake manager backed by the given store and
// analysis service.
func NewManager(store ItemStore, service analysis.Service) *Manager {
	return &Manager{
		store:    store,
		service:  service,
		sessions: make(map[string]*Session),
	}
}

// Begin starts a session from an uploaded image: the photo is decoded,
// downscaled so its longer edge is at most imaging.MaxDimension, and
// re-encoded as compressed JPEG. The result becomes both the working
// image and the retained original, and the session enters Preview.
func (m *Manager) Begin(image io.Reader) (*Session, error) {
	s := &Session{id: uuid.NewString(), state: StateUpload}
	if err := s.attach(image); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s, nil
}

// Attach accepts a replacement photo for a session that went back to
// the upload step. The new image becomes both the working image and
// the retained original, and the session re-enters Preview.
func (m *Manager) Attach(id string, image io.Reader) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	return s.attach(image)
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Discard abandons a session, dropping all partial state. An analysis
// call still in flight completes into the closed session and its
// result is ignored.
func (m *Manager) Discard(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// RemoveBackground replaces the working image with a background-free
// version from the analysis service. On failure the working image is
// left untouched. Only one call may be in flight per session.
func (m *Manager) RemoveBackground(ctx context.Context, id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	image, err := s.beginCall(func() error {
		if s.image != s.original {
			return ErrAlreadyModified
		}
		return nil
	})
	if err != nil {
		return err
	}

	processed, err := m.service.RemoveBackground(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.closed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.image = processed
	return nil
}

// Analyze classifies the working image and, on success, advances the
// session to Details with the classification retained.
func (m *Manager) Analyze(ctx context.Context, id string) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}

	image, err := s.beginCall(nil)
	if err != nil {
		return err
	}

	result, err := m.service.Classify(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.closed {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	s.classification = result
	s.state = StateDetails
	return nil
}

// Save mints the ClothingItem from the session's working image and
// classification, adds it to the store, and ends the session. The
// sub-category may be edited before saving; an empty override keeps
// the classified value.
func (m *Manager) Save(id, subCategory string) (*model.ClothingItem, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.state != StateDetails || s.classification == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: save requires a classified image", ErrWrongState)
	}

	c := s.classification
	item := model.ClothingItem{
		ID:          uuid.NewString(),
		ImageURL:    s.image,
		Category:    c.Category,
		SubCategory: c.SubCategory,
		Color:       c.Colors,
		Season:      c.Seasons,
		Tags:        c.Tags,
		DateAdded:   time.Now().UnixMilli(),
	}
	if override := strings.TrimSpace(subCategory); override != "" {
		item.SubCategory = override
	}
	// Keep the original only when background removal actually changed
	// the image; that presence is what enables undo semantics later.
	if s.image != s.original {
		item.OriginalImageURL = s.original
	}
	s.closed = true
	s.mu.Unlock()

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	m.store.AddItem(item)
	return &item, nil
}

// attach processes an uploaded image into the session. Valid at Upload.
func (s *Session) attach(image io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUpload {
		return fmt.Errorf("%w: image already attached", ErrWrongState)
	}

	result, err := imaging.Process(image)
	if err != nil {
		return err
	}

	uri := result.DataURI()
	s.image = uri
	s.original = uri
	s.state = StatePreview
	return nil
}

// Undo restores the working image to the retained original. Valid only
// in Preview and only when the image was actually modified.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePreview {
		return fmt.Errorf("%w: undo is a preview action", ErrWrongState)
	}
	if s.busy {
		return ErrBusy
	}
	if s.image == s.original {
		return ErrNotModified
	}
	s.image = s.original
	return nil
}

// Back moves one step backward: Details to Preview, Preview to Upload.
// Partial state (images, classification) is retained in memory until
// the session is saved or discarded.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	switch s.state {
	case StateDetails:
		s.state = StatePreview
	case StatePreview:
		s.state = StateUpload
	default:
		return fmt.Errorf("%w: already at upload", ErrWrongState)
	}
	return nil
}

// Snapshot returns the session's current state for display.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:               s.id,
		State:            s.state.String(),
		ImageURL:         s.image,
		OriginalImageURL: s.original,
		Modified:         s.image != s.original,
		Busy:             s.busy,
		Classification:   s.classification,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// beginCall marks the session busy for an analysis call and returns
// the working image to send. The extra check runs under the lock. The
// session stays in Preview while the call is pending; the caller must
// clear busy when the call completes.
func (s *Session) beginCall(check func() error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePreview {
		return "", fmt.Errorf("%w: analysis runs from preview", ErrWrongState)
	}
	if s.busy {
		return "", ErrBusy
	}
	if check != nil {
		if err := check(); err != nil {
			return "", err
		}
	}
	s.busy = true
	return s.image, nil
}
