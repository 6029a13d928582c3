package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
)

// HeaderStore keeps the panel flags of every mounted header. An instance
// lives until ttl passes without a render or toggle touching it.
type HeaderStore struct {
	mu     sync.Mutex
	items  *gocache.Cache
	logger *zap.Logger
}

// NewHeaderStore creates a store; a cleanupInterval of zero disables the
// background janitor and expired entries are then dropped on access.
func NewHeaderStore(ttl, cleanupInterval time.Duration, logger *zap.Logger) *HeaderStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeaderStore{
		items:  gocache.New(ttl, cleanupInterval),
		logger: logger,
	}
}

// New mints a header instance with both panels closed.
func (s *HeaderStore) New() models.HeaderState {
	state := models.HeaderState{ID: uuid.NewString()}
	s.mu.Lock()
	s.items.SetDefault(state.ID, state)
	s.mu.Unlock()
	s.logger.Debug("Header instance created", zap.String("header_id", state.ID))
	return state
}

// Get returns the instance id and refreshes its lifetime.
func (s *HeaderStore) Get(id string) (models.HeaderState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

// Resume returns the instance id when it is still alive, else a new one.
func (s *HeaderStore) Resume(id string) models.HeaderState {
	if id != "" {
		if state, ok := s.Get(id); ok {
			return state
		}
	}
	return s.New()
}

// Toggle flips one panel of instance id and returns the new state.
func (s *HeaderStore) Toggle(id string, panel models.HeaderPanel) (models.HeaderState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.getLocked(id)
	if !ok {
		return models.HeaderState{}, fmt.Errorf("header %q: %w", id, models.ErrNotFound)
	}
	state = state.Toggle(panel)
	s.items.SetDefault(id, state)

	s.logger.Debug("Header panel toggled",
		zap.String("header_id", id),
		zap.String("panel", string(panel)),
		zap.Bool("search_open", state.SearchOpen),
		zap.Bool("menu_open", state.MenuOpen),
	)
	return state, nil
}

// Len is the number of live and not yet collected instances.
func (s *HeaderStore) Len() int {
	return s.items.ItemCount()
}

func (s *HeaderStore) getLocked(id string) (models.HeaderState, bool) {
	v, ok := s.items.Get(id)
	if !ok {
		return models.HeaderState{}, false
	}
	state, ok := v.(models.HeaderState)
	if !ok {
		return models.HeaderState{}, false
	}
	s.items.SetDefault(id, state)
	return state, true
}
