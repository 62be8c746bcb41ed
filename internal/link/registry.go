package link

import (
	"context"
	"sync"
	"time"

	"github.com/chotalink/chotalink/internal/expiry"
	"go.uber.org/zap"
)

// Store persists the whole link collection. Implementations must treat absent
// or unreadable data as an empty collection on Load.
type Store interface {
	Load(ctx context.Context) ([]ShortLink, error)
	Save(ctx context.Context, links []ShortLink) error
}

// Registry owns the in-memory collection of short links. Every mutation is
// mirrored to the Store; persistence failures are logged and swallowed so the
// registry stays usable without storage.
type Registry struct {
	mu      sync.RWMutex
	links   []ShortLink
	store   Store
	gen     Generator
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewRegistry creates a registry and loads the persisted collection once.
// A failed load starts the registry empty rather than failing construction.
func NewRegistry(ctx context.Context, store Store, gen Generator, logger *zap.Logger) *Registry {
	r := &Registry{
		store:   store,
		gen:     gen,
		logger:  logger,
		nowFunc: time.Now,
	}

	links, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load persisted links, starting empty", zap.Error(err))

		links = nil
	}

	r.links = links

	return r
}

// Links returns a snapshot of the collection, newest first.
func (r *Registry) Links() []ShortLink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ShortLink, len(r.links))
	copy(out, r.links)

	return out
}

// Get returns the record with the given id, or ErrNotFound.
func (r *Registry) Get(id string) (*ShortLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.links {
		if r.links[i].ID == id {
			rec := r.links[i]

			return &rec, nil
		}
	}

	return nil, ErrNotFound
}

// Create resolves the draft into a full record, inserts it at the front of
// the collection, and persists. The collection is left unmutated when alias
// or destination validation fails.
func (r *Registry) Create(ctx context.Context, draft Draft) (*ShortLink, error) {
	destination := NormalizeURL(draft.OriginalURL)
	if !ValidDestination(destination) {
		return nil, ErrInvalidDestination
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var requested string
	if draft.Alias != nil {
		requested = *draft.Alias
	}

	alias, err := r.resolveAlias(requested, "")
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if draft.ExpiryDays != nil {
		expiresAt = expiry.DateFrom(r.nowFunc(), *draft.ExpiryDays)
	}

	id := draft.ID
	if id == "" {
		id = r.gen.NewID()
	}

	rec := ShortLink{
		ID:           id,
		OriginalURL:  destination,
		Alias:        alias,
		CreatedAt:    r.nowFunc(),
		ExpiresAt:    expiresAt,
		Clicks:       0,
		ClickHistory: []time.Time{},
	}

	r.links = append([]ShortLink{rec}, r.links...)
	r.persist(ctx)

	return &rec, nil
}

// Edit updates alias, destination, and expiry of an existing record. Absent
// draft fields leave the corresponding field unchanged; an explicit zero or
// negative ExpiryDays clears the expiry. Clicks, history, creation time, and
// id are never touched.
func (r *Registry) Edit(ctx context.Context, id string, draft Draft) (*ShortLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	cur := r.links[idx]

	requested := cur.Alias
	if draft.Alias != nil {
		requested = *draft.Alias
	}

	alias, err := r.resolveAlias(requested, id)
	if err != nil {
		return nil, err
	}

	destination := cur.OriginalURL
	if draft.OriginalURL != "" {
		destination = NormalizeURL(draft.OriginalURL)
		if !ValidDestination(destination) {
			return nil, ErrInvalidDestination
		}
	}

	expiresAt := cur.ExpiresAt
	if draft.ExpiryDays != nil {
		expiresAt = expiry.DateFrom(r.nowFunc(), *draft.ExpiryDays)
	}

	cur.Alias = alias
	cur.OriginalURL = destination
	cur.ExpiresAt = expiresAt

	r.links[idx] = cur
	r.persist(ctx)

	return &cur, nil
}

// Update applies an arbitrary transformation to the record matching id,
// replacing it in place. No-op when the id is absent.
func (r *Registry) Update(ctx context.Context, id string, updater func(ShortLink) ShortLink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return
	}

	r.links[idx] = updater(r.links[idx])
	r.persist(ctx)
}

// Delete removes the record with matching id. Silent no-op when absent.
func (r *Registry) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return
	}

	r.links = append(r.links[:idx], r.links[idx+1:]...)
	r.persist(ctx)
}

// RecordClick appends the current timestamp to the record's click history and
// increments its counter, returning the post-click record so a caller can act
// on it immediately. Returns nil when no record matches.
func (r *Registry) RecordClick(ctx context.Context, id string) *ShortLink {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil
	}

	rec := r.links[idx]
	rec.Clicks++
	rec.ClickHistory = append(rec.ClickHistory, r.nowFunc())

	r.links[idx] = rec
	r.persist(ctx)

	return &rec
}

// resolveAlias picks the alias for a record: the normalized requested alias
// when one is supplied, otherwise a generated code, retrying until it does not
// collide with any record other than excludeID. Callers hold the write lock.
func (r *Registry) resolveAlias(requested, excludeID string) (string, error) {
	taken := make(map[string]struct{}, len(r.links))

	for i := range r.links {
		if r.links[i].ID != excludeID {
			taken[r.links[i].Alias] = struct{}{}
		}
	}

	if requested != "" {
		sanitized := NormalizeAlias(requested)
		if sanitized == "" {
			return "", ErrInvalidAlias
		}

		if _, exists := taken[sanitized]; exists {
			return "", &AliasTakenError{Alias: sanitized}
		}

		return sanitized, nil
	}

	candidate := r.gen.NewCode()
	for {
		if _, exists := taken[candidate]; !exists {
			return candidate, nil
		}

		candidate = r.gen.NewCode()
	}
}

func (r *Registry) indexOf(id string) int {
	for i := range r.links {
		if r.links[i].ID == id {
			return i
		}
	}

	return -1
}

func (r *Registry) persist(ctx context.Context) {
	snapshot := make([]ShortLink, len(r.links))
	copy(snapshot, r.links)

	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.Warn("failed to persist links", zap.Error(err))
	}
}
