package link_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/chotalink/chotalink/internal/expiry"
	"github.com/chotalink/chotalink/internal/link"
	"github.com/chotalink/chotalink/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubGenerator returns scripted ids and codes, falling back to unique
// values once the script runs out.
type stubGenerator struct {
	ids       []string
	codes     []string
	idCalls   int
	codeCalls int
}

func (g *stubGenerator) NewID() string {
	g.idCalls++
	if g.idCalls <= len(g.ids) {
		return g.ids[g.idCalls-1]
	}

	return fmt.Sprintf("id-%d", g.idCalls)
}

func (g *stubGenerator) NewCode() string {
	g.codeCalls++
	if g.codeCalls <= len(g.codes) {
		return g.codes[g.codeCalls-1]
	}

	return fmt.Sprintf("code%d", g.codeCalls)
}

func newTestRegistry(t *testing.T) (*link.Registry, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore()
	gen, err := link.NewRandomGenerator(link.CodeLength)
	require.NoError(t, err)

	return link.NewRegistry(context.Background(), memStore, gen, zap.NewNop()), memStore
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func TestRegistry_Create(t *testing.T) {
	t.Run("normalizes destination and alias", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		rec, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "example.com",
			Alias:       strPtr("Promo Sale!"),
		})

		require.NoError(t, err)
		assert.Equal(t, "https://example.com", rec.OriginalURL)
		assert.Equal(t, "promo-sale", rec.Alias)
		assert.Nil(t, rec.ExpiresAt)
		assert.Equal(t, 0, rec.Clicks)
		assert.Empty(t, rec.ClickHistory)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("generates a six character alias when none is requested", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		rec, err := registry.Create(context.Background(), link.Draft{OriginalURL: "example.com"})

		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]{6}$`), rec.Alias)
	})

	t.Run("never silently substitutes a requested alias", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		first, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			Alias:       strPtr("x"),
		})
		require.NoError(t, err)
		assert.Equal(t, "x", first.Alias)

		_, err = registry.Create(context.Background(), link.Draft{
			OriginalURL: "b.com",
			Alias:       strPtr("x"),
		})

		var taken *link.AliasTakenError
		require.ErrorAs(t, err, &taken)
		assert.Equal(t, "x", taken.Alias)
		assert.Len(t, registry.Links(), 1)
	})

	t.Run("rejects an alias with no usable characters", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "example.com",
			Alias:       strPtr("!!!"),
		})

		assert.ErrorIs(t, err, link.ErrInvalidAlias)
		assert.Empty(t, registry.Links())
	})

	t.Run("rejects an invalid destination", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Create(context.Background(), link.Draft{OriginalURL: "justtext"})

		assert.ErrorIs(t, err, link.ErrInvalidDestination)
		assert.Empty(t, registry.Links())
	})

	t.Run("regenerates the code on collision until free", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		gen := &stubGenerator{codes: []string{"aaa111", "aaa111", "bbb222"}}
		registry := link.NewRegistry(context.Background(), memStore, gen, zap.NewNop())

		_, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			Alias:       strPtr("aaa111"),
		})
		require.NoError(t, err)

		rec, err := registry.Create(context.Background(), link.Draft{OriginalURL: "b.com"})

		require.NoError(t, err)
		assert.Equal(t, "bbb222", rec.Alias)
		assert.Equal(t, 3, gen.codeCalls)
	})

	t.Run("sets expiry from days and reports it live", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		rec, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			ExpiryDays:  intPtr(7),
		})

		require.NoError(t, err)
		require.NotNil(t, rec.ExpiresAt)
		assert.False(t, expiry.IsExpired(rec.ExpiresAt))
		require.NotNil(t, expiry.DaysLeft(rec.ExpiresAt))
		assert.Equal(t, 7, *expiry.DaysLeft(rec.ExpiresAt))
	})

	t.Run("ignores zero and negative expiry days", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		rec, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			ExpiryDays:  intPtr(0),
		})

		require.NoError(t, err)
		assert.Nil(t, rec.ExpiresAt)
	})

	t.Run("inserts new records at the front", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		second, err := registry.Create(context.Background(), link.Draft{OriginalURL: "b.com"})
		require.NoError(t, err)

		links := registry.Links()
		require.Len(t, links, 2)
		assert.Equal(t, second.ID, links[0].ID)
	})

	t.Run("honors a requested id", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		rec, err := registry.Create(context.Background(), link.Draft{
			ID:          "fixed-id",
			OriginalURL: "a.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "fixed-id", rec.ID)
	})

	t.Run("persists after every create", func(t *testing.T) {
		registry, memStore := newTestRegistry(t)

		_, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		assert.Equal(t, 1, memStore.Saves())

		persisted, err := memStore.Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, persisted, 1)
	})
}

func TestRegistry_Edit(t *testing.T) {
	t.Run("returns not found for an absent id", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Edit(context.Background(), "missing", link.Draft{})

		assert.ErrorIs(t, err, link.ErrNotFound)
	})

	t.Run("empty draft leaves every field unchanged", func(t *testing.T) {
		registry, memStore := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "example.com",
			Alias:       strPtr("keep-me"),
			ExpiryDays:  intPtr(5),
		})
		require.NoError(t, err)

		updated, err := registry.Edit(context.Background(), created.ID, link.Draft{})

		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.OriginalURL, updated.OriginalURL)
		assert.Equal(t, created.Alias, updated.Alias)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		require.NotNil(t, updated.ExpiresAt)
		assert.True(t, created.ExpiresAt.Equal(*updated.ExpiresAt))
		assert.Equal(t, created.Clicks, updated.Clicks)

		persisted, err := memStore.Load(context.Background())
		require.NoError(t, err)
		require.Len(t, persisted, 1)
		assert.Equal(t, created.Alias, persisted[0].Alias)
	})

	t.Run("keeping the own alias is not a collision", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "example.com",
			Alias:       strPtr("mine"),
		})
		require.NoError(t, err)

		updated, err := registry.Edit(context.Background(), created.ID, link.Draft{
			Alias: strPtr("mine"),
		})

		require.NoError(t, err)
		assert.Equal(t, "mine", updated.Alias)
	})

	t.Run("fails when the alias belongs to another record", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			Alias:       strPtr("first"),
		})
		require.NoError(t, err)

		second, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "b.com",
			Alias:       strPtr("second"),
		})
		require.NoError(t, err)

		_, err = registry.Edit(context.Background(), second.ID, link.Draft{Alias: strPtr("first")})

		var taken *link.AliasTakenError
		require.ErrorAs(t, err, &taken)
		assert.Equal(t, "first", taken.Alias)
	})

	t.Run("explicit zero expiry days clears the expiry", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			ExpiryDays:  intPtr(7),
		})
		require.NoError(t, err)
		require.NotNil(t, created.ExpiresAt)

		updated, err := registry.Edit(context.Background(), created.ID, link.Draft{
			ExpiryDays: intPtr(0),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.ExpiresAt)
	})

	t.Run("updates and normalizes the destination", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		updated, err := registry.Edit(context.Background(), created.ID, link.Draft{
			OriginalURL: "  b.com/path  ",
		})

		require.NoError(t, err)
		assert.Equal(t, "https://b.com/path", updated.OriginalURL)
	})

	t.Run("leaves clicks and history untouched", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		require.NotNil(t, registry.RecordClick(context.Background(), created.ID))

		updated, err := registry.Edit(context.Background(), created.ID, link.Draft{
			Alias: strPtr("renamed"),
		})

		require.NoError(t, err)
		assert.Equal(t, 1, updated.Clicks)
		assert.Len(t, updated.ClickHistory, 1)
	})
}

func TestRegistry_RecordClick(t *testing.T) {
	t.Run("counts sequential clicks in order", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		const clicks = 5

		var last *link.ShortLink
		for i := 0; i < clicks; i++ {
			last = registry.RecordClick(context.Background(), created.ID)
			require.NotNil(t, last)
		}

		assert.Equal(t, clicks, last.Clicks)
		require.Len(t, last.ClickHistory, clicks)

		for i := 1; i < clicks; i++ {
			assert.False(t, last.ClickHistory[i].Before(last.ClickHistory[i-1]))
		}
	})

	t.Run("returns the post-click record", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		updated := registry.RecordClick(context.Background(), created.ID)

		require.NotNil(t, updated)
		assert.Equal(t, 1, updated.Clicks)
		assert.Equal(t, created.OriginalURL, updated.OriginalURL)
	})

	t.Run("returns nil for a missing id", func(t *testing.T) {
		registry, memStore := newTestRegistry(t)

		assert.Nil(t, registry.RecordClick(context.Background(), "missing"))
		assert.Equal(t, 0, memStore.Saves())
	})
}

func TestRegistry_Delete(t *testing.T) {
	t.Run("frees the alias for reuse", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "a.com",
			Alias:       strPtr("reuse-me"),
		})
		require.NoError(t, err)

		registry.Delete(context.Background(), created.ID)

		rec, err := registry.Create(context.Background(), link.Draft{
			OriginalURL: "b.com",
			Alias:       strPtr("reuse-me"),
		})

		require.NoError(t, err)
		assert.Equal(t, "reuse-me", rec.Alias)
	})

	t.Run("is a silent no-op for a missing id", func(t *testing.T) {
		registry, memStore := newTestRegistry(t)

		registry.Delete(context.Background(), "missing")

		assert.Empty(t, registry.Links())
		assert.Equal(t, 0, memStore.Saves())
	})
}

func TestRegistry_Update(t *testing.T) {
	t.Run("applies an arbitrary transformation", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})
		require.NoError(t, err)

		registry.Update(context.Background(), created.ID, func(current link.ShortLink) link.ShortLink {
			current.OriginalURL = "https://rewritten.com"

			return current
		})

		rec, err := registry.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "https://rewritten.com", rec.OriginalURL)
	})

	t.Run("is a no-op for a missing id", func(t *testing.T) {
		registry, memStore := newTestRegistry(t)

		registry.Update(context.Background(), "missing", func(current link.ShortLink) link.ShortLink {
			return current
		})

		assert.Equal(t, 0, memStore.Saves())
	})
}

func TestRegistry_Load(t *testing.T) {
	t.Run("loads the persisted collection once at start", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		memStore.Seed([]link.ShortLink{{
			ID:          "seeded",
			OriginalURL: "https://example.com",
			Alias:       "seeded",
			CreatedAt:   time.Now(),
		}})

		gen, err := link.NewRandomGenerator(link.CodeLength)
		require.NoError(t, err)

		registry := link.NewRegistry(context.Background(), memStore, gen, zap.NewNop())

		links := registry.Links()
		require.Len(t, links, 1)
		assert.Equal(t, "seeded", links[0].Alias)
	})

	t.Run("starts empty when loading fails", func(t *testing.T) {
		gen, err := link.NewRandomGenerator(link.CodeLength)
		require.NoError(t, err)

		registry := link.NewRegistry(context.Background(), failingStore{}, gen, zap.NewNop())

		assert.Empty(t, registry.Links())
	})

	t.Run("stays usable when saves fail", func(t *testing.T) {
		gen, err := link.NewRandomGenerator(link.CodeLength)
		require.NoError(t, err)

		registry := link.NewRegistry(context.Background(), failingStore{}, gen, zap.NewNop())

		rec, err := registry.Create(context.Background(), link.Draft{OriginalURL: "a.com"})

		require.NoError(t, err)
		assert.Len(t, registry.Links(), 1)
		assert.NotEmpty(t, rec.Alias)
	})
}

type failingStore struct{}

func (failingStore) Load(_ context.Context) ([]link.ShortLink, error) {
	return nil, errors.New("storage unavailable")
}

func (failingStore) Save(_ context.Context, _ []link.ShortLink) error {
	return errors.New("storage unavailable")
}
