package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-profiler/internal/types"
)

func TestStore_PutGet(t *testing.T) {
	store := NewStore(time.Hour)
	entry := &Entry{
		Profile:    &types.CompanyProfile{Name: "Acme"},
		RawContent: "corpus",
	}
	store.Put("https://example.com", entry)

	got := store.Get("https://example.com")
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Profile.Name)
	assert.Equal(t, "corpus", got.RawContent)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_MissingKey(t *testing.T) {
	store := NewStore(time.Hour)
	assert.Nil(t, store.Get("https://example.com"))
}

func TestStore_ExpiredEntryBehavesAsAbsent(t *testing.T) {
	store := NewStore(time.Hour)
	current := time.Now()
	store.now = func() time.Time { return current }

	store.Put("https://example.com", &Entry{Profile: &types.CompanyProfile{}})
	require.NotNil(t, store.Get("https://example.com"))

	current = current.Add(2 * time.Hour)
	assert.Nil(t, store.Get("https://example.com"))

	// Lazy eviction removed the entry, so even rolling time back finds nothing.
	current = current.Add(-2 * time.Hour)
	assert.Nil(t, store.Get("https://example.com"))
}

func TestStore_LastWriteWins(t *testing.T) {
	store := NewStore(time.Hour)
	store.Put("k", &Entry{Profile: &types.CompanyProfile{Name: "first"}})
	store.Put("k", &Entry{Profile: &types.CompanyProfile{Name: "second"}})

	got := store.Get("k")
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Profile.Name)
}

func TestStore_Clear(t *testing.T) {
	store := NewStore(time.Hour)
	store.Put("a", &Entry{Profile: &types.CompanyProfile{}})
	store.Put("b", &Entry{Profile: &types.CompanyProfile{}})

	assert.Equal(t, 2, store.Clear())
	assert.Equal(t, 0, store.Clear())
	assert.Nil(t, store.Get("a"))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(time.Hour)
	var wg sync.WaitGroup
	keys := []string{"a", "b", "c", "d"}

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := keys[i%len(keys)]
			store.Put(key, &Entry{Profile: &types.CompanyProfile{Name: key}})
			store.Get(key)
		}(i)
	}
	wg.Wait()

	for _, key := range keys {
		got := store.Get(key)
		require.NotNil(t, got)
		assert.Equal(t, key, got.Profile.Name)
	}
}
