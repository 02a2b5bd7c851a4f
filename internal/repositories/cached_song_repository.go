package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"songcatalog/internal/cache"
	"songcatalog/internal/models"
)

// cachedSongRepository wraps a SongRepository with caching
type cachedSongRepository struct {
	repository SongRepository
	cache      cache.Cache
	ttl        time.Duration

	// generation is bumped by every invalidation in this process; the
	// shared token under generationKey covers other processes on the same cache
	generation atomic.Uint64
}

// cacheGeneration identifies the invalidations a read has seen
type cacheGeneration struct {
	local  uint64
	shared string
}

// NewCachedSongRepository creates a new cached song repository
func NewCachedSongRepository(repository SongRepository, cache cache.Cache, ttl time.Duration) SongRepository {
	return &cachedSongRepository{
		repository: repository,
		cache:      cache,
		ttl:        ttl,
	}
}

// Cache key generators
func songIDKey(id string) string { return "song:id:" + id }

const (
	allSongsKey   = "songs:all"
	generationKey = "songs:generation"
)

// negativeCacheTTL bounds how long a missing song is remembered
const negativeCacheTTL = 1 * time.Minute

// Create stores the song and drops the cached listing
func (r *cachedSongRepository) Create(ctx context.Context, song *models.Song) error {
	if err := r.repository.Create(ctx, song); err != nil {
		return err
	}
	r.invalidate(ctx, song.IDHex())
	return nil
}

// Update invalidates cache and updates in repository
func (r *cachedSongRepository) Update(ctx context.Context, song *models.Song) error {
	err := r.repository.Update(ctx, song)
	if err != nil && !errors.Is(err, ErrSongNotFound) {
		return err
	}
	r.invalidate(ctx, song.IDHex())
	return err
}

// FindByID checks cache first, then repository
func (r *cachedSongRepository) FindByID(ctx context.Context, id string) (*models.Song, error) {
	key := songIDKey(id)

	data, err := r.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("Song cache read failed", "key", key, "error", err)
	} else if data != nil {
		if string(data) == "null" {
			return nil, nil
		}
		var song models.Song
		if err := json.Unmarshal(data, &song); err == nil {
			return &song, nil
		}
		slog.Error("Failed to unmarshal song from cache", "key", key)
		r.delete(ctx, key)
	}

	gen := r.currentGeneration(ctx)
	song, err := r.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ttl := r.ttl
	if song == nil && (ttl == 0 || ttl > negativeCacheTTL) {
		ttl = negativeCacheTTL
	}
	r.storeIfCurrent(ctx, gen, key, song, ttl)
	return song, nil
}

// List caches only the unfiltered listing, which is what the dashboard reads
func (r *cachedSongRepository) List(ctx context.Context, filter SongFilter) ([]*models.Song, error) {
	if !filter.IsZero() {
		return r.repository.List(ctx, filter)
	}

	data, err := r.cache.Get(ctx, allSongsKey)
	if err != nil {
		slog.Warn("Song cache read failed", "key", allSongsKey, "error", err)
	} else if data != nil {
		var songs []*models.Song
		if err := json.Unmarshal(data, &songs); err == nil {
			return songs, nil
		}
		slog.Error("Failed to unmarshal song list from cache", "key", allSongsKey)
		r.delete(ctx, allSongsKey)
	}

	gen := r.currentGeneration(ctx)
	songs, err := r.repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	r.storeIfCurrent(ctx, gen, allSongsKey, songs, r.ttl)
	return songs, nil
}

// DeleteByID invalidates cache and deletes from repository
func (r *cachedSongRepository) DeleteByID(ctx context.Context, id string) error {
	err := r.repository.DeleteByID(ctx, id)
	if err != nil && !errors.Is(err, ErrSongNotFound) {
		return err
	}
	r.invalidate(ctx, id)
	return err
}

// Count - not cached as it changes frequently
func (r *cachedSongRepository) Count(ctx context.Context) (int64, error) {
	return r.repository.Count(ctx)
}

func (r *cachedSongRepository) store(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Error("Failed to marshal value for cache", "key", key, "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, data, ttl); err != nil {
		slog.Error("Failed to write cache", "key", key, "error", err)
	}
}

func (r *cachedSongRepository) currentGeneration(ctx context.Context) cacheGeneration {
	gen := cacheGeneration{local: r.generation.Load()}
	data, err := r.cache.Get(ctx, generationKey)
	if err != nil {
		slog.Warn("Cache generation read failed", "error", err)
		return gen
	}
	gen.shared = string(data)
	return gen
}

// storeIfCurrent caches a read only when no invalidation ran since gen was
// taken. A mutation that lands between the check and the write is caught by
// the second check, which drops the entry again.
func (r *cachedSongRepository) storeIfCurrent(ctx context.Context, gen cacheGeneration, key string, value any, ttl time.Duration) {
	if r.currentGeneration(ctx) != gen {
		return
	}
	r.store(ctx, key, value, ttl)
	if r.currentGeneration(ctx) != gen {
		r.delete(ctx, key)
	}
}

func (r *cachedSongRepository) delete(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		slog.Error("Failed to invalidate cache", "keys", keys, "error", err)
	}
}

// invalidate removes the listing and, when known, the song's own entry
func (r *cachedSongRepository) invalidate(ctx context.Context, id string) {
	r.generation.Add(1)
	if err := r.cache.Set(ctx, generationKey, []byte(uuid.NewString()), 0); err != nil {
		slog.Error("Failed to bump cache generation", "error", err)
	}

	keys := []string{allSongsKey}
	if id != "" {
		keys = append(keys, songIDKey(id))
	}
	r.delete(ctx, keys...)
}
