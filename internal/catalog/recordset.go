// Package catalog keeps a client-side copy of the song catalog in sync with
// the REST API and computes statistics over it.
package catalog

import (
	"sync"

	"songcatalog/internal/models"
)

// RecordSet is an ordered, concurrency-safe set of songs keyed by ID. Songs
// are copied on the way in and on the way out.
type RecordSet struct {
	mu    sync.RWMutex
	songs []*models.Song
}

// NewRecordSet creates a record set holding copies of songs
func NewRecordSet(songs ...*models.Song) *RecordSet {
	rs := &RecordSet{}
	rs.Reset(songs)
	return rs
}

// Reset replaces the whole contents, skipping nil songs
func (rs *RecordSet) Reset(songs []*models.Song) {
	copied := make([]*models.Song, 0, len(songs))
	for _, song := range songs {
		if song != nil {
			copied = append(copied, song.Clone())
		}
	}

	rs.mu.Lock()
	rs.songs = copied
	rs.mu.Unlock()
}

// Insert appends a song
func (rs *RecordSet) Insert(song *models.Song) {
	if song == nil {
		return
	}
	rs.mu.Lock()
	rs.songs = append(rs.songs, song.Clone())
	rs.mu.Unlock()
}

// Replace swaps in song at the position of the song with the same ID. It
// reports false and changes nothing when no such song exists.
func (rs *RecordSet) Replace(song *models.Song) bool {
	if song == nil {
		return false
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()

	i := rs.indexLocked(song.IDHex())
	if i < 0 {
		return false
	}
	rs.songs[i] = song.Clone()
	return true
}

// Remove deletes the song with id, preserving the order of the rest. It
// reports false when no such song exists.
func (rs *RecordSet) Remove(id string) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	i := rs.indexLocked(id)
	if i < 0 {
		return false
	}
	rs.songs = append(rs.songs[:i:i], rs.songs[i+1:]...)
	return true
}

// Find returns a copy of the song with id, or nil
func (rs *RecordSet) Find(id string) *models.Song {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	if i := rs.indexLocked(id); i >= 0 {
		return rs.songs[i].Clone()
	}
	return nil
}

// Snapshot returns an independent copy of the current contents
func (rs *RecordSet) Snapshot() []*models.Song {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	snapshot := make([]*models.Song, len(rs.songs))
	for i, song := range rs.songs {
		snapshot[i] = song.Clone()
	}
	return snapshot
}

// Len returns the number of songs
func (rs *RecordSet) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.songs)
}

func (rs *RecordSet) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, song := range rs.songs {
		if song.IDHex() == id {
			return i
		}
	}
	return -1
}
