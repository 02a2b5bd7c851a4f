package repositories

import (
	"context"
	"errors"

	"songcatalog/internal/models"
)

var (
	// ErrSongNotFound is returned when no song has the requested ID
	ErrSongNotFound = errors.New("song not found")

	// ErrInvalidID is returned when an ID is not a valid ObjectID hex string
	ErrInvalidID = errors.New("invalid song ID")
)

// SongFilter narrows a listing. Field filters are case-insensitive substring
// matches; Query matches any field. A zero Limit means no limit.
type SongFilter struct {
	Title  string `form:"title" json:"title,omitempty"`
	Artist string `form:"artist" json:"artist,omitempty"`
	Album  string `form:"album" json:"album,omitempty"`
	Genre  string `form:"genre" json:"genre,omitempty"`
	Query  string `form:"q" json:"q,omitempty"`
	Limit  int    `form:"limit" json:"limit,omitempty"`
}

// IsZero reports whether the filter matches every song
func (f SongFilter) IsZero() bool {
	return f == SongFilter{}
}

// Values returns the per-field filters that are set
func (f SongFilter) Values() map[models.Field]string {
	values := make(map[models.Field]string)
	for field, v := range map[models.Field]string{
		models.FieldTitle:  f.Title,
		models.FieldArtist: f.Artist,
		models.FieldAlbum:  f.Album,
		models.FieldGenre:  f.Genre,
	} {
		if v != "" {
			values[field] = v
		}
	}
	return values
}

// SongRepository defines the interface for song data operations
type SongRepository interface {
	// Create assigns a new ID and stores the song
	Create(ctx context.Context, song *models.Song) error

	// Update replaces an existing song; ErrSongNotFound if it does not exist
	Update(ctx context.Context, song *models.Song) error

	// FindByID returns nil, nil when no song has the ID
	FindByID(ctx context.Context, id string) (*models.Song, error)

	// List returns matching songs in creation order
	List(ctx context.Context, filter SongFilter) ([]*models.Song, error)

	// DeleteByID removes a song; ErrSongNotFound if it does not exist
	DeleteByID(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
}
