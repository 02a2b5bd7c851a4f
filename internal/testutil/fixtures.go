package testutil

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"songcatalog/internal/models"
)

// SongBuilder provides a fluent interface for creating test songs
type SongBuilder struct {
	song *models.Song
}

// NewSongBuilder creates a new song builder with default values
func NewSongBuilder() *SongBuilder {
	return &SongBuilder{
		song: models.NewSong("Test Song", "Test Artist", "Test Album", "Rock"),
	}
}

// WithID sets the song ID
func (b *SongBuilder) WithID(id string) *SongBuilder {
	objID, _ := primitive.ObjectIDFromHex(id)
	b.song.ID = objID
	return b
}

// WithNewID assigns a fresh ObjectID
func (b *SongBuilder) WithNewID() *SongBuilder {
	b.song.ID = NewObjectID()
	return b
}

// WithTitle sets the song title
func (b *SongBuilder) WithTitle(title string) *SongBuilder {
	b.song.Title = title
	return b
}

// WithArtist sets the song artist
func (b *SongBuilder) WithArtist(artist string) *SongBuilder {
	b.song.Artist = artist
	return b
}

// WithAlbum sets the song album
func (b *SongBuilder) WithAlbum(album string) *SongBuilder {
	b.song.Album = album
	return b
}

// WithGenre sets the song genre
func (b *SongBuilder) WithGenre(genre string) *SongBuilder {
	b.song.Genre = genre
	return b
}

// Build returns the constructed song
func (b *SongBuilder) Build() *models.Song {
	return b.song
}

// NewObjectID returns a fresh ObjectID
func NewObjectID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// Common test data
var (
	TestSongID1 = "64b7f0c2a1b2c3d4e5f60718"
	TestSongID2 = "64b7f0c2a1b2c3d4e5f60719"
	TestSongID3 = "64b7f0c2a1b2c3d4e5f6071a"
)

// CreateTestSong creates a basic saved test song
func CreateTestSong() *models.Song {
	return NewSongBuilder().WithID(TestSongID1).Build()
}

// CreateCatalog returns three saved songs: two Rock songs by Q on albums X
// and Y, and one Pop song by Z on album X.
func CreateCatalog() []*models.Song {
	return []*models.Song{
		NewSongBuilder().WithID(TestSongID1).WithTitle("A").WithArtist("Q").WithAlbum("X").WithGenre("Rock").Build(),
		NewSongBuilder().WithID(TestSongID2).WithTitle("B").WithArtist("Q").WithAlbum("Y").WithGenre("Rock").Build(),
		NewSongBuilder().WithID(TestSongID3).WithTitle("C").WithArtist("Z").WithAlbum("X").WithGenre("Pop").Build(),
	}
}
