package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentSchemaVersion is stamped on every insert and update
const CurrentSchemaVersion = 1

// Song is a single catalog record
type Song struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchemaVersion int                `bson:"schema_version" json:"schema_version"`

	Title  string `bson:"title" json:"title"`
	Artist string `bson:"artist" json:"artist"`
	Album  string `bson:"album" json:"album"`
	Genre  string `bson:"genre" json:"genre"`

	// Timestamps
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// SongInput carries the user-editable attributes of a song, without an identifier
type SongInput struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Genre  string `json:"genre"`
}

// NewSong creates a new Song with default values
func NewSong(title, artist, album, genre string) *Song {
	now := time.Now()
	return &Song{
		SchemaVersion: CurrentSchemaVersion,
		Title:         title,
		Artist:        artist,
		Album:         album,
		Genre:         genre,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewSongFromInput creates a new Song from user input, trimming surrounding whitespace
func NewSongFromInput(input SongInput) *Song {
	input = input.Normalize()
	return NewSong(input.Title, input.Artist, input.Album, input.Genre)
}

// Normalize returns a copy of the input with surrounding whitespace removed
func (in SongInput) Normalize() SongInput {
	return SongInput{
		Title:  strings.TrimSpace(in.Title),
		Artist: strings.TrimSpace(in.Artist),
		Album:  strings.TrimSpace(in.Album),
		Genre:  strings.TrimSpace(in.Genre),
	}
}

// Value returns the input's value for a field
func (in SongInput) Value(field Field) string {
	switch field {
	case FieldTitle:
		return in.Title
	case FieldArtist:
		return in.Artist
	case FieldAlbum:
		return in.Album
	case FieldGenre:
		return in.Genre
	}
	return ""
}

// Apply overwrites the song's editable attributes with the given input
func (s *Song) Apply(input SongInput) {
	input = input.Normalize()
	s.Title = input.Title
	s.Artist = input.Artist
	s.Album = input.Album
	s.Genre = input.Genre
	s.UpdatedAt = time.Now()
}

// Input returns the song's editable attributes
func (s *Song) Input() SongInput {
	return SongInput{
		Title:  s.Title,
		Artist: s.Artist,
		Album:  s.Album,
		Genre:  s.Genre,
	}
}

// Value returns the song's value for a field
func (s *Song) Value(field Field) string {
	return s.Input().Value(field)
}

// IDHex returns the hex form of the song ID, or "" for unsaved songs
func (s *Song) IDHex() string {
	if s.ID.IsZero() {
		return ""
	}
	return s.ID.Hex()
}

// Clone returns an independent copy of the song
func (s *Song) Clone() *Song {
	c := *s
	return &c
}

// String implements fmt.Stringer
func (s *Song) String() string {
	return fmt.Sprintf("%s - %s (%s, %s)", s.Artist, s.Title, s.Album, s.Genre)
}
