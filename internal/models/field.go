package models

import (
	"fmt"
	"strings"
)

// Field names one of the song attributes that can be filtered, validated and aggregated
type Field string

const (
	FieldTitle  Field = "title"
	FieldArtist Field = "artist"
	FieldAlbum  Field = "album"
	FieldGenre  Field = "genre"
)

// Fields lists every song field in form order
var Fields = []Field{FieldTitle, FieldArtist, FieldAlbum, FieldGenre}

// ParseField parses a field name case-insensitively
func ParseField(name string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", name)
	}
	return f, nil
}

// Valid reports whether f is a known field
func (f Field) Valid() bool {
	switch f {
	case FieldTitle, FieldArtist, FieldAlbum, FieldGenre:
		return true
	}
	return false
}

// Label returns the human-readable field name used in messages
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldArtist:
		return "Artist"
	case FieldAlbum:
		return "Album"
	case FieldGenre:
		return "Genre"
	}
	return string(f)
}

// String implements fmt.Stringer
func (f Field) String() string {
	return string(f)
}
