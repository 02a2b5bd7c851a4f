package catalog

import (
	"strconv"
	"strings"

	"songcatalog/internal/models"
)

// Filter narrows a song listing. Field filters are case-insensitive
// substring matches and Query matches any field. Zero values match everything.
type Filter struct {
	Title  string
	Artist string
	Album  string
	Genre  string
	Query  string
	Limit  int
}

// Params encodes the filter as API query parameters
func (f Filter) Params() map[string]string {
	params := make(map[string]string)
	for key, value := range map[string]string{
		"title":  f.Title,
		"artist": f.Artist,
		"album":  f.Album,
		"genre":  f.Genre,
		"q":      f.Query,
	} {
		if value != "" {
			params[key] = value
		}
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	return params
}

// Match reports whether song satisfies every set criterion. Limit is ignored.
func (f Filter) Match(song *models.Song) bool {
	if song == nil {
		return false
	}

	for field, want := range map[models.Field]string{
		models.FieldTitle:  f.Title,
		models.FieldArtist: f.Artist,
		models.FieldAlbum:  f.Album,
		models.FieldGenre:  f.Genre,
	} {
		if want != "" && !containsFold(song.Value(field), want) {
			return false
		}
	}

	if f.Query == "" {
		return true
	}
	for _, field := range models.Fields {
		if containsFold(song.Value(field), f.Query) {
			return true
		}
	}
	return false
}

// Apply returns the songs matching the filter, in order, honoring Limit
func (f Filter) Apply(songs []*models.Song) []*models.Song {
	matched := make([]*models.Song, 0, len(songs))
	for _, song := range songs {
		if !f.Match(song) {
			continue
		}
		matched = append(matched, song)
		if f.Limit > 0 && len(matched) == f.Limit {
			break
		}
	}
	return matched
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
