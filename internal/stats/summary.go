package stats

import (
	"songcatalog/internal/models"
)

// FieldBreakdown is every derived view for one field
type FieldBreakdown struct {
	Field       models.Field `json:"field"`
	Total       int          `json:"total"`
	Unique      int          `json:"unique"`
	MostCommon  string       `json:"most_common"`
	Frequencies []Entry      `json:"frequencies"`
	Top         []Entry      `json:"top"`
	Shares      []Share      `json:"shares"`
}

// GroupBreakdown ranks groups by how many distinct members they contain
type GroupBreakdown struct {
	Group  models.Field `json:"group"`
	Member models.Field `json:"member"`
	Groups int          `json:"groups"`
	Top    []Entry      `json:"top"`
}

// Summary backs the dashboard
type Summary struct {
	TotalSongs   int `json:"total_songs"`
	TotalArtists int `json:"total_artists"`
	TotalAlbums  int `json:"total_albums"`
	TotalGenres  int `json:"total_genres"`

	MostCommonGenre  string `json:"most_common_genre"`
	MostCommonArtist string `json:"most_common_artist"`
	MostCommonAlbum  string `json:"most_common_album"`

	Genres  FieldBreakdown `json:"genres"`
	Artists FieldBreakdown `json:"artists"`
	Albums  FieldBreakdown `json:"albums"`

	AlbumsPerArtist GroupBreakdown `json:"albums_per_artist"`
	SongsPerAlbum   []Entry        `json:"songs_per_album"`
}

// Breakdown computes every derived view for field, ranking the top n values
func Breakdown(songs []*models.Song, field models.Field, n int) FieldBreakdown {
	table := FrequencyByField(songs, field)
	total := table.Total()
	return FieldBreakdown{
		Field:       field,
		Total:       total,
		Unique:      table.Len(),
		MostCommon:  MostCommon(table),
		Frequencies: table.Entries(),
		Top:         TopN(table, n),
		Shares:      ShareBreakdown(table, total, n),
	}
}

// Groups ranks groupField values by their distinct memberField count
func Groups(songs []*models.Song, group, member models.Field, n int) GroupBreakdown {
	table := GroupCardinality(songs, group, member)
	return GroupBreakdown{
		Group:  group,
		Member: member,
		Groups: table.Len(),
		Top:    TopN(table, n),
	}
}

// Summarize computes the dashboard views over songs, ranking the top n values
// of each field.
func Summarize(songs []*models.Song, n int) Summary {
	genres := Breakdown(songs, models.FieldGenre, n)
	artists := Breakdown(songs, models.FieldArtist, n)
	albums := Breakdown(songs, models.FieldAlbum, n)

	return Summary{
		TotalSongs:       genres.Total,
		TotalArtists:     artists.Unique,
		TotalAlbums:      albums.Unique,
		TotalGenres:      genres.Unique,
		MostCommonGenre:  genres.MostCommon,
		MostCommonArtist: artists.MostCommon,
		MostCommonAlbum:  albums.MostCommon,
		Genres:           genres,
		Artists:          artists,
		Albums:           albums,
		AlbumsPerArtist:  Groups(songs, models.FieldArtist, models.FieldAlbum, n),
		SongsPerAlbum:    albums.Top,
	}
}
