package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"songcatalog/internal/catalog"
	"songcatalog/internal/models"
	"songcatalog/internal/stats"
	"songcatalog/internal/validation"
)

func renderSongs(w io.Writer, songs []*models.Song) error {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Artist", "Album", "Genre")
	for _, song := range songs {
		if err := table.Append([]string{song.IDHex(), song.Title, song.Artist, song.Album, song.Genre}); err != nil {
			return fmt.Errorf("rendering songs: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering songs: %w", err)
	}
	fmt.Fprintf(w, "%d songs\n", len(songs))
	return nil
}

func renderShares(w io.Writer, label string, shares []stats.Share) error {
	table := tablewriter.NewWriter(w)
	table.Header(label, "Songs", "Share")
	for _, share := range shares {
		row := []string{share.Value, fmt.Sprint(share.Count), fmt.Sprintf("%.1f%%", share.Percent)}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering shares: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering shares: %w", err)
	}
	return nil
}

func renderEntries(w io.Writer, group, member string, entries []stats.Entry) error {
	table := tablewriter.NewWriter(w)
	table.Header(group, member)
	for _, entry := range entries {
		if err := table.Append([]string{entry.Value, fmt.Sprint(entry.Count)}); err != nil {
			return fmt.Errorf("rendering ranking: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering ranking: %w", err)
	}
	return nil
}

func renderSummary(w io.Writer, summary stats.Summary) error {
	fmt.Fprintf(w, "Songs: %d  Artists: %d  Albums: %d  Genres: %d\n",
		summary.TotalSongs, summary.TotalArtists, summary.TotalAlbums, summary.TotalGenres)
	fmt.Fprintf(w, "Most common genre: %s\n", summary.MostCommonGenre)
	fmt.Fprintf(w, "Most common artist: %s\n", summary.MostCommonArtist)
	fmt.Fprintf(w, "Most common album: %s\n", summary.MostCommonAlbum)
	if summary.TotalSongs == 0 {
		return nil
	}

	fmt.Fprintln(w)
	if err := renderShares(w, models.FieldGenre.Label(), summary.Genres.Shares); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return renderEntries(w, "Artist", "Albums", summary.AlbumsPerArtist.Top)
}

func renderBreakdown(w io.Writer, breakdown stats.FieldBreakdown) error {
	fmt.Fprintf(w, "%s: %d songs, %d distinct, most common %s\n",
		breakdown.Field.Label(), breakdown.Total, breakdown.Unique, breakdown.MostCommon)
	if breakdown.Total == 0 {
		return nil
	}
	return renderShares(w, breakdown.Field.Label(), breakdown.Shares)
}

// reportError prints field messages for validation failures and returns err
func reportError(w io.Writer, err error) error {
	var errs validation.Errors
	var apiErr *catalog.APIError
	switch {
	case errors.As(err, &errs):
		printFieldErrors(w, errs)
	case errors.As(err, &apiErr) && len(apiErr.Fields) > 0:
		printFieldErrors(w, apiErr.Fields)
	}
	return err
}

func printFieldErrors(w io.Writer, fields map[string]string) {
	for _, field := range models.Fields {
		if msg, ok := fields[field.String()]; ok {
			fmt.Fprintf(w, "  %s: %s\n", field.Label(), msg)
		}
	}
}
