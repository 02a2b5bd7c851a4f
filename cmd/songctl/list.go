package main

import (
	"github.com/spf13/cobra"

	"songcatalog/internal/catalog"
)

var listFilter catalog.Filter

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists songs, optionally filtered",
	Long:  `Field filters are case-insensitive substring matches; --query matches any field.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return err
		}
		return renderSongs(cmd.OutOrStdout(), store.Filter(listFilter))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listFilter.Title, "title", "", "filter by title")
	listCmd.Flags().StringVar(&listFilter.Artist, "artist", "", "filter by artist")
	listCmd.Flags().StringVar(&listFilter.Album, "album", "", "filter by album")
	listCmd.Flags().StringVar(&listFilter.Genre, "genre", "", "filter by genre")
	listCmd.Flags().StringVarP(&listFilter.Query, "query", "q", "", "match any field")
	listCmd.Flags().IntVarP(&listFilter.Limit, "limit", "l", 0, "maximum number of songs to show (0 for all)")
}
