package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"songcatalog/internal/catalog"
	"songcatalog/internal/models"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Adds a song",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := inputFromFlags(cmd.Flags(), models.SongInput{})
		song, err := newStore().Add(cmd.Context(), input)
		if err != nil {
			return reportError(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", song.IDHex(), song)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edits a song; fields not given keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		client := catalog.NewClient(serverURL(), requestTimeout())
		current, err := client.Get(cmd.Context(), id)
		if err != nil {
			return reportError(cmd.ErrOrStderr(), err)
		}

		input := inputFromFlags(cmd.Flags(), current.Input())
		song, err := catalog.NewStore(client).Edit(cmd.Context(), id, input)
		if err != nil {
			return reportError(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", song.IDHex(), song)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Deletes a song",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newStore().Delete(cmd.Context(), args[0]); err != nil {
			return reportError(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{addCmd, editCmd} {
		for _, field := range models.Fields {
			cmd.Flags().String(field.String(), "", field.Label())
		}
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(deleteCmd)
}

// inputFromFlags overlays the field flags that were set onto base
func inputFromFlags(flags *pflag.FlagSet, base models.SongInput) models.SongInput {
	values := map[models.Field]*string{
		models.FieldTitle:  &base.Title,
		models.FieldArtist: &base.Artist,
		models.FieldAlbum:  &base.Album,
		models.FieldGenre:  &base.Genre,
	}
	for field, target := range values {
		if flags.Changed(field.String()) {
			*target, _ = flags.GetString(field.String())
		}
	}
	return base
}
