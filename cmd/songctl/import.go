package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"songcatalog/internal/catalog"
	"songcatalog/internal/models"
	"songcatalog/internal/validation"
)

var (
	importDryRun bool
	importRate   float64
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Adds every song in a JSON array file",
	Long:  `Each element needs title, artist, album and genre. Invalid songs are reported and skipped.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := readSongInputs(args[0])
		if err != nil {
			return err
		}

		limit := rate.Inf
		if importRate > 0 {
			limit = rate.Limit(importRate)
		}
		limiter := rate.NewLimiter(limit, 1)
		result, err := importSongs(cmd.Context(), cmd.OutOrStdout(), newStore(), limiter, inputs, importDryRun)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d, skipped %d of %d songs\n", result.imported, result.skipped, len(inputs))
		return err
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate only, do not add songs")
	importCmd.Flags().Float64Var(&importRate, "rate", 5, "maximum songs added per second")
}

type importResult struct {
	imported int
	skipped  int
}

func readSongInputs(path string) ([]models.SongInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var inputs []models.SongInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return inputs, nil
}

// importSongs adds inputs one at a time, paced by limiter. Invalid songs are
// skipped; the first API failure stops the import.
func importSongs(ctx context.Context, out io.Writer, store *catalog.Store, limiter *rate.Limiter, inputs []models.SongInput, dryRun bool) (importResult, error) {
	var result importResult
	for i, input := range inputs {
		if errs := validation.ValidateSong(input); !errs.Valid() {
			fmt.Fprintf(out, "Song %d skipped: %s\n", i+1, errs)
			result.skipped++
			continue
		}
		if dryRun {
			result.imported++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}
		start := time.Now()
		song, err := store.Add(ctx, input)
		if err != nil {
			return result, fmt.Errorf("adding song %d: %w", i+1, err)
		}
		fmt.Fprintf(out, "Added %s (%s) in %s\n", song.IDHex(), song, time.Since(start).Round(time.Millisecond))
		result.imported++
	}
	return result, nil
}
