package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"songcatalog/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints catalog statistics",
	Long:  `Without --field prints the dashboard summary; with --field prints the share breakdown of one field.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		top := viper.GetInt("top")

		var field models.Field
		if name := viper.GetString("field"); name != "" {
			var err error
			if field, err = models.ParseField(name); err != nil {
				return err
			}
		}

		store := newStore()
		if err := store.Load(cmd.Context()); err != nil {
			return err
		}

		if field == "" {
			return renderSummary(cmd.OutOrStdout(), store.Summary(top))
		}
		return renderBreakdown(cmd.OutOrStdout(), store.Breakdown(field, top))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringP("field", "f", "", "field to break down (title, artist, album, genre)")
	viper.BindPFlag("field", statsCmd.Flags().Lookup("field"))

	statsCmd.Flags().IntP("top", "n", 5, "number of ranked entries before the Other bucket")
	viper.BindPFlag("top", statsCmd.Flags().Lookup("top"))
}
