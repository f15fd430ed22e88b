package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/store"
	"github.com/dgallion1/zix/internal/vocab"
)

func newVocabCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the vocabulary tables",
	}
	cmd.AddCommand(newVocabImportCmd(opts), newVocabStatsCmd(opts))
	return cmd
}

func newVocabImportCmd(opts *options) *cobra.Command {
	var levels, scores string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import vocabulary CSV files into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Disabled {
				return errors.New("store is disabled; pass --db or unset store.disabled")
			}
			if levels == "" {
				levels = cfg.Vocab.LevelsPath
			}
			if scores == "" {
				scores = cfg.Vocab.ScoresPath
			}

			tables, err := vocab.LoadCSV(levels, scores)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			counts, err := st.ImportVocabulary(cmd.Context(), tables)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported A1=%d A2=%d B1=%d scores=%d into %s\n",
				counts.A1, counts.A2, counts.B1, counts.Scores, cfg.Store.Path)
			return nil
		},
	}
	cmd.Flags().StringVar(&levels, "levels", "", "Lemma level CSV (defaults to vocab.levels_path)")
	cmd.Flags().StringVar(&scores, "scores", "", "Word score CSV (defaults to vocab.scores_path)")
	return cmd
}

func newVocabStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the size of the stored vocabulary tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Store.Disabled {
				return errors.New("store is disabled; pass --db or unset store.disabled")
			}
			st, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			tables, err := st.LoadTables(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tables.Counts())
		},
	}
}
