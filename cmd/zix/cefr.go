package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/zix"
)

func newCEFRCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cefr <score>",
		Short: "Map a ZIX score to a CEFR level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return fmt.Errorf("%w: %q", cefr.ErrTypeMismatch, args[0])
			}
			level, err := zix.CEFR(v)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), level)
			return nil
		},
	}
}
