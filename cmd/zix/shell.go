package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/app"
	"github.com/dgallion1/zix/internal/cefr"
	"github.com/dgallion1/zix/internal/features"
)

const shellHelp = `Enter German text to score it. Commands:
  :cefr <score>      map a score to a CEFR level
  :features <text>   print the feature vector of a text
  :help              show this help
  quit, exit         leave the shell`

var shellCommands = []prompt.Suggest{
	{Text: ":cefr", Description: "map a score to a CEFR level"},
	{Text: ":features", Description: "print the feature vector of a text"},
	{Text: ":help", Description: "show help"},
	{Text: "quit", Description: "leave the shell"},
}

func newShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Score text interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, shellHelp)
			var history []string
			for {
				in := prompt.Input("zix> ", shellCompleter,
					prompt.OptionTitle("zix shell"),
					prompt.OptionPrefixTextColor(prompt.Yellow),
					prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
					prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
					prompt.OptionSuggestionBGColor(prompt.DarkGray),
					prompt.OptionMaxSuggestion(8),
					prompt.OptionHistory(history),
				)
				line := strings.TrimSpace(in)
				switch line {
				case "":
					continue
				case "quit", "exit":
					return nil
				}
				history = append(history, line)

				res, err := evalLine(cmd.Context(), a, line)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
					continue
				}
				fmt.Fprintln(out, res)
			}
		},
	}
}

func shellCompleter(in prompt.Document) []prompt.Suggest {
	word := in.GetWordBeforeCursor()
	if !strings.HasPrefix(word, ":") && word != "q" && word != "qu" {
		return nil
	}
	return prompt.FilterHasPrefix(shellCommands, word, true)
}

// evalLine runs one shell line and returns the text to print.
func evalLine(ctx context.Context, a *app.App, line string) (string, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case ":help":
		return shellHelp, nil
	case ":cefr":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", cefr.ErrTypeMismatch, rest)
		}
		return cefr.Classify(v).String(), nil
	case ":features":
		vec, err := a.Scorer.Features(ctx, rest)
		if err != nil {
			return "", err
		}
		var sb strings.Builder
		for i, v := range vec.Values() {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%-20s %g", features.Names[i], v)
		}
		return sb.String(), nil
	}
	if strings.HasPrefix(cmd, ":") {
		return "", fmt.Errorf("unknown command %s", cmd)
	}
	res, err := a.Scorer.Score(ctx, line)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ZIX %.2f  CEFR %s", res.ZIX, res.Level), nil
}
