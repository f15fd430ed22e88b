package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/zix/internal/app"
	"github.com/dgallion1/zix/internal/config"
	"github.com/dgallion1/zix/internal/logger"
)

// options are the persistent flags shared by all subcommands.
type options struct {
	configPath string
	dbPath     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "zix",
		Short:        "German readability scoring",
		Long:         "zix scores German text with the ZIX readability index and maps the score to a CEFR level.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (overrides CONFIG_PATH)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to SQLite database file (overrides store.path)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log at the configured level instead of warnings only")

	root.AddCommand(
		newScoreCmd(opts),
		newCEFRCmd(),
		newFeaturesCmd(opts),
		newBatchCmd(opts),
		newShellCmd(opts),
		newVocabCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves --config, then CONFIG_PATH, then ./config.yaml.
func (o *options) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.Store.Disabled = false
		cfg.Store.Path = o.dbPath
	}
	return cfg, nil
}

func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	logCfg := config.LogConfig{Level: "warn", Format: "text"}
	if o.verbose {
		logCfg = cfg.Log
	}
	return app.New(cmd.Context(), cfg, logger.NewWriter(cmd.ErrOrStderr(), logCfg))
}

// readInput reads the named file, or stdin for "-" or no name.
func readInput(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "" || name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// isDocument reports whether name should go through the document parser
// rather than being scored as plain text.
func isDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case "", ".txt":
		return false
	}
	return name != "-"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "zix", app.BuildVersion())
		},
	}
}
