// Package cmd contains all Cobra commands for askSQL.
//
// The root command launches the TUI directly. Subcommands cover the
// non-interactive flows: a one-shot question, database seeding and
// config inspection. Configuration is loaded once, before any command
// runs, and flags override it.
package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/DachengChen/askSQL/ai"
	"github.com/DachengChen/askSQL/applog"
	"github.com/DachengChen/askSQL/config"
	"github.com/DachengChen/askSQL/tui"
)

// errReported marks an error whose message has already been printed.
var errReported = errors.New("reported")

var (
	flagDB       string
	flagProvider string
	flagModel    string
	flagVerbose  bool

	appCfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "asksql",
	Short: "Ask questions about the student database in plain English",
	Long: `askSQL turns an English question into SQL with a language model
and runs it against a local SQLite database of students:
  • Gemini by default (GOOGLE_API_KEY), or OpenAI, Anthropic, Ollama
  • STUDENT(NAME, CLASS, SECTION, MARKS), seeded on first run
  • Generated SQL is shown and executed as-is

Run 'asksql' to start the interactive UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Running with no subcommand launches the TUI.
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Start(appCfg)
	},
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagDB, "db", "", "path to the SQLite database file (default \"student.db\")")
	pf.StringVar(&flagProvider, "provider", "", fmt.Sprintf("AI provider %v", ai.SupportedProviders))
	pf.StringVar(&flagModel, "model", "", "model name for the selected provider")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging (mirrored to stderr outside the TUI)")
}

// setup loads configuration, applies flags and opens the log files.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagProvider != "" {
		cfg.AI.Provider = flagProvider
	}
	if flagModel != "" {
		cfg.AI.SetModel(flagModel)
	}
	appCfg = cfg

	dir, err := config.Dir()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so only subcommands log to stderr.
	var console io.Writer
	if flagVerbose && cmd != rootCmd {
		console = cmd.ErrOrStderr()
	}
	if err := applog.Setup(dir, flagVerbose, console); err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if err := ai.SetLogDir(dir); err != nil {
		applog.Warn("ai transcript disabled", "err", err)
	}

	applog.Info("start", "command", cmd.Name(), "provider", cfg.AI.Provider, "db", cfg.DBPath)
	return nil
}

// Execute runs the root command. The log is closed on every path, since
// cobra skips post-run hooks when a command fails.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		applog.Error("exit", "err", err)
		if !errors.Is(err, errReported) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		}
	} else {
		applog.Info("exit")
	}
	applog.Close()
	return err
}
