package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DachengChen/askSQL/ai"
	"github.com/DachengChen/askSQL/applog"
	"github.com/DachengChen/askSQL/assistant"
	"github.com/DachengChen/askSQL/config"
	"github.com/DachengChen/askSQL/db"
)

// Start seeds the database, builds the assistant and launches the TUI.
// A missing API key does not stop the UI; it is shown once as a banner
// and asking is disabled.
func Start(cfg *config.AppConfig) error {
	store := db.NewStore(cfg.DBPath)
	inserted, err := store.Setup(context.Background())
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	if inserted > 0 {
		applog.Info("database populated with sample data", "rows", inserted, "db", store.Path())
	}

	var asst *assistant.Assistant
	provider, err := ai.NewProvider(cfg.AI)
	switch {
	case err == nil:
		asst = assistant.New(provider, store, cfg.Timeout())
	case errors.Is(err, ai.ErrMissingCredential):
		applog.Warn("no API credential", "provider", cfg.AI.Provider)
	default:
		return err
	}

	app := NewApp(store, asst, err)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
