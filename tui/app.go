// app.go is the top-level Bubble Tea model that owns both views.
//
// Layout: header (title, provider, database, row count), the active view
// inside a rounded border, and a status bar with the view's key bindings.
//
// Keys handled here:
//   - F1 / F2 switch between the Ask and Data views
//   - F3 (or ? outside text input) toggles the help overlay, Esc closes it
//   - Ctrl+C quits
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DachengChen/askSQL/assistant"
	"github.com/DachengChen/askSQL/db"
)

const appVersion = "0.1.0"

// View indices.
const (
	TabAsk = iota
	TabData
)

// App is the root Bubble Tea model.
type App struct {
	views     []View
	activeTab int

	store     *db.Store
	assistant *assistant.Assistant
	provider  string
	rowCount  int64
	countErr  error

	width     int
	height    int
	showHelp  bool
	statusMsg string
}

// NewApp builds the application. asst may be nil when no provider could
// be configured; credErr then explains why.
func NewApp(store *db.Store, asst *assistant.Assistant, credErr error) *App {
	provider := "none"
	if asst != nil {
		provider = asst.ProviderName()
	}
	return &App{
		views: []View{
			NewAskView(asst, credErr),
			NewDataView(store),
		},
		activeTab: TabAsk,
		store:     store,
		assistant: asst,
		provider:  provider,
		rowCount:  -1,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.views[a.activeTab].Init(), a.loadCount())
}

func (a *App) loadCount() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		n, err := store.Count(context.Background())
		return CountMsg{Count: n, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Header(1) + Status(1) + Borders(2) = 4 lines chrome
		contentW := a.width - 2
		viewH := a.height - 4
		for _, v := range a.views {
			v.SetSize(contentW, viewH)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case CountMsg:
		a.rowCount = msg.Count
		a.countErr = msg.Err
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case AnswerMsg, spinner.TickMsg:
		// Generated SQL may have changed the table.
		cmd := a.forward(TabAsk, msg)
		if _, ok := msg.(AnswerMsg); ok {
			return a, tea.Batch(cmd, a.loadCount(), a.views[TabData].Init())
		}
		return a, cmd

	case StudentsMsg:
		return a, a.forward(TabData, msg)
	}

	return a, a.forward(a.activeTab, msg)
}

func (a *App) forward(idx int, msg tea.Msg) tea.Cmd {
	updated, cmd := a.views[idx].Update(msg)
	a.views[idx] = updated
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	textMode := a.views[a.activeTab].WantsTextInput()

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "f1":
		return a.switchTab(TabAsk)
	case "f2":
		return a.switchTab(TabData)
	case "f3":
		a.showHelp = !a.showHelp
		return a, nil
	case "esc":
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}
	case "?":
		if !textMode {
			a.showHelp = !a.showHelp
			return a, nil
		}
	}

	a.statusMsg = ""
	return a, a.forward(a.activeTab, msg)
}

func (a *App) switchTab(idx int) (tea.Model, tea.Cmd) {
	a.showHelp = false
	if idx == a.activeTab {
		return a, nil
	}
	a.activeTab = idx
	return a, a.views[idx].Init()
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := a.renderHeader()

	var inner string
	if a.showHelp {
		inner = a.renderHelp()
	} else {
		inner = a.views[a.activeTab].View()
	}

	frameHeight := a.height - 4
	if frameHeight < 0 {
		frameHeight = 0
	}
	frame := StyleBorder.
		Width(a.width - 2).
		Height(frameHeight).
		Render(inner)

	return header + "\n" + frame + "\n" + a.renderStatusBar()
}

// renderHeader draws title, view switcher and the session details.
func (a *App) renderHeader() string {
	left := StyleBold.Render("askSQL") + StyleDimmed.Render(" v"+appVersion)

	var tabs []string
	for i, v := range a.views {
		label := fmt.Sprintf("F%d %s", i+1, v.Name())
		if i == a.activeTab {
			tabs = append(tabs, StyleTabActive.Render(label))
		} else {
			tabs = append(tabs, StyleTabInactive.Render(label))
		}
	}
	left += "  " + strings.Join(tabs, "")

	rows := "?"
	if a.countErr == nil && a.rowCount >= 0 {
		rows = db.FormatRowCount(a.rowCount)
	}
	right := StyleSuccess.Render(a.provider) +
		StyleDimmed.Render(fmt.Sprintf("  %s  %s rows", a.store.Path(), rows))

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.NewStyle().
		Width(a.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (a *App) renderStatusBar() string {
	if a.statusMsg != "" {
		return StyleStatusBar.Width(a.width).Render(a.statusMsg)
	}

	var parts []string
	for _, h := range a.helpItems() {
		parts = append(parts, StyleHelpKey.Render(h.Key)+" "+StyleHelpDesc.Render(h.Desc))
	}
	return StyleStatusBar.Width(a.width).Render(strings.Join(parts, "  │  "))
}

func (a *App) helpItems() []KeyBinding {
	global := []KeyBinding{
		{Key: "F3", Desc: "help"},
		{Key: "Ctrl+C", Desc: "quit"},
	}
	return append(a.views[a.activeTab].ShortHelp(), global...)
}

func (a *App) renderHelp() string {
	help := []string{
		StyleTitle.Render("askSQL Keyboard Shortcuts"),
		"",
		StyleHelpKey.Render("F1") + "               Ask a question",
		StyleHelpKey.Render("F2") + "               Browse the STUDENT table",
		StyleHelpKey.Render("F3 / ?") + "           Toggle this help",
		StyleHelpKey.Render("Ctrl+C") + "           Quit",
		"",
		StyleTitle.Render("Ask"),
		"",
		StyleHelpKey.Render("Enter") + "            Generate and run SQL",
		StyleHelpKey.Render("↑/↓") + "              Question history",
		StyleHelpKey.Render("PgUp/PgDn") + "        Page results",
		StyleHelpKey.Render("Ctrl+J/K") + "         Scroll results",
		StyleHelpKey.Render("Ctrl+W") + "           Toggle wrapping",
		"",
		StyleTitle.Render("Data"),
		"",
		StyleHelpKey.Render("r") + "                Reload",
		StyleHelpKey.Render("↑/↓ j/k") + "          Vertical scroll",
		StyleHelpKey.Render("←/→ h/l") + "          Horizontal scroll",
		"",
		StyleDimmed.Render("Generated SQL runs unchecked against " + a.store.Path() + "."),
		StyleDimmed.Render("Press Esc to close"),
	}

	return lipgloss.NewStyle().
		Width(a.width-4).
		Padding(1, 2).
		Render(strings.Join(help, "\n"))
}
