// view_data.go is a read-only listing of the STUDENT table.
//
// Reloaded every time the view is opened and after each answered
// question, so the effect of generated UPDATE/DELETE statements is
// visible.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DachengChen/askSQL/db"
)

type DataView struct {
	store    *db.Store
	viewport *Viewport
	loading  bool
	manual   bool // reload requested with r
	err      error
	width    int
	height   int
}

func NewDataView(store *db.Store) *DataView {
	return &DataView{
		store:    store,
		viewport: NewViewport(80, 20),
	}
}

func (v *DataView) Name() string         { return "Data" }
func (v *DataView) WantsTextInput() bool { return false }

func (v *DataView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetSize(width-2, height-3)
}

func (v *DataView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "r", Desc: "reload"},
		{Key: "↑/↓", Desc: "scroll"},
	}
}

func (v *DataView) Init() tea.Cmd {
	return v.load()
}

func (v *DataView) load() tea.Cmd {
	v.loading = true
	store := v.store
	return func() tea.Msg {
		students, err := store.Students(context.Background())
		return StudentsMsg{Students: students, Err: err}
	}
}

func (v *DataView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case StudentsMsg:
		v.loading = false
		v.err = msg.Err
		manual := v.manual
		v.manual = false
		if msg.Err != nil {
			v.viewport.SetContent(StyleError.Render("ERROR: " + msg.Err.Error()))
			return v, status("reload failed: " + msg.Err.Error())
		}
		if len(msg.Students) == 0 {
			v.viewport.SetContent(StyleDimmed.Render("STUDENT is empty."))
		} else {
			v.viewport.SetContentLines(formatResult(studentsResult(msg.Students)))
		}
		if manual {
			return v, status(fmt.Sprintf("reloaded STUDENT (%d row%s)", len(msg.Students), plural(len(msg.Students))))
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			v.manual = true
			return v, v.load()
		case "up", "k":
			v.viewport.ScrollUp(1)
		case "down", "j":
			v.viewport.ScrollDown(1)
		case "left", "h":
			v.viewport.ScrollLeft(4)
		case "right", "l":
			v.viewport.ScrollRight(4)
		case "pgup":
			v.viewport.PageUp()
		case "pgdown":
			v.viewport.PageDown()
		case "home", "g":
			v.viewport.Home()
		case "end", "G":
			v.viewport.End()
		}
	}
	return v, nil
}

func (v *DataView) View() string {
	title := StyleTitle.Render("STUDENT")
	if v.loading {
		title += StyleDimmed.Render("  loading...")
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, v.viewport.Render())
}

func status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg(text) }
}
