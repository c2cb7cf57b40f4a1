// view_ask.go is the question view.
//
// One text input, Enter to submit. The generated SQL is shown above the
// result table. The request runs asynchronously; while it is in flight a
// spinner is shown and further submits are ignored.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DachengChen/askSQL/assistant"
)

type AskView struct {
	assistant *assistant.Assistant
	credErr   error // set when no provider could be built

	input    textinput.Model
	spinner  spinner.Model
	viewport *Viewport

	history []string
	histIdx int

	answer  *assistant.Answer
	err     error
	notice  string
	loading bool
	width   int
	height  int
}

func NewAskView(a *assistant.Assistant, credErr error) *AskView {
	ti := textinput.New()
	ti.Prompt = "Ask> "
	ti.PromptStyle = StylePrompt
	ti.Placeholder = "Enter your query in plain English"
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorAccent)),
	)

	return &AskView{
		assistant: a,
		credErr:   credErr,
		input:     ti,
		spinner:   sp,
		viewport:  NewViewport(80, 20),
		histIdx:   -1,
	}
}

func (v *AskView) Name() string { return "Ask" }

func (v *AskView) WantsTextInput() bool { return true }

func (v *AskView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = width - 8
	// prompt + blank + viewport indicator
	v.viewport.SetSize(width-2, height-4)
}

func (v *AskView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "Enter", Desc: "generate SQL"},
		{Key: "↑/↓", Desc: "history"},
		{Key: "PgUp/PgDn", Desc: "scroll"},
		{Key: "Ctrl+W", Desc: "wrap"},
	}
}

func (v *AskView) Init() tea.Cmd {
	if v.answer == nil && v.err == nil {
		v.viewport.SetContentLines(v.welcome())
	}
	return textinput.Blink
}

func (v *AskView) welcome() []string {
	lines := []string{
		StyleTitle.Render("Gemini SQL Assistant"),
		"Ask any question, and I'll generate the SQL query for you!",
		"",
		StyleDimmed.Render("Table: STUDENT(NAME, CLASS, SECTION, MARKS)"),
		StyleDimmed.Render("Try: \"How many students are there in total?\""),
		StyleDimmed.Render("     \"Show me all the students in section A.\""),
	}
	if v.credErr != nil {
		title, hint := assistant.Describe(v.credErr)
		lines = append(lines, "", StyleError.Render(title))
		if hint != "" {
			lines = append(lines, StyleWarning.Render(hint))
		}
	}
	return lines
}

func (v *AskView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case AnswerMsg:
		v.loading = false
		v.answer = msg.Answer
		v.err = msg.Err
		v.viewport.SetContentLines(v.renderAnswer())
		v.viewport.Home()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *AskView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.submit()

	case "up":
		if len(v.history) > 0 {
			if v.histIdx < len(v.history)-1 {
				v.histIdx++
			}
			v.input.SetValue(v.history[v.histIdx])
			v.input.CursorEnd()
		}
		return v, nil

	case "down":
		if v.histIdx > 0 {
			v.histIdx--
			v.input.SetValue(v.history[v.histIdx])
			v.input.CursorEnd()
		} else {
			v.histIdx = -1
			v.input.SetValue("")
		}
		return v, nil

	case "pgup":
		v.viewport.PageUp()
		return v, nil
	case "pgdown":
		v.viewport.PageDown()
		return v, nil
	case "ctrl+k":
		v.viewport.ScrollUp(1)
		return v, nil
	case "ctrl+j":
		v.viewport.ScrollDown(1)
		return v, nil
	case "ctrl+w":
		v.viewport.ToggleWrap()
		return v, nil
	}

	if v.loading {
		return v, nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit starts the query flow for the current input.
func (v *AskView) submit() tea.Cmd {
	if v.loading {
		return nil
	}

	question := strings.TrimSpace(v.input.Value())
	if question == "" {
		v.notice = "Please enter a question first!"
		return nil
	}
	if v.assistant == nil {
		v.notice = "Asking is disabled until an API key is configured."
		return nil
	}

	v.notice = ""
	v.history = append([]string{question}, v.history...)
	v.histIdx = -1
	v.loading = true

	a := v.assistant
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		ans, err := a.Ask(context.Background(), question)
		return AnswerMsg{Answer: ans, Err: err}
	})
}

func (v *AskView) renderAnswer() []string {
	var lines []string

	if v.answer != nil {
		lines = append(lines, StyleTitle.Render("Generated SQL:"))
		for _, l := range strings.Split(v.answer.SQL, "\n") {
			lines = append(lines, "  "+StyleSQL.Render(l))
		}
		lines = append(lines, "")
	}

	if v.err != nil {
		title, hint := assistant.Describe(v.err)
		lines = append(lines, StyleError.Render(title))
		if hint != "" {
			lines = append(lines, StyleWarning.Render(hint))
		}
		return lines
	}

	if v.answer != nil && v.answer.Result != nil {
		lines = append(lines, StyleTitle.Render("Query Results:"))
		lines = append(lines, formatResult(v.answer.Result)...)
		lines = append(lines, StyleDimmed.Render("took "+v.answer.Duration.Round(time.Millisecond).String()))
	}
	return lines
}

func (v *AskView) View() string {
	prompt := v.input.View()
	if v.loading {
		prompt = StylePrompt.Render("Ask> ") + v.spinner.View() + StyleDimmed.Render(" Generating query...")
	}

	status := ""
	if v.notice != "" {
		status = StyleWarning.Render(v.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left, prompt, status, v.viewport.Render())
}
