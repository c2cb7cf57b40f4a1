// messages.go defines Bubble Tea messages used for async communication.
//
// The model request and every database call run inside a tea.Cmd and
// report back through these types, so the UI keeps drawing the spinner
// while a question is being answered.
package tui

import (
	"github.com/DachengChen/askSQL/assistant"
	"github.com/DachengChen/askSQL/db"
)

// AnswerMsg is sent when a question has been through the whole flow.
// Answer may be set even when Err is (execution errors keep the SQL).
type AnswerMsg struct {
	Answer *assistant.Answer
	Err    error
}

// StudentsMsg carries the full STUDENT table for the data view.
type StudentsMsg struct {
	Students []db.Student
	Err      error
}

// CountMsg carries the current STUDENT row count for the header.
type CountMsg struct {
	Count int64
	Err   error
}

// StatusMsg is a transient status message for the status bar.
type StatusMsg string
