package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Placeholder is an offline AI provider for development and demos.
// It recognises a handful of question shapes and answers with fenced SQL.
type Placeholder struct {
	delay time.Duration
}

var _ Provider = (*Placeholder)(nil)

func NewPlaceholder() *Placeholder {
	return &Placeholder{delay: 300 * time.Millisecond}
}

func (p *Placeholder) Name() string {
	return "placeholder"
}

var (
	sectionRe = regexp.MustCompile(`(?i)\bsection\s+([a-z])\b`)
	classRe   = regexp.MustCompile(`(?i)\b(\d+(?:st|nd|rd|th))\b`)
	marksRe   = regexp.MustCompile(`(?i)(more|greater|higher|above|less|lower|below|under)\s+than\s+(\d+)|(above|below|over|under)\s+(\d+)`)
)

func (p *Placeholder) Complete(ctx context.Context, prompt, question string) (string, error) {
	// Simulate network latency
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}

	return "```sql\n" + placeholderSQL(question) + "\n```", nil
}

func placeholderSQL(question string) string {
	q := strings.ToLower(question)

	var where []string
	if m := sectionRe.FindStringSubmatch(question); m != nil {
		where = append(where, fmt.Sprintf("SECTION = '%s'", strings.ToUpper(m[1])))
	}
	if m := classRe.FindStringSubmatch(question); m != nil {
		where = append(where, fmt.Sprintf("CLASS = '%s'", strings.ToLower(m[1])))
	}
	if m := marksRe.FindStringSubmatch(q); m != nil {
		word, n := m[1], m[2]
		if word == "" {
			word, n = m[3], m[4]
		}
		op := ">"
		switch word {
		case "less", "lower", "below", "under":
			op = "<"
		}
		where = append(where, fmt.Sprintf("MARKS %s %s", op, n))
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	switch {
	case strings.Contains(q, "how many") || strings.Contains(q, "count"):
		return "SELECT COUNT(*) FROM STUDENT" + cond + ";"
	case strings.Contains(q, "average"):
		return "SELECT AVG(MARKS) FROM STUDENT" + cond + ";"
	case strings.Contains(q, "highest") || strings.Contains(q, "top"):
		return "SELECT * FROM STUDENT" + cond + " ORDER BY MARKS DESC LIMIT 1;"
	case strings.Contains(q, "name"):
		return "SELECT NAME FROM STUDENT" + cond + ";"
	default:
		return "SELECT * FROM STUDENT" + cond + ";"
	}
}
