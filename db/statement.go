package db

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMultipleStatements is returned when the text holds more than one
// statement. Nothing is executed in that case.
var ErrMultipleStatements = errors.New("you can only execute one statement at a time")

var createTrigger = regexp.MustCompile(`(?is)^CREATE\s+(TEMP\s+|TEMPORARY\s+)?TRIGGER\b`)

// splitStatement returns the first statement of text (up to and including
// its terminating semicolon) and whatever follows it. Semicolons inside
// string literals, quoted identifiers and comments do not end a statement,
// and a CREATE TRIGGER body runs until the semicolon after its END.
func splitStatement(text string) (stmt, rest string) {
	trigger := createTrigger.MatchString(skipTrivia(text))
	lastWord := ""

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(text, i, c)
		case c == '[':
			i = skipQuoted(text, i, ']')
		case strings.HasPrefix(text[i:], "--"):
			i = skipLineComment(text, i)
		case strings.HasPrefix(text[i:], "/*"):
			i = skipBlockComment(text, i)
		case c == ';':
			if !trigger || strings.EqualFold(lastWord, "END") {
				return text[:i+1], text[i+1:]
			}
			lastWord = ""
			i++
		case isWordByte(c):
			j := i
			for j < len(text) && isWordByte(text[j]) {
				j++
			}
			lastWord = text[i:j]
			i = j
		default:
			i++
		}
	}
	return text, ""
}

// hasStatement reports whether text contains anything besides whitespace,
// comments and empty statements.
func hasStatement(text string) bool {
	for {
		text = skipTrivia(text)
		if !strings.HasPrefix(text, ";") {
			return text != ""
		}
		text = text[1:]
	}
}

// firstKeyword returns the upper-cased leading keyword of a statement.
func firstKeyword(stmt string) string {
	s := skipTrivia(stmt)
	j := 0
	for j < len(s) && isWordByte(s[j]) {
		j++
	}
	return strings.ToUpper(s[:j])
}

// skipTrivia drops leading whitespace and comments.
func skipTrivia(text string) string {
	for {
		text = strings.TrimLeft(text, " \t\r\n")
		switch {
		case strings.HasPrefix(text, "--"):
			text = text[skipLineComment(text, 0):]
		case strings.HasPrefix(text, "/*"):
			text = text[skipBlockComment(text, 0):]
		default:
			return text
		}
	}
}

// skipQuoted returns the index just past the literal opened at text[i].
// A doubled closing character is an escaped one.
func skipQuoted(text string, i int, closing byte) int {
	for j := i + 1; j < len(text); j++ {
		if text[j] != closing {
			continue
		}
		if closing != ']' && j+1 < len(text) && text[j+1] == closing {
			j++
			continue
		}
		return j + 1
	}
	return len(text)
}

func skipLineComment(text string, i int) int {
	if end := strings.IndexByte(text[i:], '\n'); end >= 0 {
		return i + end + 1
	}
	return len(text)
}

func skipBlockComment(text string, i int) int {
	if end := strings.Index(text[i+2:], "*/"); end >= 0 {
		return i + 2 + end + 2
	}
	return len(text)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
