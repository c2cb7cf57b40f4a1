package ai

import (
	"strings"
)

const fence = "```"

// ExtractSQL pulls the query out of a model completion.
//
// When the completion contains a fenced block, the text between the first
// pair of fences is returned, without the info string on the opening line
// (```sql) and stripped of surrounding whitespace. An unclosed fence
// yields everything after it. Without any fence the completion is
// returned unchanged.
func ExtractSQL(completion string) string {
	start := strings.Index(completion, fence)
	if start < 0 {
		return completion
	}

	body := completion[start+len(fence):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}

	body = stripInfoString(body)
	return strings.TrimSpace(body)
}

// stripInfoString drops a language tag such as "sql" or "sqlite" that
// directly follows the opening fence, whether a newline or a space comes
// after it.
func stripInfoString(body string) string {
	cut := strings.IndexAny(body, " \t\r\n")
	if cut <= 0 {
		return body
	}
	if isInfoString(body[:cut]) {
		return body[cut:]
	}
	return body
}

func isInfoString(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+', r == '.':
		default:
			return false
		}
	}
	// A bare keyword like SELECT on the fence line is SQL, not a tag.
	switch strings.ToUpper(s) {
	case "SELECT", "WITH", "UPDATE", "DELETE", "INSERT", "REPLACE", "VALUES",
		"DROP", "CREATE", "ALTER", "PRAGMA", "EXPLAIN", "VACUUM", "ANALYZE",
		"REINDEX", "ATTACH", "DETACH", "BEGIN", "COMMIT", "END", "ROLLBACK",
		"SAVEPOINT", "RELEASE":
		return false
	}
	return true
}
