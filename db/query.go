// query.go executes model-generated SQL against the student database.
//
// The statement is run verbatim: no validation, no rewriting. All
// functions accept a context and return structured results that the
// UI layer can render.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyQuery is returned when there is no statement to execute.
var ErrEmptyQuery = errors.New("empty query")

// QueryResult holds the output of an arbitrary SQL statement.
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
	Status   string // e.g. "(5 rows)", "OK"
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// noTransaction lists statements SQLite refuses inside a transaction.
var noTransaction = map[string]bool{
	"VACUUM": true,
}

// Execute opens the database, runs query as a single statement, fetches
// every row and commits. The commit happens whatever the statement was,
// so DELETE/UPDATE/DROP take effect. On error nothing is committed.
//
// Text holding more than one statement is rejected with
// ErrMultipleStatements before anything runs. VACUUM runs outside the
// transaction.
func (s *Store) Execute(ctx context.Context, query string) (*QueryResult, error) {
	query = strings.TrimSpace(query)
	if !hasStatement(query) {
		return nil, ErrEmptyQuery
	}
	stmt, rest := splitStatement(query)
	if hasStatement(rest) {
		return nil, ErrMultipleStatements
	}

	conn, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var (
		q  queryer = conn
		tx *sql.Tx
	)
	if !noTransaction[firstKeyword(stmt)] {
		tx, err = conn.BeginTx(ctx, nil)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback() //nolint:errcheck
		q = tx
	}

	rows, err := q.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}

	result := &QueryResult{}

	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	result.Columns = cols

	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			rows.Close()
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
		result.RowCount++
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit: %w", err)
		}
	}

	if len(result.Columns) == 0 {
		result.Status = "OK"
	} else {
		result.Status = fmt.Sprintf("(%d row%s)", result.RowCount, plural(result.RowCount))
	}
	return result, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// FormatRowCount formats a row count for compact display:
//   - under 1000: exact number (e.g. "42", "999")
//   - 1000..999499: Xk (e.g. "1k", "999k")
//   - 999500+: XM (e.g. "1M", "10M")
func FormatRowCount(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 999500 {
		return fmt.Sprintf("%dk", (n+500)/1000)
	}
	return fmt.Sprintf("%dM", (n+500000)/1000000)
}
