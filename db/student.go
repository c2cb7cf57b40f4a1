package db

import (
	"context"
	"fmt"
)

// Student is one row of the STUDENT table.
type Student struct {
	Name    string
	Class   string
	Section string
	Marks   int
}

// TableName is the only table the assistant knows about.
const TableName = "STUDENT"

const createTableSQL = `
CREATE TABLE IF NOT EXISTS STUDENT(
	NAME VARCHAR(25),
	CLASS VARCHAR(25),
	SECTION VARCHAR(25),
	MARKS INT
)`

const insertStudentSQL = `INSERT INTO STUDENT(NAME, CLASS, SECTION, MARKS) VALUES (?, ?, ?, ?)`

// SampleStudents are inserted by Setup into an empty table.
var SampleStudents = []Student{
	{Name: "Pranay", Class: "10th", Section: "A", Marks: 90},
	{Name: "John", Class: "10th", Section: "B", Marks: 85},
	{Name: "Jane", Class: "11th", Section: "A", Marks: 95},
	{Name: "Peter", Class: "10th", Section: "A", Marks: 78},
	{Name: "Mary", Class: "11th", Section: "B", Marks: 88},
}

// Setup creates the STUDENT table if needed and seeds it with
// SampleStudents when it has no rows. It returns the number of rows
// inserted, which is zero on every run after the first.
func (s *Store) Setup(ctx context.Context) (int, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, createTableSQL); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM STUDENT").Scan(&count); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}

	inserted := 0
	if count == 0 {
		stmt, err := tx.PrepareContext(ctx, insertStudentSQL)
		if err != nil {
			return 0, err
		}
		defer stmt.Close()

		for _, st := range SampleStudents {
			if _, err := stmt.ExecContext(ctx, st.Name, st.Class, st.Section, st.Marks); err != nil {
				return 0, fmt.Errorf("insert %s: %w", st.Name, err)
			}
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// Reset drops the STUDENT table and seeds it again from scratch.
func (s *Store) Reset(ctx context.Context) (int, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	if _, err := conn.ExecContext(ctx, "DROP TABLE IF EXISTS STUDENT"); err != nil {
		conn.Close()
		return 0, fmt.Errorf("drop table: %w", err)
	}
	conn.Close()

	return s.Setup(ctx)
}

// Count returns the current number of rows in STUDENT.
func (s *Store) Count(ctx context.Context) (int64, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	var n int64
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM STUDENT").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Students lists every row of STUDENT in insertion order.
func (s *Store) Students(ctx context.Context) ([]Student, error) {
	conn, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx,
		"SELECT COALESCE(NAME, ''), COALESCE(CLASS, ''), COALESCE(SECTION, ''), COALESCE(CAST(MARKS AS INTEGER), 0) FROM STUDENT ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		var st Student
		if err := rows.Scan(&st.Name, &st.Class, &st.Section, &st.Marks); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
