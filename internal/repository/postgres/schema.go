package postgres

import (
	"fmt"
	"strings"

	"recordsapi/internal/model"
)

// Schema maps a record kind onto its table.
// Columns lists the mutable attribute columns; Values and Targets must return
// one entry per column in the same order.
type Schema[T any] struct {
	Table        string
	Columns      []string
	UniqueColumn string
	Values       func(*T) []any
	Targets      func(*T) []any
}

var StudentSchema = Schema[model.Student]{
	Table:        "students",
	Columns:      []string{"full_name", "email", "phone", "course", "attendance", "status"},
	UniqueColumn: "email",
	Values: func(s *model.Student) []any {
		return []any{s.Name, s.Email, s.Phone, s.Course, s.Attendance, s.Status}
	},
	Targets: func(s *model.Student) []any {
		return []any{&s.Name, &s.Email, &s.Phone, &s.Course, &s.Attendance, &s.Status}
	},
}

var EventSchema = Schema[model.Event]{
	Table:   "events",
	Columns: []string{"title", "event_date", "type", "description", "max_participants"},
	Values: func(e *model.Event) []any {
		return []any{e.Title, e.Date, e.Type, e.Description, e.MaxParticipants}
	},
	Targets: func(e *model.Event) []any {
		return []any{&e.Title, &e.Date, &e.Type, &e.Description, &e.MaxParticipants}
	},
}

// queries holds the statements derived from a Schema once at construction.
type queries struct {
	insert string
	get    string
	list   string
	update string
	delete string
	exists string
}

func buildQueries(table string, columns []string, uniqueColumn string) queries {
	all := "id, " + strings.Join(columns, ", ") + ", created_at, modified_at"

	insertCols := append(append([]string{}, columns...), "created_at")
	placeholders := make([]string, len(insertCols))
	for i := range insertCols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := make([]string, 0, len(columns)+1)
	for i, c := range columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	sets = append(sets, fmt.Sprintf("modified_at = $%d", len(columns)+1))

	q := queries{
		insert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			table, strings.Join(insertCols, ", "), strings.Join(placeholders, ", "), all),
		get:    fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", all, table),
		list:   fmt.Sprintf("SELECT %s FROM %s ORDER BY id", all, table),
		update: fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
			table, strings.Join(sets, ", "), len(columns)+2, all),
		delete: fmt.Sprintf("DELETE FROM %s WHERE id = $1", table),
	}
	if uniqueColumn != "" {
		q.exists = fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)", table, uniqueColumn)
	}
	return q
}
