package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"recordsapi/internal/model"
	"recordsapi/internal/repository"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// RecordPostgres is a PostgreSQL implementation of repository.RecordRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RecordPostgres[T any, P model.Entity[T]] struct {
	db     *sql.DB
	schema Schema[T]
	q      queries
}

// NewRecordPostgres creates a repository for the kind described by schema.
func NewRecordPostgres[T any, P model.Entity[T]](db *sql.DB, schema Schema[T]) *RecordPostgres[T, P] {
	return &RecordPostgres[T, P]{
		db:     db,
		schema: schema,
		q:      buildQueries(schema.Table, schema.Columns, schema.UniqueColumn),
	}
}

// NewStudentPostgres creates the students repository.
func NewStudentPostgres(db *sql.DB) *RecordPostgres[model.Student, *model.Student] {
	return NewRecordPostgres[model.Student](db, StudentSchema)
}

// NewEventPostgres creates the events repository.
func NewEventPostgres(db *sql.DB) *RecordPostgres[model.Event, *model.Event] {
	return NewRecordPostgres[model.Event](db, EventSchema)
}

var (
	_ repository.RecordRepository[model.Student] = (*RecordPostgres[model.Student, *model.Student])(nil)
	_ repository.RecordRepository[model.Event]   = (*RecordPostgres[model.Event, *model.Event])(nil)
)

// Create inserts a new row and returns the stored record including its generated id.
func (r *RecordPostgres[T, P]) Create(ctx context.Context, rec *T) (*T, error) {
	args := append(r.schema.Values(rec), P(rec).Base().CreatedAt)

	var out T
	if err := r.db.QueryRowContext(ctx, r.q.insert, args...).Scan(r.dest(&out)...); err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// FindByID fetches a single record by its id.
func (r *RecordPostgres[T, P]) FindByID(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.db.QueryRowContext(ctx, r.q.get, id).Scan(r.dest(&out)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// List returns all rows of the table ordered by id.
func (r *RecordPostgres[T, P]) List(ctx context.Context) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, r.q.list)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var rec T
		if err := rows.Scan(r.dest(&rec)...); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites the mutable columns and modified_at of the row with rec's id.
func (r *RecordPostgres[T, P]) Update(ctx context.Context, rec *T) (*T, error) {
	meta := P(rec).Base()
	var modifiedAt any
	if meta.ModifiedAt != nil {
		modifiedAt = *meta.ModifiedAt
	}
	args := append(r.schema.Values(rec), modifiedAt, meta.ID)

	var out T
	if err := r.db.QueryRowContext(ctx, r.q.update, args...).Scan(r.dest(&out)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, translate(err)
	}
	return &out, nil
}

// Delete removes a row by id.
func (r *RecordPostgres[T, P]) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.q.delete, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ExistsByUnique reports whether value is already taken in the unique column.
// Kinds without a unique column never collide.
func (r *RecordPostgres[T, P]) ExistsByUnique(ctx context.Context, value string) (bool, error) {
	if r.q.exists == "" {
		return false, nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, r.q.exists, value).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// dest returns scan targets in the column order of every SELECT/RETURNING list.
func (r *RecordPostgres[T, P]) dest(rec *T) []any {
	meta := P(rec).Base()
	d := make([]any, 0, len(r.schema.Columns)+3)
	d = append(d, &meta.ID)
	d = append(d, r.schema.Targets(rec)...)
	return append(d, &meta.CreatedAt, &meta.ModifiedAt)
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
