// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate value for unique field")
)

// RecordRepository defines data access for one record kind using SQL queries only.
// No business logic here, strictly persistence operations.
type RecordRepository[T any] interface {
	// Create inserts a new record and returns it with the id assigned by the database.
	Create(ctx context.Context, rec *T) (*T, error)

	// FindByID returns a record by its id or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*T, error)

	// List returns every record of the kind ordered by id.
	List(ctx context.Context) ([]T, error)

	// Update rewrites the mutable attributes and modification time of an existing record.
	Update(ctx context.Context, rec *T) (*T, error)

	// Delete removes a record by id. It returns ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error

	// ExistsByUnique reports whether any record holds value in the kind's unique column.
	ExistsByUnique(ctx context.Context, value string) (bool, error)
}
