package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recordsapi/internal/model"
	"recordsapi/internal/repository"
)

// RecordService defines the use cases shared by every record kind.
type RecordService[T any] interface {
	// List returns every record of the kind.
	List(ctx context.Context) ([]T, error)

	// Get returns a single record by its id.
	Get(ctx context.Context, id int64) (*T, error)

	// Create validates and stores a new record, rejecting values that break the
	// kind's uniqueness constraint with ErrConflict.
	Create(ctx context.Context, in *T) (*T, error)

	// Update overwrites the mutable attributes of an existing record. The unique
	// field is only checked for collisions when its value changes.
	Update(ctx context.Context, id int64, in *T) (*T, error)

	// Delete permanently removes a record.
	Delete(ctx context.Context, id int64) error
}

// Option configures a service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the source of creation and modification timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// recordService is the generic implementation of RecordService.
type recordService[T any, P model.Entity[T]] struct {
	kind model.Kind[T]
	repo repository.RecordRepository[T]
	now  func() time.Time
}

// NewRecordService constructs the service for one kind, e.g.
// NewRecordService[model.Student](model.StudentKind, repo).
func NewRecordService[T any, P model.Entity[T]](kind model.Kind[T], repo repository.RecordRepository[T], opts ...Option) RecordService[T] {
	o := buildOptions(opts)
	return &recordService[T, P]{kind: kind, repo: repo, now: o.now}
}

func (s *recordService[T, P]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind.Collection, err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

func (s *recordService[T, P]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s %d: %w", s.kind.Name, id, err)
	}
	return rec, nil
}

func (s *recordService[T, P]) Create(ctx context.Context, in *T) (*T, error) {
	if in == nil {
		return nil, ErrInputRequired
	}

	rec := new(T)
	P(rec).Assign(in)
	if err := s.prepare(rec); err != nil {
		return nil, err
	}

	if s.kind.HasUniqueField() {
		if err := s.checkUnique(ctx, s.kind.UniqueValue(rec)); err != nil {
			return nil, err
		}
	}

	meta := P(rec).Base()
	meta.CreatedAt = s.now()
	meta.ModifiedAt = nil

	stored, err := s.repo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create %s: %w", s.kind.Name, err)
	}
	return stored, nil
}

func (s *recordService[T, P]) Update(ctx context.Context, id int64, in *T) (*T, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if in == nil {
		return nil, ErrInputRequired
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	next := new(T)
	P(next).Assign(in)
	if err := s.prepare(next); err != nil {
		return nil, err
	}

	// Resubmitting the stored value must not collide with the record itself.
	if s.kind.HasUniqueField() {
		if v := s.kind.UniqueValue(next); v != s.kind.UniqueValue(current) {
			if err := s.checkUnique(ctx, v); err != nil {
				return nil, err
			}
		}
	}

	P(current).Assign(next)
	meta := P(current).Base()
	ts := s.now()
	if ts.Before(meta.CreatedAt) {
		ts = meta.CreatedAt
	}
	meta.ModifiedAt = &ts

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update %s %d: %w", s.kind.Name, id, err)
	}
	return updated, nil
}

func (s *recordService[T, P]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete %s %d: %w", s.kind.Name, id, err)
	}
	return nil
}

// prepare fills defaults and validates the attributes of rec.
func (s *recordService[T, P]) prepare(rec *T) error {
	if d, ok := any(rec).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	return validateRecord(rec)
}

func (s *recordService[T, P]) checkUnique(ctx context.Context, value string) error {
	exists, err := s.repo.ExistsByUnique(ctx, value)
	if err != nil {
		return fmt.Errorf("check %s %s: %w", s.kind.Name, s.kind.UniqueField, err)
	}
	if exists {
		return ErrConflict
	}
	return nil
}
