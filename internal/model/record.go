package model

import "time"

// Meta holds the fields every stored record carries regardless of its kind.
// ID is assigned by the database on insert and never changes afterwards.
// ModifiedAt stays nil until the first successful update.
type Meta struct {
	ID         int64      `json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt *time.Time `json:"modifiedAt,omitempty"`
}

// Base exposes the embedded Meta so generic code can reach it through any kind.
func (m *Meta) Base() *Meta { return m }

// Entity is the constraint satisfied by a pointer to a record kind (e.g. *Student).
//
// Assign overwrites every mutable attribute of the receiver with the values in src;
// Meta fields are left untouched.
type Entity[T any] interface {
	*T
	Base() *Meta
	Assign(src *T)
}

// Defaulter is implemented by kinds that fill blank attributes before they are written.
type Defaulter interface {
	ApplyDefaults()
}
