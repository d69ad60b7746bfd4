package model

// Kind describes one record type exposed by the API.
type Kind[T any] struct {
	// Name is the singular name used in messages and logs, e.g. "student".
	Name string
	// Collection is the plural name used for the URL segment and the table.
	Collection string
	// UniqueField is the JSON name of the attribute carrying a uniqueness constraint.
	UniqueField string
	// UniqueValue returns the constrained value of a record. Nil means the kind
	// declares no uniqueness constraint.
	UniqueValue func(*T) string
}

// HasUniqueField reports whether records of this kind carry a uniqueness constraint.
func (k Kind[T]) HasUniqueField() bool {
	return k.UniqueValue != nil
}

var (
	StudentKind = Kind[Student]{
		Name:        "student",
		Collection:  "students",
		UniqueField: "email",
		UniqueValue: func(s *Student) string { return s.Email },
	}

	EventKind = Kind[Event]{
		Name:       "event",
		Collection: "events",
	}
)
