package model

import "encoding/json"

// Event is a scheduled campus event. Events carry no uniqueness constraint.
type Event struct {
	Meta
	Title           string `json:"title" validate:"required,max=255"`
	Date            Date   `json:"date"`
	Type            string `json:"type" validate:"max=64"`
	Description     string `json:"description"`
	MaxParticipants int    `json:"maxParticipants" validate:"gte=0"`
}

// Assign copies the mutable attributes of src into e.
func (e *Event) Assign(src *Event) {
	e.Title = src.Title
	e.Date = src.Date
	e.Type = src.Type
	e.Description = src.Description
	e.MaxParticipants = src.MaxParticipants
}

// UnmarshalJSON accepts maxParticipants as a number or a numeric string.
func (e *Event) UnmarshalJSON(b []byte) error {
	type event Event
	aux := struct {
		*event
		MaxParticipants looseInt `json:"maxParticipants"`
	}{event: (*event)(e), MaxParticipants: looseInt(e.MaxParticipants)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.MaxParticipants = int(aux.MaxParticipants)
	return nil
}
