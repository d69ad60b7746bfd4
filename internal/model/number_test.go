package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudent_UnmarshalAttendance(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "number", body: `{"attendance":85}`, want: 85},
		{name: "numeric string", body: `{"attendance":"85"}`, want: 85},
		{name: "padded string", body: `{"attendance":" 7 "}`, want: 7},
		{name: "empty string", body: `{"attendance":""}`, want: 0},
		{name: "null", body: `{"attendance":null}`, want: 0},
		{name: "absent", body: `{"name":"Ann"}`, want: 0},
		{name: "negative string", body: `{"attendance":"-3"}`, want: -3},
		{name: "word", body: `{"attendance":"high"}`, wantErr: true},
		{name: "fraction", body: `{"attendance":85.5}`, wantErr: true},
		{name: "boolean", body: `{"attendance":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Student
			err := json.Unmarshal([]byte(tt.body), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Attendance)
		})
	}
}

func TestStudent_UnmarshalKeepsOtherFields(t *testing.T) {
	var s Student
	body := `{"id":4,"name":"Ann","email":"ann@x.com","course":"CS","attendance":"85","status":"ACTIVE"}`
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, int64(4), s.ID)
	assert.Equal(t, "Ann", s.Name)
	assert.Equal(t, "ann@x.com", s.Email)
	assert.Equal(t, "CS", s.Course)
	assert.Equal(t, 85, s.Attendance)
	assert.Equal(t, "ACTIVE", s.Status)
}

func TestEvent_UnmarshalMaxParticipants(t *testing.T) {
	var e Event
	body := `{"title":"Hackathon","date":"2025-06-01","maxParticipants":"120"}`
	require.NoError(t, json.Unmarshal([]byte(body), &e))

	assert.Equal(t, "Hackathon", e.Title)
	assert.Equal(t, "2025-06-01", e.Date.String())
	assert.Equal(t, 120, e.MaxParticipants)

	assert.Error(t, json.Unmarshal([]byte(`{"maxParticipants":"many"}`), &e))
}
