package model

import "encoding/json"

// StudentStatusActive is applied when a student is written without a status.
const StudentStatusActive = "ACTIVE"

// Student is an enrolled student. Email is unique across all students.
type Student struct {
	Meta
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Phone      string `json:"phone" validate:"max=32"`
	Course     string `json:"course" validate:"max=128"`
	Attendance int    `json:"attendance" validate:"gte=0,lte=100"`
	Status     string `json:"status" validate:"max=32"`
}

// Assign copies the mutable attributes of src into s.
func (s *Student) Assign(src *Student) {
	s.Name = src.Name
	s.Email = src.Email
	s.Phone = src.Phone
	s.Course = src.Course
	s.Attendance = src.Attendance
	s.Status = src.Status
}

func (s *Student) ApplyDefaults() {
	if s.Status == "" {
		s.Status = StudentStatusActive
	}
}

// Enrolled is the calendar date the student record was created.
func (s Student) Enrolled() string {
	if s.CreatedAt.IsZero() {
		return ""
	}
	return s.CreatedAt.Format(DateLayout)
}

// MarshalJSON adds the read-only "enrolled" field to the encoded student.
func (s Student) MarshalJSON() ([]byte, error) {
	type student Student
	return json.Marshal(struct {
		student
		Enrolled string `json:"enrolled,omitempty"`
	}{student: student(s), Enrolled: s.Enrolled()})
}

// UnmarshalJSON accepts attendance as a number or a numeric string.
func (s *Student) UnmarshalJSON(b []byte) error {
	type student Student
	aux := struct {
		*student
		Attendance looseInt `json:"attendance"`
	}{student: (*student)(s), Attendance: looseInt(s.Attendance)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.Attendance = int(aux.Attendance)
	return nil
}
