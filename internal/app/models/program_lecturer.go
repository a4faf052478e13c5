package models

import "time"

// ProgramLecturer links a lecturer to a program with a role label.
// The (program, lecturer) pair is unique; removing an assignment flips
// IsActive to false and a later assignment reactivates the same row.
type ProgramLecturer struct {
	ID           int64     `json:"id" db:"id"`
	ProgramID    int64     `json:"programId" db:"program_id"`
	LecturerID   int64     `json:"lecturerId" db:"lecturer_id"`
	Role         string    `json:"role" db:"role"` // lecturer, coordinator, advisor
	AssignedByID *int64    `json:"assignedById,omitempty" db:"assigned_by_id"`
	AssignedAt   time.Time `json:"assignedAt" db:"assigned_at"`
	IsActive     bool      `json:"isActive" db:"is_active"`

	// Relations (populated when needed)
	Program  *Program `json:"program,omitempty"`
	Lecturer *User    `json:"lecturer,omitempty"`
}
