package models

import "time"

// Semester represents an academic term with a registration window.
// At most one semester has IsCurrent=true; SetCurrent clears the flag on all
// other rows in the same transaction.
type Semester struct {
	ID                int64        `json:"id" db:"id"`
	Name              string       `json:"name" db:"name"` // e.g. "Fall 2026"
	SemesterType      SemesterType `json:"semesterType" db:"semester_type"`
	Year              int          `json:"year" db:"year"`
	StartDate         time.Time    `json:"startDate" db:"start_date"`
	EndDate           time.Time    `json:"endDate" db:"end_date"`
	RegistrationStart time.Time    `json:"registrationStart" db:"registration_start"`
	RegistrationEnd   time.Time    `json:"registrationEnd" db:"registration_end"`
	IsCurrent         bool         `json:"isCurrent" db:"is_current"`
	IsActive          bool         `json:"isActive" db:"is_active"`
	CreatedAt         time.Time    `json:"createdAt" db:"created_at"`
}
