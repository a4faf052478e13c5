package models

import "time"

// Program represents an academic program owned by a department
type Program struct {
	ID            int64       `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Code          string      `json:"code" db:"code"` // Unique among active programs
	ProgramType   ProgramType `json:"programType" db:"program_type"`
	DepartmentID  int64       `json:"departmentId" db:"department_id"`
	DurationYears int         `json:"durationYears" db:"duration_years"`
	TotalCredits  int         `json:"totalCredits" db:"total_credits"`
	Description   *string     `json:"description,omitempty" db:"description"`
	IsActive      bool        `json:"isActive" db:"is_active"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
