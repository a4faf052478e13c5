package models

import "time"

// Department represents an academic department
type Department struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	Code               string    `json:"code" db:"code"` // Unique among active departments
	Description        *string   `json:"description,omitempty" db:"description"`
	HeadOfDepartmentID *int64    `json:"headOfDepartmentId,omitempty" db:"head_of_department_id"`
	IsActive           bool      `json:"isActive" db:"is_active"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	HeadOfDepartment *User `json:"headOfDepartment,omitempty"`
}
