package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	Password     string     `json:"-" db:"password_hash"` // Hashed, excluded from JSON
	Role         Role       `json:"role" db:"role"`
	StudentID    *string    `json:"studentId,omitempty" db:"student_id"`   // For students
	EmployeeID   *string    `json:"employeeId,omitempty" db:"employee_id"` // For staff
	DepartmentID *int64     `json:"departmentId,omitempty" db:"department_id"`
	IsActive     bool       `json:"isActive" db:"is_active"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
