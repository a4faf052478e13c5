package models

import "time"

// Course represents a course offered by a department.
// EnrolledCount is derived from enrollment rows with status=enrolled and is
// never stored in the courses table.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Code         string    `json:"code" db:"code"` // Unique among active courses
	Description  *string   `json:"description,omitempty" db:"description"`
	Credits      int       `json:"credits" db:"credits"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	LecturerID   *int64    `json:"lecturerId,omitempty" db:"lecturer_id"`
	SemesterID   int64     `json:"semesterId" db:"semester_id"`
	MaxCapacity  int       `json:"maxCapacity" db:"max_capacity"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Derived fields
	EnrolledCount int `json:"enrolledCount"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
	Lecturer   *User       `json:"lecturer,omitempty"`
	Semester   *Semester   `json:"semester,omitempty"`
}

// AvailableSpots returns the remaining capacity given the derived enrolled count.
func (c *Course) AvailableSpots() int {
	spots := c.MaxCapacity - c.EnrolledCount
	if spots < 0 {
		return 0
	}
	return spots
}
