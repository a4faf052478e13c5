package models

import "time"

// ProgramCourse links a course to a program's curriculum.
// The (program, course) pair is unique; removing an allocation flips IsActive
// to false and a later allocation reactivates the same row.
type ProgramCourse struct {
	ID            int64     `json:"id" db:"id"`
	ProgramID     int64     `json:"programId" db:"program_id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	IsRequired    bool      `json:"isRequired" db:"is_required"`
	SemesterOrder int       `json:"semesterOrder" db:"semester_order"` // Position in curriculum
	AllocatedByID *int64    `json:"allocatedById,omitempty" db:"allocated_by_id"`
	AllocatedAt   time.Time `json:"allocatedAt" db:"allocated_at"`
	IsActive      bool      `json:"isActive" db:"is_active"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}
