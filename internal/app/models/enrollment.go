package models

import "time"

// Enrollment links a student to a course within a program.
// At most one row per (student, course) may have status=enrolled; dropped and
// completed rows stay behind as history and a re-enrollment creates a new row.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	ProgramID      int64            `json:"programId" db:"program_id"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	FinalGrade     *string          `json:"finalGrade,omitempty" db:"final_grade"` // A..F
	GradePoints    *float64         `json:"gradePoints,omitempty" db:"grade_points"`
	IsActive       bool             `json:"isActive" db:"is_active"`

	// Relations (populated when needed)
	Student *User    `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
	Program *Program `json:"program,omitempty"`
}
