package dto

import "time"

// EnrollRequest represents a student's enrollment request
type EnrollRequest struct {
	CourseID  int64 `json:"courseId" binding:"required,gt=0"`
	ProgramID int64 `json:"programId" binding:"required,gt=0"`
}

// UpdateEnrollmentStatusRequest moves an enrollment to a new status
type UpdateEnrollmentStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=enrolled completed dropped"`
	FinalGrade *string `json:"finalGrade,omitempty" binding:"omitempty,oneof=A B C D F"`
}

// EnrollmentResponse represents an enrollment with course context
type EnrollmentResponse struct {
	ID             int64     `json:"id"`
	StudentID      int64     `json:"studentId"`
	StudentName    string    `json:"studentName,omitempty"`
	CourseID       int64     `json:"courseId"`
	CourseName     string    `json:"courseName,omitempty"`
	CourseCode     string    `json:"courseCode,omitempty"`
	Credits        int       `json:"credits,omitempty"`
	ProgramID      int64     `json:"programId"`
	SemesterName   string    `json:"semesterName,omitempty"`
	LecturerName   string    `json:"lecturerName,omitempty"`
	Status         string    `json:"status"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
	FinalGrade     *string   `json:"finalGrade,omitempty"`
}

// EnrollmentListResponse represents a list of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}
