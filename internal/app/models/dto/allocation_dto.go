package dto

import "time"

// AssignLecturerRequest assigns a lecturer to a program
type AssignLecturerRequest struct {
	LecturerID int64  `json:"lecturerId" binding:"required,gt=0"`
	Role       string `json:"role" binding:"required,oneof=lecturer coordinator advisor"`
}

// UpdateLecturerAssignmentRequest updates an assignment's role
type UpdateLecturerAssignmentRequest struct {
	Role string `json:"role" binding:"required,oneof=lecturer coordinator advisor"`
}

// LecturerAssignmentResponse represents a lecturer-program assignment
type LecturerAssignmentResponse struct {
	ID            int64     `json:"id"`
	ProgramID     int64     `json:"programId"`
	LecturerID    int64     `json:"lecturerId"`
	LecturerName  string    `json:"lecturerName,omitempty"`
	LecturerEmail string    `json:"lecturerEmail,omitempty"`
	ProgramName   string    `json:"programName,omitempty"`
	ProgramCode   string    `json:"programCode,omitempty"`
	Role          string    `json:"role"`
	AssignedAt    time.Time `json:"assignedAt"`
	IsActive      bool      `json:"isActive"`
	Reactivated   bool      `json:"reactivated,omitempty"`
}

// LecturerAssignmentListResponse represents a list of assignments
type LecturerAssignmentListResponse struct {
	Assignments []LecturerAssignmentResponse `json:"assignments"`
}

// AllocateCourseRequest allocates a course into a program's curriculum
type AllocateCourseRequest struct {
	CourseID      int64 `json:"courseId" binding:"required,gt=0"`
	IsRequired    bool  `json:"isRequired"`
	SemesterOrder int   `json:"semesterOrder" binding:"required,gt=0"`
}

// UpdateCourseAllocationRequest updates an allocation's curriculum attributes
type UpdateCourseAllocationRequest struct {
	IsRequired    bool `json:"isRequired"`
	SemesterOrder int  `json:"semesterOrder" binding:"required,gt=0"`
}

// CourseAllocationResponse represents a course-program allocation
type CourseAllocationResponse struct {
	ID            int64     `json:"id"`
	ProgramID     int64     `json:"programId"`
	CourseID      int64     `json:"courseId"`
	CourseName    string    `json:"courseName,omitempty"`
	CourseCode    string    `json:"courseCode,omitempty"`
	Credits       int       `json:"credits,omitempty"`
	IsRequired    bool      `json:"isRequired"`
	SemesterOrder int       `json:"semesterOrder"`
	AllocatedAt   time.Time `json:"allocatedAt"`
	IsActive      bool      `json:"isActive"`
	Reactivated   bool      `json:"reactivated,omitempty"`
}

// CourseAllocationListResponse represents a program's curriculum
type CourseAllocationListResponse struct {
	Allocations []CourseAllocationResponse `json:"allocations"`
}
