package dto

// CourseResponse represents course information with derived enrollment counts
type CourseResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	Credits        int    `json:"credits"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName,omitempty"`
	LecturerID     *int64 `json:"lecturerId,omitempty"`
	LecturerName   string `json:"lecturerName,omitempty"`
	SemesterID     int64  `json:"semesterId"`
	MaxCapacity    int    `json:"maxCapacity"`
	EnrolledCount  int    `json:"enrolledCount"`
	AvailableSpots int    `json:"availableSpots"`
	IsActive       bool   `json:"isActive"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Description  string `json:"description,omitempty"`
	Credits      int    `json:"credits" binding:"required,gt=0"`
	DepartmentID int64  `json:"departmentId" binding:"required,gt=0"`
	LecturerID   *int64 `json:"lecturerId,omitempty" binding:"omitempty,gt=0"`
	SemesterID   int64  `json:"semesterId" binding:"required,gt=0"`
	MaxCapacity  int    `json:"maxCapacity" binding:"required,gt=0"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description,omitempty"`
	Credits     int    `json:"credits" binding:"required,gt=0"`
	LecturerID  *int64 `json:"lecturerId,omitempty" binding:"omitempty,gt=0"`
	SemesterID  int64  `json:"semesterId" binding:"required,gt=0"`
	MaxCapacity int    `json:"maxCapacity" binding:"required,gt=0"`
}

// CourseListResponse represents one page of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}
