package dto

// DepartmentResponse represents basic department information
type DepartmentResponse struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	Description        string `json:"description,omitempty"`
	HeadOfDepartmentID *int64 `json:"headOfDepartmentId,omitempty"`
	IsActive           bool   `json:"isActive"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Code               string `json:"code" binding:"required"`
	Description        string `json:"description,omitempty"`
	HeadOfDepartmentID *int64 `json:"headOfDepartmentId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name               string `json:"name" binding:"required"`
	Code               string `json:"code" binding:"required"`
	Description        string `json:"description,omitempty"`
	HeadOfDepartmentID *int64 `json:"headOfDepartmentId,omitempty" binding:"omitempty,gt=0"`
}

// DepartmentListResponse represents a list of departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// DepartmentDependentsResponse reports what blocks a plain department delete
type DepartmentDependentsResponse struct {
	CanDelete      bool  `json:"canDelete"`
	ActivePrograms int64 `json:"activePrograms"`
	ActiveCourses  int64 `json:"activeCourses"`
}
