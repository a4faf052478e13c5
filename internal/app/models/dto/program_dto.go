package dto

// ProgramResponse represents basic program information
type ProgramResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	ProgramType    string `json:"programType"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName,omitempty"`
	DurationYears  int    `json:"durationYears"`
	TotalCredits   int    `json:"totalCredits"`
	Description    string `json:"description,omitempty"`
	IsActive       bool   `json:"isActive"`
}

// CreateProgramRequest represents program creation data
type CreateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	ProgramType   string `json:"programType" binding:"required,oneof=bachelor master phd diploma certificate"`
	DepartmentID  int64  `json:"departmentId" binding:"required,gt=0"`
	DurationYears int    `json:"durationYears" binding:"required,gt=0"`
	TotalCredits  int    `json:"totalCredits" binding:"required,gt=0"`
	Description   string `json:"description,omitempty"`
}

// UpdateProgramRequest represents program update data
type UpdateProgramRequest struct {
	Name          string `json:"name" binding:"required"`
	Code          string `json:"code" binding:"required"`
	ProgramType   string `json:"programType" binding:"required,oneof=bachelor master phd diploma certificate"`
	DurationYears int    `json:"durationYears" binding:"required,gt=0"`
	TotalCredits  int    `json:"totalCredits" binding:"required,gt=0"`
	Description   string `json:"description,omitempty"`
}

// ProgramListResponse represents a list of programs
type ProgramListResponse struct {
	Programs []ProgramResponse `json:"programs"`
}
