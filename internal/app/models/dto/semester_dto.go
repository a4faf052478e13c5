package dto

import "time"

// SemesterResponse represents semester information
type SemesterResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	SemesterType      string    `json:"semesterType"`
	Year              int       `json:"year"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	RegistrationStart time.Time `json:"registrationStart"`
	RegistrationEnd   time.Time `json:"registrationEnd"`
	IsCurrent         bool      `json:"isCurrent"`
	IsActive          bool      `json:"isActive"`
}

// CreateSemesterRequest represents semester creation data
type CreateSemesterRequest struct {
	Name              string    `json:"name" binding:"required"`
	SemesterType      string    `json:"semesterType" binding:"required,oneof=fall spring summer"`
	Year              int       `json:"year" binding:"required,gte=2000"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	RegistrationStart time.Time `json:"registrationStart" binding:"required"`
	RegistrationEnd   time.Time `json:"registrationEnd" binding:"required,gtfield=RegistrationStart"`
	IsCurrent         bool      `json:"isCurrent"`
}

// UpdateSemesterRequest represents semester update data
type UpdateSemesterRequest struct {
	Name              string    `json:"name" binding:"required"`
	SemesterType      string    `json:"semesterType" binding:"required,oneof=fall spring summer"`
	Year              int       `json:"year" binding:"required,gte=2000"`
	StartDate         time.Time `json:"startDate" binding:"required"`
	EndDate           time.Time `json:"endDate" binding:"required,gtfield=StartDate"`
	RegistrationStart time.Time `json:"registrationStart" binding:"required"`
	RegistrationEnd   time.Time `json:"registrationEnd" binding:"required,gtfield=RegistrationStart"`
}

// SemesterListResponse represents a list of semesters
type SemesterListResponse struct {
	Semesters []SemesterResponse `json:"semesters"`
}
