package services

import (
	"context"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
)

// Store interfaces consumed by the services. The repositories package provides
// the pgx-backed implementations; tests substitute in-memory fakes.

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role models.Role, departmentID *int64) ([]*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	Update(ctx context.Context, user *models.User) error
}

type tokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByToken(ctx context.Context, tokenValue string) (*models.RefreshToken, error)
	Delete(ctx context.Context, tokenValue string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

type departmentStore interface {
	Create(ctx context.Context, department *models.Department) error
	GetByID(ctx context.Context, id int64) (*models.Department, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*models.Department, error)
	CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, department *models.Department) error
	CountActiveDependents(ctx context.Context, id int64) (programs, courses int, err error)
	Deactivate(ctx context.Context, id int64) error
	DeactivateCascade(ctx context.Context, id int64) error
}

type programStore interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id int64) (*models.Program, error)
	GetAll(ctx context.Context, departmentID *int64, activeOnly bool) ([]*models.Program, error)
	CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, program *models.Program) error
	CountActiveEnrollments(ctx context.Context, id int64) (int, error)
	Deactivate(ctx context.Context, id int64) error
	DeactivateWithEnrollments(ctx context.Context, id int64) error
}

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context, filter repositories.CourseFilter) ([]*models.Course, int64, error)
	CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error)
	Update(ctx context.Context, course *models.Course) error
	Deactivate(ctx context.Context, id int64) error
}

type semesterStore interface {
	Create(ctx context.Context, semester *models.Semester) error
	GetByID(ctx context.Context, id int64) (*models.Semester, error)
	GetAll(ctx context.Context, limit int) ([]*models.Semester, error)
	GetCurrent(ctx context.Context) (*models.Semester, error)
	SetCurrent(ctx context.Context, id int64) error
	Update(ctx context.Context, semester *models.Semester) error
}

type enrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetEnrolledByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
	CountEnrolledByCourse(ctx context.Context, courseID int64) (int, error)
	ListByStudent(ctx context.Context, studentID int64, semesterID *int64) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64, enrolledOnly bool) ([]*models.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error
}

type lecturerAssignmentStore interface {
	Create(ctx context.Context, assignment *models.ProgramLecturer) error
	GetByProgramAndLecturer(ctx context.Context, programID, lecturerID int64) (*models.ProgramLecturer, error)
	GetByID(ctx context.Context, programID, assignmentID int64) (*models.ProgramLecturer, error)
	Reactivate(ctx context.Context, id int64, role string, assignedByID *int64) error
	ListByProgram(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramLecturer, error)
	ListByLecturer(ctx context.Context, lecturerID int64) ([]*models.ProgramLecturer, error)
	Update(ctx context.Context, assignment *models.ProgramLecturer) error
	Deactivate(ctx context.Context, programID, assignmentID int64) error
}

type courseAllocationStore interface {
	Create(ctx context.Context, allocation *models.ProgramCourse) error
	GetByProgramAndCourse(ctx context.Context, programID, courseID int64) (*models.ProgramCourse, error)
	GetByID(ctx context.Context, programID, allocationID int64) (*models.ProgramCourse, error)
	Reactivate(ctx context.Context, id int64, isRequired bool, semesterOrder int, allocatedByID *int64) error
	ListByProgram(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramCourse, error)
	Update(ctx context.Context, allocation *models.ProgramCourse) error
	Deactivate(ctx context.Context, programID, allocationID int64) error
}
