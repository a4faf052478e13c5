package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	TokenRepository           *TokenRepository
	DepartmentRepository      *DepartmentRepository
	ProgramRepository         *ProgramRepository
	CourseRepository          *CourseRepository
	SemesterRepository        *SemesterRepository
	EnrollmentRepository      *EnrollmentRepository
	ProgramLecturerRepository *ProgramLecturerRepository
	ProgramCourseRepository   *ProgramCourseRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		TokenRepository:           NewTokenRepository(db),
		DepartmentRepository:      NewDepartmentRepository(db),
		ProgramRepository:         NewProgramRepository(db),
		CourseRepository:          NewCourseRepository(db),
		SemesterRepository:        NewSemesterRepository(db),
		EnrollmentRepository:      NewEnrollmentRepository(db),
		ProgramLecturerRepository: NewProgramLecturerRepository(db),
		ProgramCourseRepository:   NewProgramCourseRepository(db),
	}
}
