package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/pkg/apperrors"
	"github.com/ozan/academix/internal/pkg/dberrors"
	"github.com/ozan/academix/internal/pkg/logger"
	"github.com/ozan/academix/internal/pkg/validation"
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo     courseStore
	departmentRepo departmentStore
	semesterRepo   semesterStore
	userRepo       userStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo courseStore, departmentRepo departmentStore, semesterRepo semesterStore, userRepo userStore) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		semesterRepo:   semesterRepo,
		userRepo:       userRepo,
	}
}

// validateCourse normalizes and validates course data. The code check is
// scoped to active courses.
func (s *CourseService) validateCourse(ctx context.Context, course *models.Course) error {
	course.Code = validation.NormalizeCode(course.Code)
	if !validation.IsValidCode(course.Code) {
		return apperrors.NewBadRequestError("course code must be uppercase alphanumeric")
	}

	if course.Credits <= 0 {
		return apperrors.NewBadRequestError("course credits must be positive")
	}
	if course.MaxCapacity <= 0 {
		return apperrors.NewBadRequestError("course capacity must be positive")
	}

	exists, err := s.courseRepo.CodeExistsActive(ctx, course.Code, course.ID)
	if err != nil {
		return fmt.Errorf("error checking course code: %w", err)
	}
	if exists {
		return apperrors.ErrCourseCodeExists
	}

	if _, err := s.semesterRepo.GetByID(ctx, course.SemesterID); err != nil {
		if errors.Is(err, repositories.ErrSemesterNotFound) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error checking semester: %w", err)
	}

	if course.LecturerID != nil {
		lecturer, err := s.userRepo.GetByID(ctx, *course.LecturerID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error checking lecturer: %w", err)
		}
		if lecturer.Role != models.RoleLecturer {
			return apperrors.ErrNotALecturer
		}
	}

	return nil
}

// CreateCourse creates a new course under an existing active department
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if err := s.validateCourse(ctx, course); err != nil {
		return err
	}

	department, err := s.departmentRepo.GetByID(ctx, course.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error checking department: %w", err)
	}
	if !department.IsActive {
		return apperrors.ErrDepartmentNotFound
	}

	course.IsActive = true
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return nil
}

// GetCourseByID retrieves a course with its derived enrollment count
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// GetAllCourses retrieves one page of courses matching the filter together
// with the total match count.
func (s *CourseService) GetAllCourses(ctx context.Context, filter repositories.CourseFilter) ([]*models.Course, int64, error) {
	courses, total, err := s.courseRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving courses: %w", err)
	}

	return courses, total, nil
}

// UpdateCourse updates an existing course
func (s *CourseService) UpdateCourse(ctx context.Context, course *models.Course) error {
	existing, err := s.GetCourseByID(ctx, course.ID)
	if err != nil {
		return err
	}
	// The owning department is fixed at creation.
	course.DepartmentID = existing.DepartmentID

	if err := s.validateCourse(ctx, course); err != nil {
		return err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	return nil
}

// DeleteCourse soft-deletes a course. Enrollment history stays behind.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.GetCourseByID(ctx, id); err != nil {
		return err
	}

	if err := s.courseRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	return nil
}
