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

// DepartmentService handles department-related operations
type DepartmentService struct {
	departmentRepo departmentStore
	userRepo       userStore
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo departmentStore, userRepo userStore) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

// validateDepartment normalizes and validates department data before database
// operations. The code check is scoped to active departments, so a code freed
// by a soft-delete can be reused.
func (s *DepartmentService) validateDepartment(ctx context.Context, department *models.Department) error {
	department.Code = validation.NormalizeCode(department.Code)
	if !validation.IsValidCode(department.Code) {
		return apperrors.NewBadRequestError("department code must be uppercase alphanumeric")
	}

	exists, err := s.departmentRepo.CodeExistsActive(ctx, department.Code, department.ID)
	if err != nil {
		return fmt.Errorf("error checking department code: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentCodeExists
	}

	if department.HeadOfDepartmentID != nil {
		head, err := s.userRepo.GetByID(ctx, *department.HeadOfDepartmentID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("error checking head of department: %w", err)
		}
		if head.Role != models.RoleLecturer {
			return apperrors.ErrNotALecturer
		}
	}

	return nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(ctx, department); err != nil {
		return err
	}

	department.IsActive = true
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		// A concurrent create can slip past the existence check; the partial
		// unique index reports it here.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentCodeExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	logger.Info().Int64("departmentId", department.ID).Str("code", department.Code).Msg("Department created")
	return nil
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return department, nil
}

// GetAllDepartments retrieves departments, active ones only unless asked otherwise
func (s *DepartmentService) GetAllDepartments(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}

	return departments, nil
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if _, err := s.GetDepartmentByID(ctx, department.ID); err != nil {
		return err
	}

	if err := s.validateDepartment(ctx, department); err != nil {
		return err
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentCodeExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	return nil
}

// GetDependents reports the active programs and courses that block a plain delete.
func (s *DepartmentService) GetDependents(ctx context.Context, id int64) (programs, courses int, err error) {
	if _, err := s.GetDepartmentByID(ctx, id); err != nil {
		return 0, 0, err
	}

	return s.departmentRepo.CountActiveDependents(ctx, id)
}

// DeleteDepartment soft-deletes a department. A plain delete is rejected while
// active programs or courses depend on it; a force delete deactivates the
// dependents and detaches the department's users in the same transaction.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64, force bool) error {
	if _, err := s.GetDepartmentByID(ctx, id); err != nil {
		return err
	}

	programs, courses, err := s.departmentRepo.CountActiveDependents(ctx, id)
	if err != nil {
		return fmt.Errorf("error counting department dependents: %w", err)
	}

	if !force {
		if programs > 0 || courses > 0 {
			return apperrors.NewCustomError(apperrors.ErrDepartmentHasDependents,
				"department has active dependents; use force to cascade").
				WithDetails(map[string]interface{}{
					"activePrograms": programs,
					"activeCourses":  courses,
				})
		}

		return s.departmentRepo.Deactivate(ctx, id)
	}

	if err := s.departmentRepo.DeactivateCascade(ctx, id); err != nil {
		return fmt.Errorf("error force deleting department: %w", err)
	}

	logger.Warn().Int64("departmentId", id).
		Int("programs", programs).Int("courses", courses).
		Msg("Department force deleted with cascade")
	return nil
}
