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

// ProgramService handles academic program operations
type ProgramService struct {
	programRepo    programStore
	departmentRepo departmentStore
}

// NewProgramService creates a new program service instance
func NewProgramService(programRepo programStore, departmentRepo departmentStore) *ProgramService {
	return &ProgramService{
		programRepo:    programRepo,
		departmentRepo: departmentRepo,
	}
}

// validateProgram normalizes and validates program data. The code check is
// scoped to active programs.
func (s *ProgramService) validateProgram(ctx context.Context, program *models.Program) error {
	program.Code = validation.NormalizeCode(program.Code)
	if !validation.IsValidCode(program.Code) {
		return apperrors.NewBadRequestError("program code must be uppercase alphanumeric")
	}

	if _, ok := models.ParseProgramType(string(program.ProgramType)); !ok {
		return apperrors.NewBadRequestError("invalid program type")
	}

	exists, err := s.programRepo.CodeExistsActive(ctx, program.Code, program.ID)
	if err != nil {
		return fmt.Errorf("error checking program code: %w", err)
	}
	if exists {
		return apperrors.ErrProgramCodeExists
	}

	return nil
}

// CreateProgram creates a new program under an existing active department
func (s *ProgramService) CreateProgram(ctx context.Context, program *models.Program) error {
	if err := s.validateProgram(ctx, program); err != nil {
		return err
	}

	department, err := s.departmentRepo.GetByID(ctx, program.DepartmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrDepartmentNotFound) {
			return apperrors.ErrDepartmentNotFound
		}
		return fmt.Errorf("error checking department: %w", err)
	}
	if !department.IsActive {
		return apperrors.ErrDepartmentNotFound
	}

	program.IsActive = true
	if err := s.programRepo.Create(ctx, program); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramCodeExists
		}
		return fmt.Errorf("error creating program: %w", err)
	}

	logger.Info().Int64("programId", program.ID).Str("code", program.Code).Msg("Program created")
	return nil
}

// GetProgramByID retrieves a program by ID
func (s *ProgramService) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return program, nil
}

// GetAllPrograms retrieves programs, optionally filtered by department
func (s *ProgramService) GetAllPrograms(ctx context.Context, departmentID *int64, activeOnly bool) ([]*models.Program, error) {
	programs, err := s.programRepo.GetAll(ctx, departmentID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("error retrieving programs: %w", err)
	}

	return programs, nil
}

// UpdateProgram updates an existing program
func (s *ProgramService) UpdateProgram(ctx context.Context, program *models.Program) error {
	existing, err := s.GetProgramByID(ctx, program.ID)
	if err != nil {
		return err
	}
	// The owning department is fixed at creation.
	program.DepartmentID = existing.DepartmentID

	if err := s.validateProgram(ctx, program); err != nil {
		return err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return apperrors.ErrProgramNotFound
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrProgramCodeExists
		}
		return fmt.Errorf("error updating program: %w", err)
	}

	return nil
}

// CountActiveEnrollments reports the enrolled rows that block a plain delete.
func (s *ProgramService) CountActiveEnrollments(ctx context.Context, id int64) (int, error) {
	if _, err := s.GetProgramByID(ctx, id); err != nil {
		return 0, err
	}

	return s.programRepo.CountActiveEnrollments(ctx, id)
}

// DeleteProgram soft-deletes a program. A plain delete is rejected while
// active enrollments reference it; a force delete drops the enrollments and
// deactivates the program in the same transaction.
func (s *ProgramService) DeleteProgram(ctx context.Context, id int64, force bool) error {
	if _, err := s.GetProgramByID(ctx, id); err != nil {
		return err
	}

	enrollments, err := s.programRepo.CountActiveEnrollments(ctx, id)
	if err != nil {
		return fmt.Errorf("error counting program enrollments: %w", err)
	}

	if !force {
		if enrollments > 0 {
			return apperrors.NewCustomError(apperrors.ErrProgramHasEnrollments,
				"program has active enrollments; use force to drop them").
				WithDetails(map[string]interface{}{
					"activeEnrollments": enrollments,
				})
		}

		return s.programRepo.Deactivate(ctx, id)
	}

	if err := s.programRepo.DeactivateWithEnrollments(ctx, id); err != nil {
		return fmt.Errorf("error force deleting program: %w", err)
	}

	logger.Warn().Int64("programId", id).Int("droppedEnrollments", enrollments).
		Msg("Program force deleted, enrollments dropped")
	return nil
}
