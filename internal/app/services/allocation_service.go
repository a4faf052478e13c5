package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ozan/academix/internal/app/allocation"
	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/pkg/apperrors"
	"github.com/ozan/academix/internal/pkg/dberrors"
	"github.com/ozan/academix/internal/pkg/logger"
	"github.com/ozan/academix/internal/pkg/validation"
)

// AssignmentResult reports the applied assignment and whether an inactive row
// was reactivated instead of a new one created.
type AssignmentResult struct {
	Assignment  *models.ProgramLecturer
	Reactivated bool
}

// AllocationResult reports the applied allocation and whether an inactive row
// was reactivated instead of a new one created.
type AllocationResult struct {
	Allocation  *models.ProgramCourse
	Reactivated bool
}

// AllocationService handles lecturer-program assignments and course-program
// allocations. Both follow the same rule: the pair is unique across active and
// inactive rows, an active duplicate is a conflict, and an inactive row is
// reactivated with refreshed attributes rather than duplicated.
type AllocationService struct {
	assignmentRepo lecturerAssignmentStore
	allocationRepo courseAllocationStore
	programRepo    programStore
	courseRepo     courseStore
	userRepo       userStore
	notifier       Notifier
}

// NewAllocationService creates a new allocation service instance
func NewAllocationService(
	assignmentRepo lecturerAssignmentStore,
	allocationRepo courseAllocationStore,
	programRepo programStore,
	courseRepo courseStore,
	userRepo userStore,
	notifier Notifier,
) *AllocationService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &AllocationService{
		assignmentRepo: assignmentRepo,
		allocationRepo: allocationRepo,
		programRepo:    programRepo,
		courseRepo:     courseRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

func (s *AllocationService) getActiveProgram(ctx context.Context, programID int64) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repositories.ErrProgramNotFound) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error checking program: %w", err)
	}
	if !program.IsActive {
		return nil, apperrors.ErrProgramNotFound
	}
	return program, nil
}

// AssignLecturer links a lecturer to a program. An active duplicate is a
// conflict; an inactive row is reactivated with the requested role and fresh
// audit fields.
func (s *AllocationService) AssignLecturer(ctx context.Context, programID, lecturerID int64, role string, assignedByID *int64) (*AssignmentResult, error) {
	if !validation.IsValidAssignmentRole(role) {
		return nil, apperrors.NewBadRequestError("assignment role must be lecturer, coordinator or advisor")
	}

	if _, err := s.getActiveProgram(ctx, programID); err != nil {
		return nil, err
	}

	lecturer, err := s.userRepo.GetByID(ctx, lecturerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error checking lecturer: %w", err)
	}
	if lecturer.Role != models.RoleLecturer {
		return nil, apperrors.ErrNotALecturer
	}

	existing, err := s.assignmentRepo.GetByProgramAndLecturer(ctx, programID, lecturerID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing assignment: %w", err)
	}

	switch decision := allocation.DecideLecturerAssignment(existing); decision.Outcome {
	case allocation.Reject:
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyAssigned,
			"lecturer is already assigned to this program").
			WithDetails(map[string]interface{}{
				"programId":  programID,
				"lecturerId": lecturerID,
				"role":       existing.Role,
			})

	case allocation.Reactivate:
		if err := s.assignmentRepo.Reactivate(ctx, existing.ID, role, assignedByID); err != nil {
			return nil, fmt.Errorf("error reactivating assignment: %w", err)
		}
		assignment, err := s.assignmentRepo.GetByID(ctx, programID, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("error reloading assignment: %w", err)
		}

		logger.Info().Int64("programId", programID).Int64("lecturerId", lecturerID).
			Str("role", role).Msg("Lecturer assignment reactivated")
		s.publishAssigned(assignment)
		return &AssignmentResult{Assignment: assignment, Reactivated: true}, nil

	default:
		assignment := &models.ProgramLecturer{
			ProgramID:    programID,
			LecturerID:   lecturerID,
			Role:         role,
			AssignedByID: assignedByID,
			IsActive:     true,
		}
		if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
			// Lost a race with a concurrent assignment of the same pair.
			if dberrors.IsDuplicateConstraintError(err, "uq_program_lecturers_pair") {
				return nil, apperrors.ErrAlreadyAssigned
			}
			return nil, fmt.Errorf("error creating assignment: %w", err)
		}

		logger.Info().Int64("programId", programID).Int64("lecturerId", lecturerID).
			Str("role", role).Msg("Lecturer assigned to program")
		s.publishAssigned(assignment)
		return &AssignmentResult{Assignment: assignment}, nil
	}
}

func (s *AllocationService) publishAssigned(assignment *models.ProgramLecturer) {
	s.notifier.Publish(Event{
		Type: EventLecturerAssigned,
		Payload: map[string]interface{}{
			"programId":  assignment.ProgramID,
			"lecturerId": assignment.LecturerID,
			"role":       assignment.Role,
		},
	})
}

// GetAssignments lists a program's lecturer assignments
func (s *AllocationService) GetAssignments(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramLecturer, error) {
	if _, err := s.getActiveProgram(ctx, programID); err != nil {
		return nil, err
	}

	return s.assignmentRepo.ListByProgram(ctx, programID, activeOnly)
}

// GetLecturerAssignments lists the programs a lecturer is actively assigned to
func (s *AllocationService) GetLecturerAssignments(ctx context.Context, lecturerID int64) ([]*models.ProgramLecturer, error) {
	return s.assignmentRepo.ListByLecturer(ctx, lecturerID)
}

// UpdateAssignment changes an assignment's role
func (s *AllocationService) UpdateAssignment(ctx context.Context, programID, assignmentID int64, role string) (*models.ProgramLecturer, error) {
	if !validation.IsValidAssignmentRole(role) {
		return nil, apperrors.NewBadRequestError("assignment role must be lecturer, coordinator or advisor")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, programID, assignmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	assignment.Role = role
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error updating assignment: %w", err)
	}

	return assignment, nil
}

// RemoveAssignment soft-deletes an assignment. The row stays behind so a later
// assignment of the same pair reactivates it.
func (s *AllocationService) RemoveAssignment(ctx context.Context, programID, assignmentID int64) error {
	assignment, err := s.assignmentRepo.GetByID(ctx, programID, assignmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error retrieving assignment: %w", err)
	}

	if err := s.assignmentRepo.Deactivate(ctx, programID, assignmentID); err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error removing assignment: %w", err)
	}

	s.notifier.Publish(Event{
		Type: EventLecturerRemoved,
		Payload: map[string]interface{}{
			"programId":  programID,
			"lecturerId": assignment.LecturerID,
		},
	})
	return nil
}

// AllocateCourse links a course into a program's curriculum. An active
// duplicate is a conflict; an inactive row is reactivated with the requested
// curriculum attributes and fresh audit fields.
func (s *AllocationService) AllocateCourse(ctx context.Context, programID, courseID int64, isRequired bool, semesterOrder int, allocatedByID *int64) (*AllocationResult, error) {
	if semesterOrder <= 0 {
		return nil, apperrors.NewBadRequestError("semester order must be positive")
	}

	if _, err := s.getActiveProgram(ctx, programID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error checking course: %w", err)
	}
	if !course.IsActive {
		return nil, apperrors.ErrCourseNotFound
	}

	existing, err := s.allocationRepo.GetByProgramAndCourse(ctx, programID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing allocation: %w", err)
	}

	switch decision := allocation.DecideCourseAllocation(existing); decision.Outcome {
	case allocation.Reject:
		return nil, apperrors.NewCustomError(apperrors.ErrAlreadyAllocated,
			"course is already allocated to this program").
			WithDetails(map[string]interface{}{
				"programId": programID,
				"courseId":  courseID,
			})

	case allocation.Reactivate:
		if err := s.allocationRepo.Reactivate(ctx, existing.ID, isRequired, semesterOrder, allocatedByID); err != nil {
			return nil, fmt.Errorf("error reactivating allocation: %w", err)
		}
		alloc, err := s.allocationRepo.GetByID(ctx, programID, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("error reloading allocation: %w", err)
		}

		logger.Info().Int64("programId", programID).Int64("courseId", courseID).
			Msg("Course allocation reactivated")
		s.publishAllocated(alloc)
		return &AllocationResult{Allocation: alloc, Reactivated: true}, nil

	default:
		alloc := &models.ProgramCourse{
			ProgramID:     programID,
			CourseID:      courseID,
			IsRequired:    isRequired,
			SemesterOrder: semesterOrder,
			AllocatedByID: allocatedByID,
			IsActive:      true,
		}
		if err := s.allocationRepo.Create(ctx, alloc); err != nil {
			// Lost a race with a concurrent allocation of the same pair.
			if dberrors.IsDuplicateConstraintError(err, "uq_program_courses_pair") {
				return nil, apperrors.ErrAlreadyAllocated
			}
			return nil, fmt.Errorf("error creating allocation: %w", err)
		}

		logger.Info().Int64("programId", programID).Int64("courseId", courseID).
			Msg("Course allocated to program")
		s.publishAllocated(alloc)
		return &AllocationResult{Allocation: alloc}, nil
	}
}

func (s *AllocationService) publishAllocated(alloc *models.ProgramCourse) {
	s.notifier.Publish(Event{
		Type: EventCourseAllocated,
		Payload: map[string]interface{}{
			"programId": alloc.ProgramID,
			"courseId":  alloc.CourseID,
		},
	})
}

// GetAllocations lists a program's course allocations in curriculum order
func (s *AllocationService) GetAllocations(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramCourse, error) {
	if _, err := s.getActiveProgram(ctx, programID); err != nil {
		return nil, err
	}

	return s.allocationRepo.ListByProgram(ctx, programID, activeOnly)
}

// UpdateAllocation changes an allocation's curriculum attributes
func (s *AllocationService) UpdateAllocation(ctx context.Context, programID, allocationID int64, isRequired bool, semesterOrder int) (*models.ProgramCourse, error) {
	if semesterOrder <= 0 {
		return nil, apperrors.NewBadRequestError("semester order must be positive")
	}

	alloc, err := s.allocationRepo.GetByID(ctx, programID, allocationID)
	if err != nil {
		if errors.Is(err, repositories.ErrAllocationNotFound) {
			return nil, apperrors.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("error retrieving allocation: %w", err)
	}

	alloc.IsRequired = isRequired
	alloc.SemesterOrder = semesterOrder
	if err := s.allocationRepo.Update(ctx, alloc); err != nil {
		return nil, fmt.Errorf("error updating allocation: %w", err)
	}

	return alloc, nil
}

// RemoveAllocation soft-deletes an allocation. The row stays behind so a later
// allocation of the same pair reactivates it.
func (s *AllocationService) RemoveAllocation(ctx context.Context, programID, allocationID int64) error {
	alloc, err := s.allocationRepo.GetByID(ctx, programID, allocationID)
	if err != nil {
		if errors.Is(err, repositories.ErrAllocationNotFound) {
			return apperrors.ErrAllocationNotFound
		}
		return fmt.Errorf("error retrieving allocation: %w", err)
	}

	if err := s.allocationRepo.Deactivate(ctx, programID, allocationID); err != nil {
		if errors.Is(err, repositories.ErrAllocationNotFound) {
			return apperrors.ErrAllocationNotFound
		}
		return fmt.Errorf("error removing allocation: %w", err)
	}

	s.notifier.Publish(Event{
		Type: EventCourseRemoved,
		Payload: map[string]interface{}{
			"programId": programID,
			"courseId":  alloc.CourseID,
		},
	})
	return nil
}
