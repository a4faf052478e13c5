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
)

// SemesterService handles academic term operations
type SemesterService struct {
	semesterRepo semesterStore
	notifier     Notifier
}

// NewSemesterService creates a new semester service instance
func NewSemesterService(semesterRepo semesterStore, notifier Notifier) *SemesterService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &SemesterService{
		semesterRepo: semesterRepo,
		notifier:     notifier,
	}
}

// validateSemester checks the term and registration windows
func (s *SemesterService) validateSemester(semester *models.Semester) error {
	if _, ok := models.ParseSemesterType(string(semester.SemesterType)); !ok {
		return apperrors.NewBadRequestError("invalid semester type")
	}
	if !semester.EndDate.After(semester.StartDate) {
		return apperrors.NewBadRequestError("semester end date must be after start date")
	}
	if !semester.RegistrationEnd.After(semester.RegistrationStart) {
		return apperrors.NewBadRequestError("registration end must be after registration start")
	}
	return nil
}

// CreateSemester creates a new semester. When flagged as current it also takes
// over the current flag from any other semester.
func (s *SemesterService) CreateSemester(ctx context.Context, semester *models.Semester) error {
	if err := s.validateSemester(semester); err != nil {
		return err
	}

	makeCurrent := semester.IsCurrent
	semester.IsCurrent = false
	semester.IsActive = true
	if err := s.semesterRepo.Create(ctx, semester); err != nil {
		return fmt.Errorf("error creating semester: %w", err)
	}

	if makeCurrent {
		return s.SetCurrentSemester(ctx, semester.ID)
	}

	return nil
}

// GetSemesterByID retrieves a semester by ID
func (s *SemesterService) GetSemesterByID(ctx context.Context, id int64) (*models.Semester, error) {
	semester, err := s.semesterRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSemesterNotFound) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return semester, nil
}

// GetAllSemesters retrieves semesters, newest first
func (s *SemesterService) GetAllSemesters(ctx context.Context, limit int) ([]*models.Semester, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	semesters, err := s.semesterRepo.GetAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving semesters: %w", err)
	}

	return semesters, nil
}

// GetCurrentSemester retrieves the current semester, falling back to the
// newest one when none is flagged.
func (s *SemesterService) GetCurrentSemester(ctx context.Context) (*models.Semester, error) {
	semester, err := s.semesterRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrSemesterNotFound) {
			return nil, apperrors.ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving current semester: %w", err)
	}

	return semester, nil
}

// SetCurrentSemester flags a semester as current. The repository clears the
// flag on every other row in the same transaction.
func (s *SemesterService) SetCurrentSemester(ctx context.Context, id int64) error {
	if err := s.semesterRepo.SetCurrent(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSemesterNotFound) {
			return apperrors.ErrSemesterNotFound
		}
		// Two admins flipping the flag at once race on the partial index.
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("another semester was marked current concurrently")
		}
		return fmt.Errorf("error setting current semester: %w", err)
	}

	logger.Info().Int64("semesterId", id).Msg("Current semester changed")
	s.notifier.Publish(Event{
		Type:    EventSemesterChanged,
		Payload: map[string]interface{}{"semesterId": id},
	})
	return nil
}

// UpdateSemester updates an existing semester
func (s *SemesterService) UpdateSemester(ctx context.Context, semester *models.Semester) error {
	if err := s.validateSemester(semester); err != nil {
		return err
	}

	if err := s.semesterRepo.Update(ctx, semester); err != nil {
		if errors.Is(err, repositories.ErrSemesterNotFound) {
			return apperrors.ErrSemesterNotFound
		}
		return fmt.Errorf("error updating semester: %w", err)
	}

	return nil
}
