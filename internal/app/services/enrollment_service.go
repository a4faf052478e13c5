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
)

// EnrollmentService handles student enrollment into courses. Enrollment is
// guarded by two rules evaluated together: a student holds at most one
// enrolled-status row per course, and a course never exceeds its capacity,
// counted from enrolled rows only.
type EnrollmentService struct {
	enrollmentRepo enrollmentStore
	courseRepo     courseStore
	programRepo    programStore
	userRepo       userStore
	notifier       Notifier
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo enrollmentStore,
	courseRepo courseStore,
	programRepo programStore,
	userRepo userStore,
	notifier Notifier,
) *EnrollmentService {
	if notifier == nil {
		notifier = NewNoopNotifier()
	}
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		programRepo:    programRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Enroll enrolls a student in a course under a program. A previous dropped or
// completed row for the same pair does not block; a fresh row is created.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID, programID int64) (*models.Enrollment, error) {
	student, err := s.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error checking student: %w", err)
	}
	if student.Role != models.RoleStudent {
		return nil, apperrors.ErrNotAStudent
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

	existing, err := s.enrollmentRepo.GetEnrolledByStudentAndCourse(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing enrollment: %w", err)
	}

	enrolledCount, err := s.enrollmentRepo.CountEnrolledByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error counting course enrollments: %w", err)
	}

	if decision := allocation.DecideEnrollment(existing, course.MaxCapacity, enrolledCount); decision.Outcome == allocation.Reject {
		switch decision.Reason {
		case allocation.ReasonAlreadyEnrolled:
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyEnrolled,
				"student is already enrolled in this course").
				WithDetails(map[string]interface{}{
					"studentId": studentID,
					"courseId":  courseID,
				})
		default:
			return nil, apperrors.NewCustomError(apperrors.ErrCourseFull,
				"course is at full capacity").
				WithDetails(map[string]interface{}{
					"courseId":      courseID,
					"maxCapacity":   course.MaxCapacity,
					"enrolledCount": enrolledCount,
				})
		}
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		ProgramID: programID,
		Status:    models.EnrollmentEnrolled,
		IsActive:  true,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		// Lost a race with a concurrent enrollment of the same pair.
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		// One of the referenced rows was deleted between validation and insert.
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.NewResourceNotFoundError("referenced student, course, or program no longer exists")
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	logger.Info().Int64("studentId", studentID).Int64("courseId", courseID).
		Int("enrolledCount", enrolledCount+1).Int("maxCapacity", course.MaxCapacity).
		Msg("Student enrolled in course")
	s.notifier.Publish(Event{
		Type: EventEnrollmentCreated,
		Payload: map[string]interface{}{
			"studentId": studentID,
			"courseId":  courseID,
			"programId": programID,
		},
	})
	return enrollment, nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// GetStudentEnrollments lists a student's enrollments, optionally restricted
// to one semester.
func (s *EnrollmentService) GetStudentEnrollments(ctx context.Context, studentID int64, semesterID *int64) ([]*models.Enrollment, error) {
	return s.enrollmentRepo.ListByStudent(ctx, studentID, semesterID)
}

// GetCourseEnrollments lists a course's enrollments with student details
func (s *EnrollmentService) GetCourseEnrollments(ctx context.Context, courseID int64, enrolledOnly bool) ([]*models.Enrollment, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repositories.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error checking course: %w", err)
	}

	return s.enrollmentRepo.ListByCourse(ctx, courseID, enrolledOnly)
}

// UpdateStatus moves an enrollment to a new status. Only enrolled rows may
// change status; completed and dropped are terminal.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) (*models.Enrollment, error) {
	enrollment, err := s.GetEnrollmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !enrollment.Status.CanTransitionTo(status) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatusChange,
			fmt.Sprintf("cannot change enrollment status from %s to %s", enrollment.Status, status)).
			WithDetails(map[string]interface{}{
				"enrollmentId": id,
				"from":         string(enrollment.Status),
				"to":           string(status),
			})
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, status, finalGrade); err != nil {
		if errors.Is(err, repositories.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error updating enrollment status: %w", err)
	}

	enrollment.Status = status
	enrollment.IsActive = status == models.EnrollmentEnrolled
	if finalGrade != nil {
		enrollment.FinalGrade = finalGrade
	}

	logger.Info().Int64("enrollmentId", id).Str("status", string(status)).
		Msg("Enrollment status updated")
	s.notifier.Publish(Event{
		Type: EventEnrollmentUpdated,
		Payload: map[string]interface{}{
			"enrollmentId": id,
			"status":       string(status),
		},
	})
	return enrollment, nil
}

// Drop moves a student's own enrollment to dropped. Students may only drop
// their own rows; admins skip the ownership check.
func (s *EnrollmentService) Drop(ctx context.Context, id, requesterID int64, requesterRole models.Role) (*models.Enrollment, error) {
	enrollment, err := s.GetEnrollmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if requesterRole != models.RoleAdmin && enrollment.StudentID != requesterID {
		return nil, apperrors.NewForbiddenError("cannot drop another student's enrollment")
	}

	return s.UpdateStatus(ctx, id, models.EnrollmentDropped, nil)
}
