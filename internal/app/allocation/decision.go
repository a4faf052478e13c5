// Package allocation holds the pure decision logic for linking students to
// courses, lecturers to programs, and courses to programs. It performs no I/O
// and never fails for business conditions: every call returns a Decision the
// service layer applies or converts into a typed conflict error.
package allocation

import (
	"github.com/ozan/academix/internal/app/models"
)

// Outcome is the action the caller should take for a proposed link.
type Outcome string

const (
	// Allow means no link exists; create a new row.
	Allow Outcome = "allow"
	// Reactivate means an inactive link exists; flip it active and refresh
	// its mutable attributes from the request.
	Reactivate Outcome = "reactivate"
	// Reject means the link must not be created; Reason says why.
	Reject Outcome = "reject"
)

// Reason is the typed rejection cause carried by a Reject decision.
type Reason string

const (
	ReasonAlreadyAssigned  Reason = "already_assigned"
	ReasonAlreadyAllocated Reason = "already_allocated"
	ReasonAlreadyEnrolled  Reason = "already_enrolled"
	ReasonCourseFull       Reason = "course_full"
)

// Decision is the result of evaluating a proposed link against current state.
type Decision struct {
	Outcome Outcome
	Reason  Reason // Set only when Outcome is Reject
}

func allow() Decision          { return Decision{Outcome: Allow} }
func reactivate() Decision     { return Decision{Outcome: Reactivate} }
func reject(r Reason) Decision { return Decision{Outcome: Reject, Reason: r} }

// DecideLecturerAssignment evaluates assigning a lecturer to a program given
// the existing (program, lecturer) row, if any, including inactive ones.
func DecideLecturerAssignment(existing *models.ProgramLecturer) Decision {
	switch {
	case existing == nil:
		return allow()
	case existing.IsActive:
		return reject(ReasonAlreadyAssigned)
	default:
		return reactivate()
	}
}

// DecideCourseAllocation evaluates allocating a course to a program given the
// existing (program, course) row, if any, including inactive ones.
func DecideCourseAllocation(existing *models.ProgramCourse) Decision {
	switch {
	case existing == nil:
		return allow()
	case existing.IsActive:
		return reject(ReasonAlreadyAllocated)
	default:
		return reactivate()
	}
}

// DecideEnrollment evaluates enrolling a student in a course. existing is the
// student's current enrolled-status row for the course, if any; dropped or
// completed rows do not block a new enrollment and are not passed here.
// Capacity is inclusive: a course with enrolledCount == capacity is full.
func DecideEnrollment(existing *models.Enrollment, capacity, enrolledCount int) Decision {
	if existing != nil && existing.Status == models.EnrollmentEnrolled {
		return reject(ReasonAlreadyEnrolled)
	}
	if enrolledCount >= capacity {
		return reject(ReasonCourseFull)
	}
	return allow()
}
