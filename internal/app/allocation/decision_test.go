package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ozan/academix/internal/app/models"
)

func TestDecideLecturerAssignment(t *testing.T) {
	tests := []struct {
		name     string
		existing *models.ProgramLecturer
		want     Decision
	}{
		{
			name:     "no existing row",
			existing: nil,
			want:     Decision{Outcome: Allow},
		},
		{
			name:     "active assignment",
			existing: &models.ProgramLecturer{ProgramID: 1, LecturerID: 2, IsActive: true},
			want:     Decision{Outcome: Reject, Reason: ReasonAlreadyAssigned},
		},
		{
			name:     "inactive assignment",
			existing: &models.ProgramLecturer{ProgramID: 1, LecturerID: 2, IsActive: false},
			want:     Decision{Outcome: Reactivate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideLecturerAssignment(tt.existing))
		})
	}
}

func TestDecideCourseAllocation(t *testing.T) {
	tests := []struct {
		name     string
		existing *models.ProgramCourse
		want     Decision
	}{
		{
			name:     "no existing row",
			existing: nil,
			want:     Decision{Outcome: Allow},
		},
		{
			name:     "active allocation",
			existing: &models.ProgramCourse{ProgramID: 1, CourseID: 3, IsActive: true},
			want:     Decision{Outcome: Reject, Reason: ReasonAlreadyAllocated},
		},
		{
			name:     "inactive allocation",
			existing: &models.ProgramCourse{ProgramID: 1, CourseID: 3, IsActive: false},
			want:     Decision{Outcome: Reactivate},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideCourseAllocation(tt.existing))
		})
	}
}

func TestDecideEnrollment(t *testing.T) {
	enrolled := &models.Enrollment{StudentID: 7, CourseID: 3, Status: models.EnrollmentEnrolled}

	tests := []struct {
		name          string
		existing      *models.Enrollment
		capacity      int
		enrolledCount int
		want          Decision
	}{
		{
			name:          "open seat",
			capacity:      30,
			enrolledCount: 0,
			want:          Decision{Outcome: Allow},
		},
		{
			name:          "one seat left",
			capacity:      2,
			enrolledCount: 1,
			want:          Decision{Outcome: Allow},
		},
		{
			name:          "exactly at capacity",
			capacity:      2,
			enrolledCount: 2,
			want:          Decision{Outcome: Reject, Reason: ReasonCourseFull},
		},
		{
			name:          "over capacity",
			capacity:      2,
			enrolledCount: 3,
			want:          Decision{Outcome: Reject, Reason: ReasonCourseFull},
		},
		{
			name:          "already enrolled",
			existing:      enrolled,
			capacity:      30,
			enrolledCount: 1,
			want:          Decision{Outcome: Reject, Reason: ReasonAlreadyEnrolled},
		},
		{
			name:          "already enrolled wins over full course",
			existing:      enrolled,
			capacity:      1,
			enrolledCount: 1,
			want:          Decision{Outcome: Reject, Reason: ReasonAlreadyEnrolled},
		},
		{
			name:          "dropped row does not block",
			existing:      &models.Enrollment{StudentID: 7, CourseID: 3, Status: models.EnrollmentDropped},
			capacity:      30,
			enrolledCount: 0,
			want:          Decision{Outcome: Allow},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideEnrollment(tt.existing, tt.capacity, tt.enrolledCount))
		})
	}
}
