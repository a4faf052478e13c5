package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/apperrors"
)

type allocationFixture struct {
	service     *AllocationService
	assignments *fakeAssignmentStore
	allocations *fakeAllocationStore
	programs    *fakeProgramStore
	courses     *fakeCourseStore
	users       *fakeUserStore
	notifier    *fakeNotifier
}

func newAllocationFixture() *allocationFixture {
	assignments := newFakeAssignmentStore()
	allocations := newFakeAllocationStore()
	programs := newFakeProgramStore()
	courses := newFakeCourseStore()
	users := newFakeUserStore()
	notifier := &fakeNotifier{}

	programs.add(&models.Program{ID: 1, Name: "Computer Science", Code: "BSC-CS", DepartmentID: 1, IsActive: true})
	users.add(&models.User{ID: 10, Name: "Dr. Karaca", Email: "karaca@uni.edu", Role: models.RoleLecturer, IsActive: true})
	users.add(&models.User{ID: 20, Name: "Ali Student", Email: "ali@uni.edu", Role: models.RoleStudent, IsActive: true})
	courses.add(&models.Course{ID: 100, Name: "Algorithms", Code: "CS201", Credits: 6, DepartmentID: 1, SemesterID: 1, MaxCapacity: 30, IsActive: true})

	return &allocationFixture{
		service:     NewAllocationService(assignments, allocations, programs, courses, users, notifier),
		assignments: assignments,
		allocations: allocations,
		programs:    programs,
		courses:     courses,
		users:       users,
		notifier:    notifier,
	}
}

func TestAssignLecturer(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new assignment", func(t *testing.T) {
		f := newAllocationFixture()

		result, err := f.service.AssignLecturer(ctx, 1, 10, "coordinator", nil)
		require.NoError(t, err)
		assert.False(t, result.Reactivated)
		assert.True(t, result.Assignment.IsActive)
		assert.Equal(t, "coordinator", result.Assignment.Role)
		assert.Equal(t, []string{EventLecturerAssigned}, f.notifier.eventTypes())
	})

	t.Run("rejects active duplicate", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AssignLecturer(ctx, 1, 10, "lecturer", nil)
		require.NoError(t, err)

		_, err = f.service.AssignLecturer(ctx, 1, 10, "coordinator", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyAssigned)

		details := apperrors.ErrorDetails(err)
		require.NotNil(t, details)
		assert.Equal(t, int64(1), details["programId"])
		assert.Equal(t, int64(10), details["lecturerId"])
	})

	t.Run("reactivates removed assignment with new role", func(t *testing.T) {
		f := newAllocationFixture()

		first, err := f.service.AssignLecturer(ctx, 1, 10, "lecturer", nil)
		require.NoError(t, err)
		require.NoError(t, f.service.RemoveAssignment(ctx, 1, first.Assignment.ID))

		second, err := f.service.AssignLecturer(ctx, 1, 10, "advisor", nil)
		require.NoError(t, err)
		assert.True(t, second.Reactivated)
		assert.Equal(t, first.Assignment.ID, second.Assignment.ID, "must reuse the soft-deleted row")
		assert.Equal(t, "advisor", second.Assignment.Role)
		assert.True(t, second.Assignment.IsActive)

		// Only one row exists for the pair regardless of how often it cycles.
		assert.Len(t, f.assignments.assignments, 1)
	})

	t.Run("rejects non-lecturer user", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AssignLecturer(ctx, 1, 20, "lecturer", nil)
		assert.ErrorIs(t, err, apperrors.ErrNotALecturer)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AssignLecturer(ctx, 1, 10, "dean", nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects inactive program", func(t *testing.T) {
		f := newAllocationFixture()
		f.programs.programs[1].IsActive = false

		_, err := f.service.AssignLecturer(ctx, 1, 10, "lecturer", nil)
		assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
	})
}

func TestRemoveAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-deletes and keeps the row", func(t *testing.T) {
		f := newAllocationFixture()

		result, err := f.service.AssignLecturer(ctx, 1, 10, "lecturer", nil)
		require.NoError(t, err)

		require.NoError(t, f.service.RemoveAssignment(ctx, 1, result.Assignment.ID))

		stored := f.assignments.assignments[result.Assignment.ID]
		require.NotNil(t, stored)
		assert.False(t, stored.IsActive)

		active, err := f.service.GetAssignments(ctx, 1, true)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("missing assignment", func(t *testing.T) {
		f := newAllocationFixture()

		err := f.service.RemoveAssignment(ctx, 1, 999)
		assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	})
}

func TestAllocateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("creates new allocation", func(t *testing.T) {
		f := newAllocationFixture()

		result, err := f.service.AllocateCourse(ctx, 1, 100, true, 3, nil)
		require.NoError(t, err)
		assert.False(t, result.Reactivated)
		assert.True(t, result.Allocation.IsRequired)
		assert.Equal(t, 3, result.Allocation.SemesterOrder)
	})

	t.Run("rejects active duplicate", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AllocateCourse(ctx, 1, 100, true, 1, nil)
		require.NoError(t, err)

		_, err = f.service.AllocateCourse(ctx, 1, 100, false, 2, nil)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyAllocated)
	})

	t.Run("reactivates removed allocation with new attributes", func(t *testing.T) {
		f := newAllocationFixture()

		first, err := f.service.AllocateCourse(ctx, 1, 100, true, 1, nil)
		require.NoError(t, err)
		require.NoError(t, f.service.RemoveAllocation(ctx, 1, first.Allocation.ID))

		second, err := f.service.AllocateCourse(ctx, 1, 100, false, 4, nil)
		require.NoError(t, err)
		assert.True(t, second.Reactivated)
		assert.Equal(t, first.Allocation.ID, second.Allocation.ID, "must reuse the soft-deleted row")
		assert.False(t, second.Allocation.IsRequired)
		assert.Equal(t, 4, second.Allocation.SemesterOrder)

		assert.Len(t, f.allocations.allocations, 1)
	})

	t.Run("rejects inactive course", func(t *testing.T) {
		f := newAllocationFixture()
		f.courses.courses[100].IsActive = false

		_, err := f.service.AllocateCourse(ctx, 1, 100, true, 1, nil)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("rejects non-positive semester order", func(t *testing.T) {
		f := newAllocationFixture()

		_, err := f.service.AllocateCourse(ctx, 1, 100, true, 0, nil)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestUpdateAssignment(t *testing.T) {
	ctx := context.Background()
	f := newAllocationFixture()

	result, err := f.service.AssignLecturer(ctx, 1, 10, "lecturer", nil)
	require.NoError(t, err)

	updated, err := f.service.UpdateAssignment(ctx, 1, result.Assignment.ID, "coordinator")
	require.NoError(t, err)
	assert.Equal(t, "coordinator", updated.Role)

	_, err = f.service.UpdateAssignment(ctx, 1, result.Assignment.ID, "provost")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
