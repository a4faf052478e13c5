package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/apperrors"
)

type departmentFixture struct {
	service     *DepartmentService
	departments *fakeDepartmentStore
	programs    *fakeProgramStore
	courses     *fakeCourseStore
	users       *fakeUserStore
}

func newDepartmentFixture() *departmentFixture {
	departments := newFakeDepartmentStore()
	programs := newFakeProgramStore()
	courses := newFakeCourseStore()
	users := newFakeUserStore()
	departments.programs = programs
	departments.courses = courses
	departments.users = users

	return &departmentFixture{
		service:     NewDepartmentService(departments, users),
		departments: departments,
		programs:    programs,
		courses:     courses,
		users:       users,
	}
}

func TestCreateDepartment(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and stores the code", func(t *testing.T) {
		f := newDepartmentFixture()

		department := &models.Department{Name: "Computer Engineering", Code: "  ceng  "}
		require.NoError(t, f.service.CreateDepartment(ctx, department))
		assert.Equal(t, "CENG", department.Code)
		assert.True(t, department.IsActive)
	})

	t.Run("rejects duplicate active code", func(t *testing.T) {
		f := newDepartmentFixture()

		require.NoError(t, f.service.CreateDepartment(ctx, &models.Department{Name: "First", Code: "CENG"}))
		err := f.service.CreateDepartment(ctx, &models.Department{Name: "Second", Code: "ceng"})
		assert.ErrorIs(t, err, apperrors.ErrDepartmentCodeExists)
	})

	t.Run("allows reusing a soft-deleted department's code", func(t *testing.T) {
		f := newDepartmentFixture()

		first := &models.Department{Name: "Old Dept", Code: "CENG"}
		require.NoError(t, f.service.CreateDepartment(ctx, first))
		require.NoError(t, f.service.DeleteDepartment(ctx, first.ID, false))

		second := &models.Department{Name: "New Dept", Code: "CENG"}
		require.NoError(t, f.service.CreateDepartment(ctx, second))
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("rejects malformed code", func(t *testing.T) {
		f := newDepartmentFixture()

		err := f.service.CreateDepartment(ctx, &models.Department{Name: "Bad", Code: "c e!ng"})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("rejects non-lecturer head of department", func(t *testing.T) {
		f := newDepartmentFixture()
		f.users.add(&models.User{ID: 5, Name: "Student", Role: models.RoleStudent, IsActive: true})

		headID := int64(5)
		err := f.service.CreateDepartment(ctx, &models.Department{Name: "Dept", Code: "DEPT", HeadOfDepartmentID: &headID})
		assert.ErrorIs(t, err, apperrors.ErrNotALecturer)
	})
}

func TestDeleteDepartment(t *testing.T) {
	ctx := context.Background()

	setup := func(f *departmentFixture) *models.Department {
		department := &models.Department{Name: "Engineering", Code: "ENG"}
		require.NoError(t, f.service.CreateDepartment(ctx, department))
		f.programs.add(&models.Program{ID: 1, Name: "CS", Code: "BSC-CS", DepartmentID: department.ID, IsActive: true})
		f.programs.add(&models.Program{ID: 2, Name: "EE", Code: "BSC-EE", DepartmentID: department.ID, IsActive: true})
		f.courses.add(&models.Course{ID: 1, Name: "Algorithms", Code: "CS201", DepartmentID: department.ID, IsActive: true})
		deptID := department.ID
		f.users.add(&models.User{ID: 30, Name: "Member", Role: models.RoleLecturer, DepartmentID: &deptID, IsActive: true})
		return department
	}

	t.Run("plain delete rejected with dependent counts", func(t *testing.T) {
		f := newDepartmentFixture()
		department := setup(f)

		err := f.service.DeleteDepartment(ctx, department.ID, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentHasDependents)

		details := apperrors.ErrorDetails(err)
		require.NotNil(t, details)
		assert.Equal(t, 2, details["activePrograms"])
		assert.Equal(t, 1, details["activeCourses"])

		// Nothing was touched.
		assert.True(t, f.departments.departments[department.ID].IsActive)
		assert.True(t, f.programs.programs[1].IsActive)
	})

	t.Run("plain delete succeeds without dependents", func(t *testing.T) {
		f := newDepartmentFixture()
		department := &models.Department{Name: "Empty", Code: "EMPTY"}
		require.NoError(t, f.service.CreateDepartment(ctx, department))

		require.NoError(t, f.service.DeleteDepartment(ctx, department.ID, false))
		assert.False(t, f.departments.departments[department.ID].IsActive)
	})

	t.Run("force delete cascades to programs, courses and users", func(t *testing.T) {
		f := newDepartmentFixture()
		department := setup(f)

		require.NoError(t, f.service.DeleteDepartment(ctx, department.ID, true))

		assert.False(t, f.departments.departments[department.ID].IsActive)
		assert.False(t, f.programs.programs[1].IsActive)
		assert.False(t, f.programs.programs[2].IsActive)
		assert.False(t, f.courses.courses[1].IsActive)
		assert.Nil(t, f.users.users[30].DepartmentID, "users are detached, not deactivated")
	})

	t.Run("missing department", func(t *testing.T) {
		f := newDepartmentFixture()

		err := f.service.DeleteDepartment(ctx, 999, false)
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})
}

func TestUpdateDepartment(t *testing.T) {
	ctx := context.Background()
	f := newDepartmentFixture()

	first := &models.Department{Name: "First", Code: "AAA"}
	require.NoError(t, f.service.CreateDepartment(ctx, first))
	second := &models.Department{Name: "Second", Code: "BBB"}
	require.NoError(t, f.service.CreateDepartment(ctx, second))

	// Updating keeps its own code without tripping the uniqueness check.
	first.Name = "First Renamed"
	require.NoError(t, f.service.UpdateDepartment(ctx, first))

	// Taking another active department's code is a conflict.
	first.Code = "BBB"
	err := f.service.UpdateDepartment(ctx, first)
	assert.ErrorIs(t, err, apperrors.ErrDepartmentCodeExists)
}
