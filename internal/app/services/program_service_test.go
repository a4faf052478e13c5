package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/apperrors"
)

type programFixture struct {
	service     *ProgramService
	programs    *fakeProgramStore
	departments *fakeDepartmentStore
	enrollments *fakeEnrollmentStore
}

func newProgramFixture() *programFixture {
	programs := newFakeProgramStore()
	departments := newFakeDepartmentStore()
	enrollments := newFakeEnrollmentStore()
	programs.enrollments = enrollments

	departments.add(&models.Department{ID: 1, Name: "Engineering", Code: "ENG", IsActive: true})

	return &programFixture{
		service:     NewProgramService(programs, departments),
		programs:    programs,
		departments: departments,
		enrollments: enrollments,
	}
}

func TestCreateProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("creates under active department", func(t *testing.T) {
		f := newProgramFixture()

		program := &models.Program{Name: "Computer Science", Code: "bsc-cs", ProgramType: models.ProgramBachelor, DepartmentID: 1, DurationYears: 4, TotalCredits: 240}
		require.NoError(t, f.service.CreateProgram(ctx, program))
		assert.Equal(t, "BSC-CS", program.Code)
		assert.True(t, program.IsActive)
	})

	t.Run("rejects duplicate active code", func(t *testing.T) {
		f := newProgramFixture()

		require.NoError(t, f.service.CreateProgram(ctx, &models.Program{Name: "CS", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1}))
		err := f.service.CreateProgram(ctx, &models.Program{Name: "CS2", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrProgramCodeExists)
	})

	t.Run("allows reusing a soft-deleted program's code", func(t *testing.T) {
		f := newProgramFixture()

		first := &models.Program{Name: "Old", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1}
		require.NoError(t, f.service.CreateProgram(ctx, first))
		require.NoError(t, f.service.DeleteProgram(ctx, first.ID, false))

		second := &models.Program{Name: "New", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1}
		require.NoError(t, f.service.CreateProgram(ctx, second))
	})

	t.Run("rejects inactive department", func(t *testing.T) {
		f := newProgramFixture()
		f.departments.departments[1].IsActive = false

		err := f.service.CreateProgram(ctx, &models.Program{Name: "CS", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
	})

	t.Run("rejects unknown program type", func(t *testing.T) {
		f := newProgramFixture()

		err := f.service.CreateProgram(ctx, &models.Program{Name: "CS", Code: "BSC-CS", ProgramType: "associate", DepartmentID: 1})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestDeleteProgram(t *testing.T) {
	ctx := context.Background()

	setup := func(f *programFixture) *models.Program {
		program := &models.Program{Name: "CS", Code: "BSC-CS", ProgramType: models.ProgramBachelor, DepartmentID: 1}
		require.NoError(t, f.service.CreateProgram(ctx, program))
		f.enrollments.add(&models.Enrollment{StudentID: 20, CourseID: 100, ProgramID: program.ID, Status: models.EnrollmentEnrolled, IsActive: true})
		f.enrollments.add(&models.Enrollment{StudentID: 21, CourseID: 100, ProgramID: program.ID, Status: models.EnrollmentEnrolled, IsActive: true})
		f.enrollments.add(&models.Enrollment{StudentID: 22, CourseID: 100, ProgramID: program.ID, Status: models.EnrollmentCompleted})
		return program
	}

	t.Run("plain delete rejected with enrollment count", func(t *testing.T) {
		f := newProgramFixture()
		program := setup(f)

		err := f.service.DeleteProgram(ctx, program.ID, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrProgramHasEnrollments)

		details := apperrors.ErrorDetails(err)
		require.NotNil(t, details)
		assert.Equal(t, 2, details["activeEnrollments"], "completed rows do not block")
	})

	t.Run("force delete drops enrolled rows and deactivates", func(t *testing.T) {
		f := newProgramFixture()
		program := setup(f)

		require.NoError(t, f.service.DeleteProgram(ctx, program.ID, true))
		assert.False(t, f.programs.programs[program.ID].IsActive)

		var dropped, completed int
		for _, e := range f.enrollments.enrollments {
			switch e.Status {
			case models.EnrollmentDropped:
				dropped++
			case models.EnrollmentCompleted:
				completed++
			}
		}
		assert.Equal(t, 2, dropped)
		assert.Equal(t, 1, completed, "history rows keep their status")
	})
}
