package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/apperrors"
)

func newSemester(name string, semType models.SemesterType, year int, start time.Time) *models.Semester {
	return &models.Semester{
		Name:              name,
		SemesterType:      semType,
		Year:              year,
		StartDate:         start,
		EndDate:           start.AddDate(0, 4, 0),
		RegistrationStart: start.AddDate(0, -1, 0),
		RegistrationEnd:   start.AddDate(0, 0, 14),
		IsActive:          true,
	}
}

func TestSetCurrentSemester(t *testing.T) {
	ctx := context.Background()
	store := newFakeSemesterStore()
	notifier := &fakeNotifier{}
	service := NewSemesterService(store, notifier)

	fall := newSemester("Fall 2026", models.SemesterFall, 2026, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	spring := newSemester("Spring 2027", models.SemesterSpring, 2027, time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, service.CreateSemester(ctx, fall))
	require.NoError(t, service.CreateSemester(ctx, spring))

	require.NoError(t, service.SetCurrentSemester(ctx, fall.ID))
	require.NoError(t, service.SetCurrentSemester(ctx, spring.ID))

	// Only one semester carries the flag after repeated changes.
	var current int
	for _, s := range store.semesters {
		if s.IsCurrent {
			current++
		}
	}
	assert.Equal(t, 1, current)
	assert.True(t, store.semesters[spring.ID].IsCurrent)
	assert.Contains(t, notifier.eventTypes(), EventSemesterChanged)
}

func TestCreateSemesterAsCurrent(t *testing.T) {
	ctx := context.Background()
	store := newFakeSemesterStore()
	service := NewSemesterService(store, nil)

	fall := newSemester("Fall 2026", models.SemesterFall, 2026, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, service.CreateSemester(ctx, fall))
	require.NoError(t, service.SetCurrentSemester(ctx, fall.ID))

	spring := newSemester("Spring 2027", models.SemesterSpring, 2027, time.Date(2027, 2, 1, 0, 0, 0, 0, time.UTC))
	spring.IsCurrent = true
	require.NoError(t, service.CreateSemester(ctx, spring))

	assert.False(t, store.semesters[fall.ID].IsCurrent, "creating a current semester takes over the flag")
	assert.True(t, store.semesters[spring.ID].IsCurrent)
}

func TestSemesterValidation(t *testing.T) {
	ctx := context.Background()
	service := NewSemesterService(newFakeSemesterStore(), nil)

	bad := newSemester("Fall 2026", models.SemesterFall, 2026, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	bad.EndDate = bad.StartDate.AddDate(0, -1, 0)
	err := service.CreateSemester(ctx, bad)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	bad = newSemester("Winter 2026", "winter", 2026, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))
	err = service.CreateSemester(ctx, bad)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetCurrentSemesterFallback(t *testing.T) {
	ctx := context.Background()
	store := newFakeSemesterStore()
	service := NewSemesterService(store, nil)

	_, err := service.GetCurrentSemester(ctx)
	assert.ErrorIs(t, err, apperrors.ErrSemesterNotFound)

	fall := newSemester("Fall 2026", models.SemesterFall, 2026, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, service.CreateSemester(ctx, fall))

	// No semester is flagged; the newest one is returned.
	current, err := service.GetCurrentSemester(ctx)
	require.NoError(t, err)
	assert.Equal(t, fall.ID, current.ID)
}
