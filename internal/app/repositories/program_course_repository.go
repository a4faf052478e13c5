package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
)

// ProgramCourse error types
var (
	ErrAllocationNotFound = errors.New("course allocation not found")
)

// ProgramCourseRepository handles database operations for course-program allocations
type ProgramCourseRepository struct {
	db *pgxpool.Pool
}

// NewProgramCourseRepository creates a new program course repository
func NewProgramCourseRepository(db *pgxpool.Pool) *ProgramCourseRepository {
	return &ProgramCourseRepository{
		db: db,
	}
}

// Create creates a new allocation row. The unique constraint on
// (program_id, course_id) backs up the service-level check under concurrent
// requests.
func (r *ProgramCourseRepository) Create(ctx context.Context, allocation *models.ProgramCourse) error {
	query := `
		INSERT INTO program_courses (program_id, course_id, is_required, semester_order, allocated_by_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, allocated_at
	`

	err := r.db.QueryRow(ctx, query,
		allocation.ProgramID, allocation.CourseID, allocation.IsRequired,
		allocation.SemesterOrder, allocation.AllocatedByID, allocation.IsActive,
	).Scan(&allocation.ID, &allocation.AllocatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByProgramAndCourse retrieves the allocation row for a (program, course)
// pair, inactive rows included. Returns nil without error when no row exists.
func (r *ProgramCourseRepository) GetByProgramAndCourse(ctx context.Context, programID, courseID int64) (*models.ProgramCourse, error) {
	query := `
		SELECT id, program_id, course_id, is_required, semester_order, allocated_by_id, allocated_at, is_active
		FROM program_courses
		WHERE program_id = $1 AND course_id = $2
	`

	var allocation models.ProgramCourse
	err := r.db.QueryRow(ctx, query, programID, courseID).Scan(
		&allocation.ID,
		&allocation.ProgramID,
		&allocation.CourseID,
		&allocation.IsRequired,
		&allocation.SemesterOrder,
		&allocation.AllocatedByID,
		&allocation.AllocatedAt,
		&allocation.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving allocation: %w", err)
	}

	return &allocation, nil
}

// GetByID retrieves an allocation scoped to a program
func (r *ProgramCourseRepository) GetByID(ctx context.Context, programID, allocationID int64) (*models.ProgramCourse, error) {
	query := `
		SELECT id, program_id, course_id, is_required, semester_order, allocated_by_id, allocated_at, is_active
		FROM program_courses
		WHERE id = $1 AND program_id = $2
	`

	var allocation models.ProgramCourse
	err := r.db.QueryRow(ctx, query, allocationID, programID).Scan(
		&allocation.ID,
		&allocation.ProgramID,
		&allocation.CourseID,
		&allocation.IsRequired,
		&allocation.SemesterOrder,
		&allocation.AllocatedByID,
		&allocation.AllocatedAt,
		&allocation.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAllocationNotFound
		}
		return nil, fmt.Errorf("error retrieving allocation: %w", err)
	}

	return &allocation, nil
}

// Reactivate flips an inactive allocation back to active, refreshing its
// curriculum attributes and allocation audit fields.
func (r *ProgramCourseRepository) Reactivate(ctx context.Context, id int64, isRequired bool, semesterOrder int, allocatedByID *int64) error {
	query := `
		UPDATE program_courses
		SET is_active = TRUE, is_required = $1, semester_order = $2, allocated_by_id = $3, allocated_at = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, isRequired, semesterOrder, allocatedByID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error reactivating allocation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAllocationNotFound
	}

	return nil
}

// ListByProgram retrieves allocations for a program with course details in
// curriculum order, optionally restricted to active rows.
func (r *ProgramCourseRepository) ListByProgram(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramCourse, error) {
	query := `
		SELECT pc.id, pc.program_id, pc.course_id, pc.is_required, pc.semester_order,
		       pc.allocated_by_id, pc.allocated_at, pc.is_active,
		       c.name, c.code, c.credits, c.max_capacity,
		       (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'enrolled')
		FROM program_courses pc
		JOIN courses c ON pc.course_id = c.id
		WHERE pc.program_id = $1
		  AND (NOT $2 OR pc.is_active)
		ORDER BY pc.semester_order, c.code
	`

	rows, err := r.db.Query(ctx, query, programID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.ProgramCourse
	for rows.Next() {
		var allocation models.ProgramCourse
		var course models.Course
		if err := rows.Scan(
			&allocation.ID,
			&allocation.ProgramID,
			&allocation.CourseID,
			&allocation.IsRequired,
			&allocation.SemesterOrder,
			&allocation.AllocatedByID,
			&allocation.AllocatedAt,
			&allocation.IsActive,
			&course.Name,
			&course.Code,
			&course.Credits,
			&course.MaxCapacity,
			&course.EnrolledCount,
		); err != nil {
			return nil, err
		}

		course.ID = allocation.CourseID
		allocation.Course = &course
		allocations = append(allocations, &allocation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return allocations, nil
}

// Update updates an allocation's curriculum attributes and active flag
func (r *ProgramCourseRepository) Update(ctx context.Context, allocation *models.ProgramCourse) error {
	query := `
		UPDATE program_courses
		SET is_required = $1, semester_order = $2, is_active = $3
		WHERE id = $4 AND program_id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		allocation.IsRequired, allocation.SemesterOrder, allocation.IsActive,
		allocation.ID, allocation.ProgramID)
	if err != nil {
		return fmt.Errorf("error updating allocation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAllocationNotFound
	}

	return nil
}

// Deactivate soft-deletes an allocation scoped to a program
func (r *ProgramCourseRepository) Deactivate(ctx context.Context, programID, allocationID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE program_courses SET is_active = FALSE WHERE id = $1 AND program_id = $2`,
		allocationID, programID)
	if err != nil {
		return fmt.Errorf("error deactivating allocation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAllocationNotFound
	}

	return nil
}
