package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/helpers"
	"github.com/ozan/academix/internal/pkg/logger"
)

// Course error types
var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseFilter narrows GetAll results. Nil fields are ignored. Page is
// 1-based; Size falls back to the default page size when out of range.
type CourseFilter struct {
	DepartmentID *int64
	SemesterID   *int64
	LecturerID   *int64
	ActiveOnly   bool
	Page         int
	Size         int
}

func (f CourseFilter) whereCondition() squirrel.And {
	cond := squirrel.And{}
	if f.ActiveOnly {
		cond = append(cond, squirrel.Expr("c.is_active"))
	}
	if f.DepartmentID != nil {
		cond = append(cond, squirrel.Eq{"c.department_id": *f.DepartmentID})
	}
	if f.SemesterID != nil {
		cond = append(cond, squirrel.Eq{"c.semester_id": *f.SemesterID})
	}
	if f.LecturerID != nil {
		cond = append(cond, squirrel.Eq{"c.lecturer_id": *f.LecturerID})
	}
	return cond
}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, code, description, credits, department_id, lecturer_id, semester_id, max_capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		course.Name, course.Code, course.Description, course.Credits,
		course.DepartmentID, course.LecturerID, course.SemesterID,
		course.MaxCapacity, course.IsActive,
	).Scan(&course.ID, &course.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a course by ID together with its derived enrolled count.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT c.id, c.name, c.code, c.description, c.credits, c.department_id,
		       c.lecturer_id, c.semester_id, c.max_capacity, c.is_active, c.created_at,
		       (SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'enrolled')
		FROM courses c
		WHERE c.id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Name,
		&course.Code,
		&course.Description,
		&course.Credits,
		&course.DepartmentID,
		&course.LecturerID,
		&course.SemesterID,
		&course.MaxCapacity,
		&course.IsActive,
		&course.CreatedAt,
		&course.EnrolledCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves one page of courses matching the filter, ordered by code,
// each with its derived enrolled count and department/lecturer names. The
// second return value is the total match count across all pages.
func (r *CourseRepository) GetAll(ctx context.Context, filter CourseFilter) ([]*models.Course, int64, error) {
	whereCondition := filter.whereCondition()

	countSelect := r.sb.Select("COUNT(*)").From("courses c")
	if len(whereCondition) > 0 {
		countSelect = countSelect.Where(whereCondition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count courses SQL")
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	baseSelect := r.sb.Select(
		"c.id", "c.name", "c.code", "c.description", "c.credits", "c.department_id",
		"c.lecturer_id", "c.semester_id", "c.max_capacity", "c.is_active", "c.created_at",
		"(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.status = 'enrolled') AS enrolled_count",
		"d.name AS department_name",
		"u.name AS lecturer_name",
	).
		From("courses c").
		Join("departments d ON c.department_id = d.id").
		LeftJoin("users u ON c.lecturer_id = u.id").
		OrderBy("c.code").
		Offset(offset).
		Limit(uint64(limit))

	if len(whereCondition) > 0 {
		baseSelect = baseSelect.Where(whereCondition)
	}

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get courses SQL")
		return nil, 0, fmt.Errorf("failed to build get courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		var departmentName string
		var lecturerName *string
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Code,
			&course.Description,
			&course.Credits,
			&course.DepartmentID,
			&course.LecturerID,
			&course.SemesterID,
			&course.MaxCapacity,
			&course.IsActive,
			&course.CreatedAt,
			&course.EnrolledCount,
			&departmentName,
			&lecturerName,
		); err != nil {
			return nil, 0, err
		}

		course.Department = &models.Department{ID: course.DepartmentID, Name: departmentName}
		if course.LecturerID != nil && lecturerName != nil {
			course.Lecturer = &models.User{ID: *course.LecturerID, Name: *lecturerName}
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

// CodeExistsActive checks if an active course other than excludeID already uses code.
func (r *CourseRepository) CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1 AND is_active AND id != $2)`,
		code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking course code: %w", err)
	}

	return exists, nil
}

// Update updates an existing course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, code = $2, description = $3, credits = $4, department_id = $5,
		    lecturer_id = $6, semester_id = $7, max_capacity = $8, is_active = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Name, course.Code, course.Description, course.Credits,
		course.DepartmentID, course.LecturerID, course.SemesterID,
		course.MaxCapacity, course.IsActive, course.ID)

	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}

// Deactivate soft-deletes a course
func (r *CourseRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE courses SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}

	return nil
}
