package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/pkg/logger"
)

// Enrollment error types
var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new enrollment row. The partial unique index on
// (student_id, course_id) WHERE status = 'enrolled' backs up the service-level
// duplicate check under concurrent requests.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, program_id, status, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, enrollment_date
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.CourseID, enrollment.ProgramID,
		enrollment.Status, enrollment.IsActive,
	).Scan(&enrollment.ID, &enrollment.EnrollmentDate)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, program_id, status, enrollment_date, final_grade, grade_points, is_active
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.ProgramID,
		&enrollment.Status,
		&enrollment.EnrollmentDate,
		&enrollment.FinalGrade,
		&enrollment.GradePoints,
		&enrollment.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetEnrolledByStudentAndCourse retrieves the enrolled-status row for a
// (student, course) pair. Dropped and completed history rows are ignored;
// returns nil without error when no enrolled row exists.
func (r *EnrollmentRepository) GetEnrolledByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	query := `
		SELECT id, student_id, course_id, program_id, status, enrollment_date, final_grade, grade_points, is_active
		FROM enrollments
		WHERE student_id = $1 AND course_id = $2 AND status = 'enrolled'
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, studentID, courseID).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.ProgramID,
		&enrollment.Status,
		&enrollment.EnrollmentDate,
		&enrollment.FinalGrade,
		&enrollment.GradePoints,
		&enrollment.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// CountEnrolledByCourse returns the derived enrolled count for a course.
func (r *EnrollmentRepository) CountEnrolledByCourse(ctx context.Context, courseID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND status = 'enrolled'`,
		courseID).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}

	return count, nil
}

// ListByStudent retrieves a student's enrollments with course and semester
// details, newest first, optionally restricted to one semester.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64, semesterID *int64) ([]*models.Enrollment, error) {
	baseSelect := r.sb.Select(
		"e.id", "e.student_id", "e.course_id", "e.program_id", "e.status",
		"e.enrollment_date", "e.final_grade", "e.grade_points", "e.is_active",
		"c.name", "c.code", "c.credits", "c.semester_id",
		"s.name AS semester_name",
		"u.name AS lecturer_name",
	).
		From("enrollments e").
		Join("courses c ON e.course_id = c.id").
		Join("semesters s ON c.semester_id = s.id").
		LeftJoin("users u ON c.lecturer_id = u.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.enrollment_date DESC")

	if semesterID != nil {
		baseSelect = baseSelect.Where(squirrel.Eq{"c.semester_id": *semesterID})
	}

	querySql, queryArgs, err := baseSelect.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrollments SQL")
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var course models.Course
		var semesterName string
		var lecturerName *string
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.ProgramID,
			&enrollment.Status,
			&enrollment.EnrollmentDate,
			&enrollment.FinalGrade,
			&enrollment.GradePoints,
			&enrollment.IsActive,
			&course.Name,
			&course.Code,
			&course.Credits,
			&course.SemesterID,
			&semesterName,
			&lecturerName,
		); err != nil {
			return nil, err
		}

		course.ID = enrollment.CourseID
		course.Semester = &models.Semester{ID: course.SemesterID, Name: semesterName}
		if lecturerName != nil {
			course.Lecturer = &models.User{Name: *lecturerName}
		}
		enrollment.Course = &course
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// ListByCourse retrieves enrollments for a course with student details,
// optionally restricted to enrolled status.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, enrolledOnly bool) ([]*models.Enrollment, error) {
	query := `
		SELECT e.id, e.student_id, e.course_id, e.program_id, e.status,
		       e.enrollment_date, e.final_grade, e.grade_points, e.is_active,
		       u.name, u.email, u.student_id
		FROM enrollments e
		JOIN users u ON e.student_id = u.id
		WHERE e.course_id = $1
		  AND (NOT $2 OR e.status = 'enrolled')
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, courseID, enrolledOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		var student models.User
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.ProgramID,
			&enrollment.Status,
			&enrollment.EnrollmentDate,
			&enrollment.FinalGrade,
			&enrollment.GradePoints,
			&enrollment.IsActive,
			&student.Name,
			&student.Email,
			&student.StudentID,
		); err != nil {
			return nil, err
		}

		student.ID = enrollment.StudentID
		enrollment.Student = &student
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// UpdateStatus moves an enrollment to a new status. Leaving enrolled status
// also clears is_active; the final grade is recorded when provided.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error {
	query := `
		UPDATE enrollments
		SET status = $1,
		    is_active = ($1 = 'enrolled'),
		    final_grade = COALESCE($2, final_grade)
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, status, finalGrade, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrEnrollmentNotFound
	}

	return nil
}
