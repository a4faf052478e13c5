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

// ProgramLecturer error types
var (
	ErrAssignmentNotFound = errors.New("lecturer assignment not found")
)

// ProgramLecturerRepository handles database operations for lecturer-program assignments
type ProgramLecturerRepository struct {
	db *pgxpool.Pool
}

// NewProgramLecturerRepository creates a new program lecturer repository
func NewProgramLecturerRepository(db *pgxpool.Pool) *ProgramLecturerRepository {
	return &ProgramLecturerRepository{
		db: db,
	}
}

// Create creates a new assignment row. The unique constraint on
// (program_id, lecturer_id) backs up the service-level check under
// concurrent requests.
func (r *ProgramLecturerRepository) Create(ctx context.Context, assignment *models.ProgramLecturer) error {
	query := `
		INSERT INTO program_lecturers (program_id, lecturer_id, role, assigned_by_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, assigned_at
	`

	err := r.db.QueryRow(ctx, query,
		assignment.ProgramID, assignment.LecturerID, assignment.Role,
		assignment.AssignedByID, assignment.IsActive,
	).Scan(&assignment.ID, &assignment.AssignedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByProgramAndLecturer retrieves the assignment row for a
// (program, lecturer) pair, inactive rows included. Returns nil without error
// when no row exists.
func (r *ProgramLecturerRepository) GetByProgramAndLecturer(ctx context.Context, programID, lecturerID int64) (*models.ProgramLecturer, error) {
	query := `
		SELECT id, program_id, lecturer_id, role, assigned_by_id, assigned_at, is_active
		FROM program_lecturers
		WHERE program_id = $1 AND lecturer_id = $2
	`

	var assignment models.ProgramLecturer
	err := r.db.QueryRow(ctx, query, programID, lecturerID).Scan(
		&assignment.ID,
		&assignment.ProgramID,
		&assignment.LecturerID,
		&assignment.Role,
		&assignment.AssignedByID,
		&assignment.AssignedAt,
		&assignment.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return &assignment, nil
}

// GetByID retrieves an assignment scoped to a program
func (r *ProgramLecturerRepository) GetByID(ctx context.Context, programID, assignmentID int64) (*models.ProgramLecturer, error) {
	query := `
		SELECT id, program_id, lecturer_id, role, assigned_by_id, assigned_at, is_active
		FROM program_lecturers
		WHERE id = $1 AND program_id = $2
	`

	var assignment models.ProgramLecturer
	err := r.db.QueryRow(ctx, query, assignmentID, programID).Scan(
		&assignment.ID,
		&assignment.ProgramID,
		&assignment.LecturerID,
		&assignment.Role,
		&assignment.AssignedByID,
		&assignment.AssignedAt,
		&assignment.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}

	return &assignment, nil
}

// Reactivate flips an inactive assignment back to active, refreshing its role
// and assignment audit fields.
func (r *ProgramLecturerRepository) Reactivate(ctx context.Context, id int64, role string, assignedByID *int64) error {
	query := `
		UPDATE program_lecturers
		SET is_active = TRUE, role = $1, assigned_by_id = $2, assigned_at = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, role, assignedByID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error reactivating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// ListByProgram retrieves assignments for a program with lecturer details,
// optionally restricted to active rows.
func (r *ProgramLecturerRepository) ListByProgram(ctx context.Context, programID int64, activeOnly bool) ([]*models.ProgramLecturer, error) {
	query := `
		SELECT pl.id, pl.program_id, pl.lecturer_id, pl.role, pl.assigned_by_id, pl.assigned_at, pl.is_active,
		       u.name, u.email, u.employee_id
		FROM program_lecturers pl
		JOIN users u ON pl.lecturer_id = u.id
		WHERE pl.program_id = $1
		  AND (NOT $2 OR pl.is_active)
		ORDER BY u.name
	`

	rows, err := r.db.Query(ctx, query, programID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.ProgramLecturer
	for rows.Next() {
		var assignment models.ProgramLecturer
		var lecturer models.User
		if err := rows.Scan(
			&assignment.ID,
			&assignment.ProgramID,
			&assignment.LecturerID,
			&assignment.Role,
			&assignment.AssignedByID,
			&assignment.AssignedAt,
			&assignment.IsActive,
			&lecturer.Name,
			&lecturer.Email,
			&lecturer.EmployeeID,
		); err != nil {
			return nil, err
		}

		lecturer.ID = assignment.LecturerID
		assignment.Lecturer = &lecturer
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// ListByLecturer retrieves a lecturer's active assignments with program details.
func (r *ProgramLecturerRepository) ListByLecturer(ctx context.Context, lecturerID int64) ([]*models.ProgramLecturer, error) {
	query := `
		SELECT pl.id, pl.program_id, pl.lecturer_id, pl.role, pl.assigned_by_id, pl.assigned_at, pl.is_active,
		       p.name, p.code, p.program_type, p.department_id
		FROM program_lecturers pl
		JOIN programs p ON pl.program_id = p.id
		WHERE pl.lecturer_id = $1 AND pl.is_active
		ORDER BY p.name
	`

	rows, err := r.db.Query(ctx, query, lecturerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.ProgramLecturer
	for rows.Next() {
		var assignment models.ProgramLecturer
		var program models.Program
		if err := rows.Scan(
			&assignment.ID,
			&assignment.ProgramID,
			&assignment.LecturerID,
			&assignment.Role,
			&assignment.AssignedByID,
			&assignment.AssignedAt,
			&assignment.IsActive,
			&program.Name,
			&program.Code,
			&program.ProgramType,
			&program.DepartmentID,
		); err != nil {
			return nil, err
		}

		program.ID = assignment.ProgramID
		assignment.Program = &program
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// Update updates an assignment's role and active flag
func (r *ProgramLecturerRepository) Update(ctx context.Context, assignment *models.ProgramLecturer) error {
	query := `
		UPDATE program_lecturers
		SET role = $1, is_active = $2
		WHERE id = $3 AND program_id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		assignment.Role, assignment.IsActive, assignment.ID, assignment.ProgramID)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// Deactivate soft-deletes an assignment scoped to a program
func (r *ProgramLecturerRepository) Deactivate(ctx context.Context, programID, assignmentID int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE program_lecturers SET is_active = FALSE WHERE id = $1 AND program_id = $2`,
		assignmentID, programID)
	if err != nil {
		return fmt.Errorf("error deactivating assignment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}
