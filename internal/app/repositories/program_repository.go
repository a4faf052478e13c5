package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
)

// Program error types
var (
	ErrProgramNotFound = errors.New("program not found")
)

// ProgramRepository handles database operations for programs
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{
		db: db,
	}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (name, code, program_type, department_id, duration_years, total_credits, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		program.Name, program.Code, program.ProgramType, program.DepartmentID,
		program.DurationYears, program.TotalCredits, program.Description, program.IsActive,
	).Scan(&program.ID, &program.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, code, program_type, department_id, duration_years, total_credits, description, is_active, created_at
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Code,
		&program.ProgramType,
		&program.DepartmentID,
		&program.DurationYears,
		&program.TotalCredits,
		&program.Description,
		&program.IsActive,
		&program.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetAll retrieves programs ordered by name, optionally filtered by department
// and restricted to active ones.
func (r *ProgramRepository) GetAll(ctx context.Context, departmentID *int64, activeOnly bool) ([]*models.Program, error) {
	query := `
		SELECT p.id, p.name, p.code, p.program_type, p.department_id, p.duration_years,
		       p.total_credits, p.description, p.is_active, p.created_at,
		       d.id, d.name, d.code, d.description, d.head_of_department_id, d.is_active, d.created_at
		FROM programs p
		JOIN departments d ON p.department_id = d.id
		WHERE ($1::bigint IS NULL OR p.department_id = $1)
		  AND (NOT $2 OR p.is_active)
		ORDER BY p.name
	`

	rows, err := r.db.Query(ctx, query, departmentID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		var department models.Department
		if err := rows.Scan(
			&program.ID,
			&program.Name,
			&program.Code,
			&program.ProgramType,
			&program.DepartmentID,
			&program.DurationYears,
			&program.TotalCredits,
			&program.Description,
			&program.IsActive,
			&program.CreatedAt,
			&department.ID,
			&department.Name,
			&department.Code,
			&department.Description,
			&department.HeadOfDepartmentID,
			&department.IsActive,
			&department.CreatedAt,
		); err != nil {
			return nil, err
		}
		program.Department = &department
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// CodeExistsActive checks if an active program other than excludeID already uses code.
func (r *ProgramRepository) CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM programs WHERE code = $1 AND is_active AND id != $2)`,
		code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking program code: %w", err)
	}

	return exists, nil
}

// Update updates an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, code = $2, program_type = $3, department_id = $4,
		    duration_years = $5, total_credits = $6, description = $7, is_active = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		program.Name, program.Code, program.ProgramType, program.DepartmentID,
		program.DurationYears, program.TotalCredits, program.Description,
		program.IsActive, program.ID)

	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}

	return nil
}

// CountActiveEnrollments returns the number of enrolled-status enrollments
// referencing the program.
func (r *ProgramRepository) CountActiveEnrollments(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE program_id = $1 AND status = 'enrolled'`,
		id).Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("error counting program enrollments: %w", err)
	}

	return count, nil
}

// Deactivate soft-deletes a program
func (r *ProgramRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE programs SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}

	return nil
}

// DeactivateWithEnrollments soft-deletes a program and drops all of its
// enrollments in one transaction.
func (r *ProgramRepository) DeactivateWithEnrollments(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting cascade transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE enrollments SET status = 'dropped', is_active = FALSE
		WHERE program_id = $1 AND status = 'enrolled'`, id)
	if err != nil {
		return fmt.Errorf("error dropping program enrollments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE programs SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating program: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing cascade transaction: %w", err)
	}

	return nil
}
