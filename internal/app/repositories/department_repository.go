package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
)

// Department error types
var (
	ErrDepartmentNotFound = errors.New("department not found")
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, code, description, head_of_department_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		department.Name, department.Code, department.Description,
		department.HeadOfDepartmentID, department.IsActive,
	).Scan(&department.ID, &department.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a department by ID
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	query := `
		SELECT id, name, code, description, head_of_department_id, is_active, created_at
		FROM departments
		WHERE id = $1
	`

	var department models.Department
	err := r.db.QueryRow(ctx, query, id).Scan(
		&department.ID,
		&department.Name,
		&department.Code,
		&department.Description,
		&department.HeadOfDepartmentID,
		&department.IsActive,
		&department.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return &department, nil
}

// GetAll retrieves departments, optionally restricted to active ones, ordered by name
func (r *DepartmentRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Department, error) {
	query := `
		SELECT id, name, code, description, head_of_department_id, is_active, created_at
		FROM departments
	`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(
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
		departments = append(departments, &department)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return departments, nil
}

// CodeExistsActive checks if an active department other than excludeID already uses code.
// Soft-deleted departments do not count: their codes may be reused.
func (r *DepartmentRepository) CodeExistsActive(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE code = $1 AND is_active AND id != $2)`,
		code, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking department code: %w", err)
	}

	return exists, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query := `
		UPDATE departments
		SET name = $1, code = $2, description = $3, head_of_department_id = $4, is_active = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		department.Name, department.Code, department.Description,
		department.HeadOfDepartmentID, department.IsActive, department.ID)

	if err != nil {
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}

// CountActiveDependents returns the number of active programs and courses
// that reference the department.
func (r *DepartmentRepository) CountActiveDependents(ctx context.Context, id int64) (programs, courses int, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM programs WHERE department_id = $1 AND is_active),
			(SELECT COUNT(*) FROM courses WHERE department_id = $1 AND is_active)
	`

	err = r.db.QueryRow(ctx, query, id).Scan(&programs, &courses)
	if err != nil {
		return 0, 0, fmt.Errorf("error counting department dependents: %w", err)
	}

	return programs, courses, nil
}

// Deactivate soft-deletes a department
func (r *DepartmentRepository) Deactivate(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE departments SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}

	return nil
}

// DeactivateCascade soft-deletes a department together with its programs and
// courses and detaches users pointing at it. All writes happen in one
// transaction; partial cascade is not an acceptable outcome.
func (r *DepartmentRepository) DeactivateCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting cascade transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE programs SET is_active = FALSE WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("error deactivating department programs: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE courses SET is_active = FALSE WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("error deactivating department courses: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET department_id = NULL WHERE department_id = $1`, id); err != nil {
		return fmt.Errorf("error detaching department users: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE departments SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing cascade transaction: %w", err)
	}

	return nil
}
