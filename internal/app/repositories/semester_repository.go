package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ozan/academix/internal/app/models"
)

// Semester error types
var (
	ErrSemesterNotFound = errors.New("semester not found")
)

// SemesterRepository handles database operations for semesters
type SemesterRepository struct {
	db *pgxpool.Pool
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		db: db,
	}
}

const semesterColumns = `id, name, semester_type, year, start_date, end_date, registration_start, registration_end, is_current, is_active, created_at`

func scanSemester(row pgx.Row) (*models.Semester, error) {
	var semester models.Semester
	err := row.Scan(
		&semester.ID,
		&semester.Name,
		&semester.SemesterType,
		&semester.Year,
		&semester.StartDate,
		&semester.EndDate,
		&semester.RegistrationStart,
		&semester.RegistrationEnd,
		&semester.IsCurrent,
		&semester.IsActive,
		&semester.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

// Create creates a new semester
func (r *SemesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	query := `
		INSERT INTO semesters (name, semester_type, year, start_date, end_date, registration_start, registration_end, is_current, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		semester.Name, semester.SemesterType, semester.Year,
		semester.StartDate, semester.EndDate,
		semester.RegistrationStart, semester.RegistrationEnd,
		semester.IsCurrent, semester.IsActive,
	).Scan(&semester.ID, &semester.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a semester by ID
func (r *SemesterRepository) GetByID(ctx context.Context, id int64) (*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE id = $1`

	semester, err := scanSemester(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving semester: %w", err)
	}

	return semester, nil
}

// GetAll retrieves semesters ordered by start date descending, newest first.
func (r *SemesterRepository) GetAll(ctx context.Context, limit int) ([]*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters ORDER BY start_date DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []*models.Semester
	for rows.Next() {
		semester, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, semester)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return semesters, nil
}

// GetCurrent retrieves the semester flagged as current. Falls back to the most
// recent semester by start date when no row carries the flag.
func (r *SemesterRepository) GetCurrent(ctx context.Context) (*models.Semester, error) {
	query := `SELECT ` + semesterColumns + ` FROM semesters WHERE is_current LIMIT 1`

	semester, err := scanSemester(r.db.QueryRow(ctx, query))
	if err == nil {
		return semester, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error retrieving current semester: %w", err)
	}

	fallback := `SELECT ` + semesterColumns + ` FROM semesters ORDER BY start_date DESC LIMIT 1`
	semester, err = scanSemester(r.db.QueryRow(ctx, fallback))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSemesterNotFound
		}
		return nil, fmt.Errorf("error retrieving fallback semester: %w", err)
	}

	return semester, nil
}

// SetCurrent flags the semester as current and clears the flag on every other
// row in the same transaction, so at most one semester is current.
func (r *SemesterRepository) SetCurrent(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE semesters SET is_current = FALSE WHERE is_current AND id != $1`, id); err != nil {
		return fmt.Errorf("error clearing current semester flag: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `UPDATE semesters SET is_current = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error setting current semester: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSemesterNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// Update updates an existing semester
func (r *SemesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	query := `
		UPDATE semesters
		SET name = $1, semester_type = $2, year = $3, start_date = $4, end_date = $5,
		    registration_start = $6, registration_end = $7, is_active = $8
		WHERE id = $9
	`

	cmdTag, err := r.db.Exec(ctx, query,
		semester.Name, semester.SemesterType, semester.Year,
		semester.StartDate, semester.EndDate,
		semester.RegistrationStart, semester.RegistrationEnd,
		semester.IsActive, semester.ID)

	if err != nil {
		return fmt.Errorf("error updating semester: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrSemesterNotFound
	}

	return nil
}
