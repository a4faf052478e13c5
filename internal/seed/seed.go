package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ozan/academix/internal/app/models"
	"github.com/ozan/academix/internal/app/repositories"
	"github.com/ozan/academix/internal/config"
	"github.com/ozan/academix/internal/pkg/auth"
)

// CreateDefaultData seeds the admin account and a couple of starter
// departments. It is best effort: individual failures are collected and
// returned, but one failure does not stop the rest of the seeding.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	departmentRepo := repositories.NewDepartmentRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for _, dept := range []struct {
		name string
		code string
	}{
		{"Computer Engineering", "CENG"},
		{"Mathematics", "MATH"},
	} {
		exists, err := departmentRepo.CodeExistsActive(ctx, dept.code, 0)
		if err != nil {
			lgr.Error().Err(err).Str("code", dept.code).Msg("Error checking department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}
		if err := departmentRepo.Create(ctx, &models.Department{
			Name:     dept.name,
			Code:     dept.code,
			IsActive: true,
		}); err != nil {
			lgr.Error().Err(err).Str("code", dept.code).Msg("Error creating department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	adminEmail := cfg.Seed.AdminEmail
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.User{
		Name:     "System Administrator",
		Email:    adminEmail,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return finalErr
}
