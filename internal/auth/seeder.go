package auth

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/repositories"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/jmoiron/sqlx"
)

// Seeder inserts the configured first-run account when the users table is empty.
// It implements [store.Seeder].
type Seeder struct {
	account shared.SeedConfig
	hasher  *Hasher
	logger  *log.Logger
}

// NewSeeder creates a Seeder for the given account.
func NewSeeder(account shared.SeedConfig, hasher *Hasher, logger *log.Logger) *Seeder {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Seeder{account: account, hasher: hasher, logger: shared.WithLogger(logger, "component", "seed")}
}

// Seed inserts the account only when the users table has exactly zero rows.
func (s *Seeder) Seed(ctx context.Context, tx *sqlx.Tx) error {
	if !s.account.Enabled {
		s.logger.Debug("seeding disabled")
		return nil
	}
	if s.account.Email == "" || s.account.Password == "" {
		s.logger.Warn("seed account has no email or password configured, skipping")
		return nil
	}

	count, err := repositories.CountUsers(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to check user count: %w", err)
	}
	s.logger.Debug("current number of users", "count", count)
	if count != 0 {
		return nil
	}

	hash, err := s.hasher.Hash(s.account.Password)
	if err != nil {
		return err
	}

	role := s.account.Role
	if role == "" {
		role = models.RoleUser
	}

	id, err := repositories.InsertUser(ctx, tx, &models.User{
		Name:         s.account.Name,
		Email:        s.account.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return err
	}

	s.logger.Info("seed account created", "id", id, "email", s.account.Email)
	return nil
}
