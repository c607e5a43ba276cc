package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserRegister creates an account and prints it.
func (r *Runner) UserRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	email := cmd.String("email")
	user, err := r.auth.Register(ctx, cmd.String("name"), email, cmd.String("password"), cmd.String("role")).Wait(ctx)
	if errors.Is(err, shared.ErrEmailTaken) {
		return fmt.Errorf("%w: %s", err, email)
	}
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}
	return r.writeUser("✓ Registered", user)
}

// UserLogin checks credentials and prints the stored account.
func (r *Runner) UserLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	user, err := r.auth.Login(ctx, cmd.String("email"), cmd.String("password")).Wait(ctx)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}
	return r.writeUser("✓ Logged in", user)
}

func (r *Runner) writeUser(title string, user *models.User) error {
	if err := r.writePlain("%s: %s <%s>\n", title, user.Name, user.Email); err != nil {
		return err
	}
	return r.writePlain("  ID: %d\n  Role: %s\n", user.ID, user.Role)
}
