// Package auth registers accounts and checks credentials against the users table.
//
// Passwords are stored only as bcrypt hashes. Login is a one-shot check per call: no session
// or token is issued, the caller receives the stored user row and branches on its role.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/repositories"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/desertthunder/campus/internal/store"
	"github.com/jmoiron/sqlx"
	"golang.org/x/time/rate"
)

// Options configures a [Service].
type Options struct {
	Hasher     *Hasher
	LoginRate  float64 // Login attempts per second; 0 disables throttling
	LoginBurst int
	Logger     *log.Logger
}

// Service mediates registration and login against the users table.
type Service struct {
	store   *store.Store
	hasher  *Hasher
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewService creates a Service that runs its transactions on s.
func NewService(s *store.Store, opts Options) (*Service, error) {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Hasher == nil {
		h, err := NewHasher(DefaultCost)
		if err != nil {
			return nil, err
		}
		opts.Hasher = h
	}

	svc := &Service{
		store:  s,
		hasher: opts.Hasher,
		logger: shared.WithLogger(opts.Logger, "component", "auth"),
	}
	if opts.LoginRate > 0 {
		burst := opts.LoginBurst
		if burst <= 0 {
			burst = 1
		}
		svc.limiter = rate.NewLimiter(rate.Limit(opts.LoginRate), burst)
	}
	return svc, nil
}

// Register creates an account and resolves to the stored row.
//
// Fails with [shared.ErrEmailTaken] when the email exists (the row is never overwritten) and
// with [shared.ErrHashing] when no hash could be derived, in which case nothing is inserted.
func (s *Service) Register(ctx context.Context, name, email, password, role string) *shared.Future[*models.User] {
	if !s.store.Ready() {
		return shared.Resolved[*models.User](nil, shared.ErrNotReady)
	}

	out := shared.NewFuture[*models.User]()
	go func() {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			s.logger.Error("error hashing password during registration", "error", err)
			out.Resolve(nil, err)
			return
		}

		user, err := store.Do(ctx, s.store, func(ctx context.Context, tx *sqlx.Tx) (*models.User, error) {
			return register(ctx, tx, &models.User{Name: name, Email: email, PasswordHash: hash, Role: role})
		}).Wait(context.WithoutCancel(ctx))

		switch {
		case errors.Is(err, shared.ErrEmailTaken):
			s.logger.Info("email already registered", "email", email)
		case err != nil:
			s.logger.Error("error registering user", "email", email, "error", err)
		default:
			s.logger.Info("user registered", "id", user.ID, "role", user.Role)
		}
		out.Resolve(user, err)
	}()
	return out
}

// register runs inside one transaction: check, insert, then re-read to confirm persistence.
func register(ctx context.Context, tx *sqlx.Tx, user *models.User) (*models.User, error) {
	_, err := repositories.FindUserByEmail(ctx, tx, user.Email)
	if err == nil {
		return nil, shared.ErrEmailTaken
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	id, err := repositories.InsertUser(ctx, tx, user)
	if err != nil {
		return nil, err
	}

	stored, err := repositories.GetUser(ctx, tx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d missing after insert", shared.ErrWrite, id)
	}
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Login resolves to the stored user when password matches.
//
// An unknown email and a wrong password both fail with [shared.ErrInvalidCredentials]; the
// unknown-email path still performs a bcrypt comparison so both take similar time.
func (s *Service) Login(ctx context.Context, email, password string) *shared.Future[*models.User] {
	if !s.store.Ready() {
		return shared.Resolved[*models.User](nil, shared.ErrNotReady)
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.logger.Warn("login throttled", "email", email)
		return shared.Resolved[*models.User](nil, shared.ErrRateLimited)
	}

	out := shared.NewFuture[*models.User]()
	go func() {
		user, err := store.Do(ctx, s.store, func(ctx context.Context, tx *sqlx.Tx) (*models.User, error) {
			return repositories.FindUserByEmail(ctx, tx, email)
		}).Wait(context.WithoutCancel(ctx))

		switch {
		case errors.Is(err, shared.ErrNotFound):
			s.hasher.burn(password)
			s.logger.Info("login failed", "reason", "user not found")
			out.Resolve(nil, shared.ErrInvalidCredentials)
		case err != nil:
			s.logger.Error("error during login", "error", err)
			out.Resolve(nil, err)
		case !s.hasher.Verify(user.PasswordHash, password):
			s.logger.Info("login failed", "reason", "invalid password", "id", user.ID)
			out.Resolve(nil, shared.ErrInvalidCredentials)
		default:
			s.logger.Info("login successful", "id", user.ID, "role", user.Role)
			out.Resolve(user, nil)
		}
	}()
	return out
}
