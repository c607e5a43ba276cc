// Package store owns the single SQLite handle shared by every component.
//
// [Store.Initialize] opens the backing file, ensures the schema and seeds a first-run account.
// After that, [Do] queues units of work that run one transaction at a time in submission order.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/jmoiron/sqlx"
)

// Seeder inserts first-run data inside the given transaction.
type Seeder interface {
	Seed(ctx context.Context, tx *sqlx.Tx) error
}

// Options configures a [Store].
type Options struct {
	Path      string        // Backing file, ":memory:" or a "file:" URI
	OpTimeout time.Duration // Upper bound for one queued transaction; 0 disables. Ignored for in-memory paths.
	Seeder    Seeder        // Optional first-run seeding
	Logger    *log.Logger
}

// Store manages the lifecycle of the database handle and serializes access to it.
type Store struct {
	path      string
	opTimeout time.Duration
	seeder    Seeder
	logger    *log.Logger

	mu      sync.Mutex // held for the whole of initialization and Close
	db      *sqlx.DB
	queue   *queue
	stopped chan struct{}
	ready   atomic.Bool
	closed  bool
}

// New creates a Store. Nothing is opened until [Store.Initialize] runs.
func New(opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	s := &Store{
		path:      opts.Path,
		opTimeout: opts.OpTimeout,
		seeder:    opts.Seeder,
		logger:    shared.WithLogger(opts.Logger, "component", "store"),
	}

	// A timed out query makes database/sql discard the only connection, and with it
	// every table of an in-memory database.
	if s.opTimeout > 0 && shared.IsMemoryPath(s.path) {
		s.logger.Warn("operation timeout disabled for in-memory database", "timeout", s.opTimeout)
		s.opTimeout = 0
	}
	return s
}

// Initialize opens the store if it is not open yet.
//
// Safe to call any number of times from any goroutine: concurrent callers wait for the first
// one to finish and then observe the open handle. A failed attempt leaves the store closed so
// that a later call can retry.
func (s *Store) Initialize(ctx context.Context) *shared.Future[struct{}] {
	return shared.Go(func() (struct{}, error) {
		return struct{}{}, s.initialize(ctx)
	})
}

func (s *Store) initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return shared.ErrClosed
	}
	if s.db != nil {
		return nil
	}

	s.logger.Info("opening database", "path", s.path)
	db, err := shared.NewDatabase(s.path)
	if err != nil {
		s.logger.Error("failed to open database", "error", err)
		return err
	}

	if err := shared.ConfigureDatabase(db); err != nil {
		db.Close()
		s.logger.Error("failed to configure database", "error", err)
		return err
	}

	if err := shared.EnsureSchema(ctx, db); err != nil {
		db.Close()
		s.logger.Error("failed to create tables", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrSchema, err)
	}
	s.logger.Debug("tables created/verified")

	s.seed(ctx, db)

	s.db = db
	s.queue = newQueue()
	s.stopped = make(chan struct{})
	go s.run()

	s.ready.Store(true)
	s.logger.Info("database ready")
	return nil
}

// seed runs the configured [Seeder] in its own transaction. Failures are logged, never returned.
func (s *Store) seed(ctx context.Context, db *sqlx.DB) {
	if s.seeder == nil {
		return
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Warn("seeding skipped", "error", err)
		return
	}
	defer tx.Rollback()

	if err := s.seeder.Seed(ctx, tx); err != nil {
		s.logger.Warn("seeding failed", "error", err)
		return
	}
	if err := tx.Commit(); err != nil {
		s.logger.Warn("seeding failed", "error", err)
	}
}

// Ready reports whether initialization has completed.
func (s *Store) Ready() bool {
	return s.ready.Load()
}

// Close stops accepting work, waits for queued transactions to finish and closes the handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.ready.Store(false)

	if s.db == nil {
		return nil
	}

	s.queue.close()
	<-s.stopped

	err := s.db.Close()
	s.db = nil
	return err
}

// Do queues fn to run inside its own transaction and returns a Future for its result.
//
// The transaction commits when fn returns nil and rolls back otherwise, so a failed unit of
// work never leaves partial rows behind.
func Do[T any](ctx context.Context, s *Store, fn func(ctx context.Context, tx *sqlx.Tx) (T, error)) *shared.Future[T] {
	var zero T
	if !s.ready.Load() {
		return shared.Resolved(zero, shared.ErrNotReady)
	}

	f := shared.NewFuture[T]()
	var out T
	j := job{
		id:  shared.GenerateID(),
		ctx: ctx,
		run: func(ctx context.Context, tx *sqlx.Tx) error {
			v, err := fn(ctx, tx)
			if err != nil {
				return err
			}
			out = v
			return nil
		},
		done: func(err error) {
			if err != nil {
				f.Resolve(zero, err)
				return
			}
			f.Resolve(out, nil)
		},
	}

	if !s.queue.push(j) {
		return shared.Resolved(zero, shared.ErrClosed)
	}
	return f
}

// run executes queued jobs until the queue is closed and drained.
func (s *Store) run() {
	defer close(s.stopped)
	for {
		j, ok := s.queue.pop()
		if !ok {
			return
		}
		j.done(s.exec(j))
	}
}

func (s *Store) exec(j job) error {
	logger := s.logger.With("op", j.id)

	ctx := j.ctx
	if err := ctx.Err(); err != nil {
		logger.Debug("skipping cancelled operation", "error", err)
		return err
	}
	if s.opTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opTimeout)
		defer cancel()
	}

	start := time.Now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := j.run(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.Warn("rollback failed", "error", rbErr)
		}
		logger.Debug("transaction rolled back", "error", err, "elapsed", time.Since(start))
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", "error", err)
		return fmt.Errorf("%w: commit: %v", shared.ErrWrite, err)
	}

	logger.Debug("transaction committed", "elapsed", time.Since(start))
	return nil
}
