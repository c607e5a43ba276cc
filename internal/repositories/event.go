package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/desertthunder/campus/internal/store"
	"github.com/jmoiron/sqlx"
)

const eventColumns = `id, title, COALESCE(description, '') AS description, location,
	COALESCE(roomNumber, '') AS roomNumber, COALESCE(address, '') AS address,
	COALESCE(zipCode, '') AS zipCode, date, COALESCE(time, '') AS time,
	COALESCE(endTime, '') AS endTime, category, COALESCE(imageUri, '') AS imageUri,
	COALESCE(participantLimit, 0) AS participantLimit`

// InsertEvent inserts an event row and returns its generated id.
func InsertEvent(ctx context.Context, e sqlx.ExtContext, event *models.Event) (int64, error) {
	query := `
		INSERT INTO events (
			title, description, location, roomNumber, address,
			zipCode, date, time, endTime, category, imageUri, participantLimit
		) VALUES (
			:title, :description, :location, :roomNumber, :address,
			:zipCode, :date, :time, :endTime, :category, :imageUri, :participantLimit
		)
	`

	result, err := sqlx.NamedExecContext(ctx, e, query, event)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert event: %v", shared.ErrWrite, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read inserted id: %v", shared.ErrWrite, err)
	}

	return id, nil
}

// ListEvents returns every event, newest date first, then latest time first.
// Both keys compare as strings.
func ListEvents(ctx context.Context, q sqlx.QueryerContext) ([]models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC, time DESC`

	events := []models.Event{}
	if err := sqlx.SelectContext(ctx, q, &events, query); err != nil {
		return nil, fmt.Errorf("%w: failed to query events: %v", shared.ErrRead, err)
	}
	return events, nil
}

// GetEvent retrieves an event by ID. Returns [shared.ErrNotFound] when no row matches.
func GetEvent(ctx context.Context, q sqlx.QueryerContext, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

	var event models.Event
	err := sqlx.GetContext(ctx, q, &event, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query event: %v", shared.ErrRead, err)
	}
	return &event, nil
}

// EventRepository creates and reads events through the shared [store.Store].
//
// Reads fail open: a query error is logged and resolves to an empty result, matching what
// screens already render for "no events".
type EventRepository struct {
	store  *store.Store
	logger *log.Logger
}

// NewEventRepository creates a new [EventRepository] bound to the given store
func NewEventRepository(s *store.Store, logger *log.Logger) *EventRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &EventRepository{store: s, logger: shared.WithLogger(logger, "component", "events")}
}

// Create inserts one event and resolves to its id.
//
// Text fields left empty are stored as empty strings; the participant limit is coerced with
// [models.ParseParticipantLimit] and never causes a failure.
func (r *EventRepository) Create(ctx context.Context, in models.EventInput) *shared.Future[int64] {
	event := in.ToEvent()
	if _, ok := models.ParseParticipantLimit(in.ParticipantLimit); !ok {
		r.logger.Warn("invalid participantLimit value, defaulting to 0", "value", in.ParticipantLimit)
	}

	f := store.Do(ctx, r.store, func(ctx context.Context, tx *sqlx.Tx) (int64, error) {
		return InsertEvent(ctx, tx, &event)
	})
	f.Then(func(id int64, err error) {
		if err != nil {
			r.logger.Error("error adding event", "error", err)
			return
		}
		r.logger.Debug("event added", "id", id)
	})
	return f
}

// ListAll resolves to every event ordered by date then time, both descending.
// A read failure resolves to an empty slice and is logged.
func (r *EventRepository) ListAll(ctx context.Context) *shared.Future[[]models.Event] {
	out := shared.NewFuture[[]models.Event]()

	store.Do(ctx, r.store, func(ctx context.Context, tx *sqlx.Tx) ([]models.Event, error) {
		return ListEvents(ctx, tx)
	}).Then(func(events []models.Event, err error) {
		if err != nil {
			r.logger.Error("error fetching events", "error", err)
			out.Resolve([]models.Event{}, nil)
			return
		}
		r.logger.Debug("fetched events", "count", len(events))
		out.Resolve(events, nil)
	})

	return out
}

// GetByID resolves to the event with the given id, or nil when it does not exist.
// Ids below 1 are never assigned and resolve to nil without touching the store.
func (r *EventRepository) GetByID(ctx context.Context, id int64) *shared.Future[*models.Event] {
	if id <= 0 {
		return shared.Resolved[*models.Event](nil, nil)
	}

	out := shared.NewFuture[*models.Event]()

	store.Do(ctx, r.store, func(ctx context.Context, tx *sqlx.Tx) (*models.Event, error) {
		return GetEvent(ctx, tx, id)
	}).Then(func(event *models.Event, err error) {
		switch {
		case errors.Is(err, shared.ErrNotFound):
			r.logger.Warn("no event found", "id", id)
			out.Resolve(nil, nil)
		case err != nil:
			r.logger.Error("error fetching event", "id", id, "error", err)
			out.Resolve(nil, nil)
		default:
			out.Resolve(event, nil)
		}
	})

	return out
}
