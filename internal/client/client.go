// Package client exposes the persistence layer through completion callbacks.
//
// Screens call these methods and never see an error value: every failure is logged and
// reported as false, nil or an empty slice. Each callback runs exactly once, on a goroutine
// other than the caller's.
package client

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/campus/internal/auth"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/repositories"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/desertthunder/campus/internal/store"
)

// Client bundles the store, the auth service and the event repository.
type Client struct {
	store  *store.Store
	auth   *auth.Service
	events *repositories.EventRepository
	logger *log.Logger
}

// New creates a Client over already constructed components.
func New(s *store.Store, a *auth.Service, e *repositories.EventRepository, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Client{store: s, auth: a, events: e, logger: shared.WithLogger(logger, "component", "client")}
}

// Initialize opens the store and calls exactly one of onReady or onError.
// Either callback may be nil.
func (c *Client) Initialize(onReady func(), onError func(error)) {
	c.store.Initialize(context.Background()).Then(func(_ struct{}, err error) {
		if err != nil {
			c.logger.Error("store initialization failed", "error", err)
			if onError != nil {
				onError(err)
			}
			return
		}
		if onReady != nil {
			onReady()
		}
	})
}

// Register reports true when the account was created.
func (c *Client) Register(name, email, password, role string, onResult func(bool)) {
	c.auth.Register(context.Background(), name, email, password, role).Then(func(_ *models.User, err error) {
		if err != nil {
			c.logger.Debug("register failed", "error", err)
		}
		call(onResult, err == nil)
	})
}

// Login reports the stored user on success and nil otherwise.
func (c *Client) Login(email, password string, onResult func(*models.User)) {
	c.auth.Login(context.Background(), email, password).Then(func(user *models.User, err error) {
		if err != nil {
			c.logger.Debug("login failed", "error", err)
			user = nil
		}
		call(onResult, user)
	})
}

// CreateEvent reports true when the event was stored.
func (c *Client) CreateEvent(in models.EventInput, onResult func(bool)) {
	c.events.Create(context.Background(), in).Then(func(_ int64, err error) {
		call(onResult, err == nil)
	})
}

// ListEvents reports every event, newest first. Failures report an empty slice.
func (c *Client) ListEvents(onResult func([]models.Event)) {
	c.events.ListAll(context.Background()).Then(func(events []models.Event, err error) {
		if err != nil || events == nil {
			events = []models.Event{}
		}
		call(onResult, events)
	})
}

// GetEvent reports the event with id, or nil.
func (c *Client) GetEvent(id int64, onResult func(*models.Event)) {
	c.events.GetByID(context.Background(), id).Then(func(event *models.Event, err error) {
		if err != nil {
			event = nil
		}
		call(onResult, event)
	})
}

func call[T any](fn func(T), v T) {
	if fn != nil {
		fn(v)
	}
}
