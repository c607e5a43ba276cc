package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/campus/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgEventsFetched MsgKind = iota
	MsgEventFetched
)

type eventsFetched struct {
	events []models.Event
	err    error
}

type eventFetched struct {
	event *models.Event
	err   error
}

// eventsFetchedMsg is the constructor for [MsgEventsFetched]
func eventsFetchedMsg(events []models.Event, err error) Msg {
	return Msg{kind: MsgEventsFetched, data: eventsFetched{events, err}}
}

// eventFetchedMsg is the constructor for [MsgEventFetched]
func eventFetchedMsg(event *models.Event, err error) Msg {
	return Msg{kind: MsgEventFetched, data: eventFetched{event, err}}
}
