package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/campus/internal/formatter"
	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EventListView ViewState = iota
	EventDetailView
)

// EventSource is the read side of the event repository.
type EventSource interface {
	ListAll(ctx context.Context) *shared.Future[[]models.Event]
	GetByID(ctx context.Context, id int64) *shared.Future[*models.Event]
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	source    EventSource
	width     int
	height    int
	eventList list.Model
	events    []models.Event
	selected  *models.Event
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model reading from source.
func NewModel(ctx context.Context, source EventSource) *Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Campus Events"

	return &Model{
		ctx:       ctx,
		view:      EventListView,
		source:    source,
		eventList: l,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init loads the event list.
func (m *Model) Init() tea.Cmd {
	return m.fetchEvents()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eventList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case EventListView:
			return m.handleListKeys(msg)
		case EventDetailView:
			return m.handleDetailKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.eventList, cmd = m.eventList.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgEventsFetched:
		data := msg.data.(eventsFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		m.events = data.events
		m.status = fmt.Sprintf("%d events", len(data.events))
		return m, m.eventList.SetItems(eventItems(data.events))

	case MsgEventFetched:
		data := msg.data.(eventFetched)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		if data.event == nil {
			m.status = "event no longer exists"
			return m, nil
		}
		m.selected = data.event
		m.view = EventDetailView
		return m, nil
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case EventListView:
		return m.renderList()
	case EventDetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.eventList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.eventList, cmd = m.eventList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchEvents()
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.eventList.SelectedItem().(eventItem); ok {
			return m, m.fetchEvent(item.event.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.eventList, cmd = m.eventList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = EventListView
		m.selected = nil
	}
	return m, nil
}

func (m *Model) fetchEvents() tea.Cmd {
	return func() tea.Msg {
		events, err := m.source.ListAll(m.ctx).Wait(m.ctx)
		return eventsFetchedMsg(events, err)
	}
}

func (m *Model) fetchEvent(id int64) tea.Cmd {
	return func() tea.Msg {
		event, err := m.source.GetByID(m.ctx, id).Wait(m.ctx)
		return eventFetchedMsg(event, err)
	}
}

func (m *Model) renderList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.eventList.View(), styles.help.Render(m.status), helpView)
}

func (m *Model) renderDetail() string {
	e := m.selected
	var b strings.Builder

	b.WriteString(styles.title.Render(e.Title))
	b.WriteString("\n")

	rows := [][2]string{
		{"When", formatter.When(*e)},
		{"Where", formatter.Where(*e)},
		{"Category", e.Category},
		{"Image", e.ImageURI},
	}
	if e.ParticipantLimit > 0 {
		rows = append(rows, [2]string{"Participants", strconv.Itoa(e.ParticipantLimit)})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(styles.label.Render(r[0]) + r[1] + "\n")
	}
	if e.Description != "" {
		b.WriteString("\n" + e.Description + "\n")
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
