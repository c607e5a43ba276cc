package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/campus/internal/formatter"
	"github.com/desertthunder/campus/internal/models"
)

var _ list.Item = eventItem{}

// eventItem wraps [models.Event] to implement [list.Item].
type eventItem struct {
	event models.Event
}

func (i eventItem) FilterValue() string { return i.event.Title + " " + i.event.Category }
func (i eventItem) Title() string       { return i.event.Title }
func (i eventItem) Description() string {
	desc := formatter.When(i.event)
	if where := formatter.Where(i.event); where != "" {
		desc = fmt.Sprintf("%s • %s", desc, where)
	}
	if i.event.Category != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.event.Category)
	}
	return desc
}

func eventItems(events []models.Event) []list.Item {
	items := make([]list.Item, len(events))
	for i, e := range events {
		items[i] = eventItem{event: e}
	}
	return items
}
