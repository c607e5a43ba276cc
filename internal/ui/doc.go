// Package ui implements an interactive terminal event browser using bubbletea's Elm architecture.
//
// Two views:
//  1. [EventListView] : Browse events, newest first, with fuzzy filtering
//  2. [EventDetailView] : Every field of the selected event
//
// The [Model] implements bubbletea's Init/Update/View pattern. Reads go through an [EventSource]
// whose futures are awaited inside tea.Cmd functions, so the render loop never blocks on the store.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
