package models

import (
	"strconv"
	"strings"
)

// Event is a row of the events table.
//
// Date and Time are expected as "YYYY-MM-DD" and "HH:MM" so that lexicographic ordering is chronological.
type Event struct {
	ID               int64  `db:"id" json:"id"`
	Title            string `db:"title" json:"title"`
	Description      string `db:"description" json:"description"`
	Location         string `db:"location" json:"location"`
	RoomNumber       string `db:"roomNumber" json:"roomNumber"`
	Address          string `db:"address" json:"address"`
	ZipCode          string `db:"zipCode" json:"zipCode"`
	Date             string `db:"date" json:"date"`
	Time             string `db:"time" json:"time"`
	EndTime          string `db:"endTime" json:"endTime"`
	Category         string `db:"category" json:"category"`
	ImageURI         string `db:"imageUri" json:"imageUri"`
	ParticipantLimit int    `db:"participantLimit" json:"participantLimit"`
}

// EventInput holds the fields a caller submits when creating an event.
//
// Zero values are stored as empty strings. ParticipantLimit is raw form input.
type EventInput struct {
	Title            string
	Description      string
	Location         string
	RoomNumber       string
	Address          string
	ZipCode          string
	Date             string
	Time             string
	EndTime          string
	Category         string
	ImageURI         string
	ParticipantLimit string
}

// ToEvent applies the participant limit coercion and returns the row to insert.
func (in EventInput) ToEvent() Event {
	limit, _ := ParseParticipantLimit(in.ParticipantLimit)
	return Event{
		Title:            in.Title,
		Description:      in.Description,
		Location:         in.Location,
		RoomNumber:       in.RoomNumber,
		Address:          in.Address,
		ZipCode:          in.ZipCode,
		Date:             in.Date,
		Time:             in.Time,
		EndTime:          in.EndTime,
		Category:         in.Category,
		ImageURI:         in.ImageURI,
		ParticipantLimit: limit,
	}
}

// ParseParticipantLimit reads the leading integer of s, ignoring leading whitespace and any trailing text.
//
// Empty input is (0, true). Input without a leading integer, or one that overflows, is (0, false).
func ParseParticipantLimit(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
