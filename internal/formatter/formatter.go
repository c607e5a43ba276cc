// package formatter renders events for the command line (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
)

// Format names accepted by [Render]
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists every supported format in help-text order
var Formats = []string{FormatText, FormatJSON, FormatCSV, FormatMarkdown}

var csvHeaders = []string{
	"ID", "Title", "Description", "Location", "RoomNumber", "Address", "ZipCode",
	"Date", "Time", "EndTime", "Category", "ImageURI", "ParticipantLimit",
}

// Render dispatches to the exporter for format. An empty format renders plain text.
func Render(events []models.Event, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return ExportToText(events)
	case FormatJSON:
		return ExportToJSON(events)
	case FormatCSV:
		return ExportToCSV(events)
	case FormatMarkdown, "md":
		return ExportToMarkdown(events)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want one of %s)",
			shared.ErrInvalidArgument, format, strings.Join(Formats, ", "))
	}
}

// ExportToCSV converts events to CSV with one header row and one record per event
func ExportToCSV(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range events {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Title,
			e.Description,
			e.Location,
			e.RoomNumber,
			e.Address,
			e.ZipCode,
			e.Date,
			e.Time,
			e.EndTime,
			e.Category,
			e.ImageURI,
			strconv.Itoa(e.ParticipantLimit),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts events to an indented JSON array
func ExportToJSON(events []models.Event) ([]byte, error) {
	if events == nil {
		events = []models.Event{}
	}
	return shared.MarshalJSON(events, true)
}

// ExportToMarkdown renders events as a Markdown document with one section per event
func ExportToMarkdown(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Events\n\n")
	buf.WriteString(fmt.Sprintf("**Count**: %d\n\n", len(events)))

	for _, e := range events {
		buf.WriteString(fmt.Sprintf("## %s\n\n", e.Title))

		if e.ImageURI != "" {
			buf.WriteString(fmt.Sprintf("![Image](%s)\n\n", e.ImageURI))
		}

		buf.WriteString(fmt.Sprintf("- **When**: %s\n", When(e)))
		buf.WriteString(fmt.Sprintf("- **Where**: %s\n", Where(e)))
		buf.WriteString(fmt.Sprintf("- **Category**: %s\n", e.Category))
		if e.ParticipantLimit > 0 {
			buf.WriteString(fmt.Sprintf("- **Participants**: up to %d\n", e.ParticipantLimit))
		}
		buf.WriteString("\n")

		if e.Description != "" {
			buf.WriteString(e.Description + "\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts events to plain text, one line per event
func ExportToText(events []models.Event) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Events: %d\n\n", len(events)))
	for _, e := range events {
		buf.WriteString(fmt.Sprintf("%d. %s - %s @ %s [%s]\n", e.ID, e.Title, When(e), Where(e), e.Category))
	}

	return buf.Bytes(), nil
}

// EventDetail renders every field of a single event as aligned "Key: value" lines
func EventDetail(e models.Event) []byte {
	var buf bytes.Buffer

	rows := [][2]string{
		{"ID", strconv.FormatInt(e.ID, 10)},
		{"Title", e.Title},
		{"Description", e.Description},
		{"When", When(e)},
		{"Where", Where(e)},
		{"Category", e.Category},
		{"Image", e.ImageURI},
		{"Participants", strconv.Itoa(e.ParticipantLimit)},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		buf.WriteString(fmt.Sprintf("%-13s %s\n", r[0]+":", r[1]))
	}

	return buf.Bytes()
}

// When joins date, start and end time, skipping the parts that are empty
func When(e models.Event) string {
	when := e.Date
	if e.Time != "" {
		when = strings.TrimSpace(when + " " + e.Time)
	}
	if e.EndTime != "" {
		when += "-" + e.EndTime
	}
	return when
}

// Where joins location, room and address, skipping the parts that are empty
func Where(e models.Event) string {
	parts := []string{}
	for _, p := range []string{e.Location, e.RoomNumber, e.Address, e.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// WriteExport renders events in format and writes them to path, or to w when path is empty.
func WriteExport(w io.Writer, events []models.Event, format, path string) error {
	data, err := Render(events, format)
	if err != nil {
		return err
	}

	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", format, err)
	}
	return nil
}
