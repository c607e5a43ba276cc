package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/campus/internal/models"
	"github.com/desertthunder/campus/internal/shared"
	th "github.com/desertthunder/campus/internal/testing"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{
			ID:               2,
			Title:            "Career Fair",
			Description:      "Meet employers, bring a résumé",
			Location:         "Gym",
			RoomNumber:       "101",
			Address:          "1 College Ave",
			ZipCode:          "12345",
			Date:             "2024-05-01",
			Time:             "10:00",
			EndTime:          "14:00",
			Category:         "career",
			ImageURI:         "file:///tmp/fair.png",
			ParticipantLimit: 200,
		},
		{
			ID:       1,
			Title:    "Study Group",
			Location: "Library",
			Date:     "2024-04-01",
			Category: "academic",
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleEvents())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 records, got %d", len(records))
		}
		if strings.Join(records[0], ",") != strings.Join(csvHeaders, ",") {
			t.Errorf("unexpected headers: %v", records[0])
		}
		if records[1][0] != "2" || records[1][1] != "Career Fair" || records[1][12] != "200" {
			t.Errorf("unexpected first record: %v", records[1])
		}
		if records[2][12] != "0" {
			t.Errorf("expected participant limit 0, got %s", records[2][12])
		}
	})

	t.Run("ExportToCSV empty", func(t *testing.T) {
		data, err := ExportToCSV(nil)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected only the header row, got %q", data)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleEvents())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 2 {
			t.Fatalf("expected 2 events, got %d", len(decoded))
		}
		for _, key := range []string{"roomNumber", "zipCode", "imageUri", "participantLimit", "endTime"} {
			if _, ok := decoded[0][key]; !ok {
				t.Errorf("JSON missing key %s", key)
			}
		}
	})

	t.Run("ExportToJSON nil", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleEvents())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Events",
			"**Count**: 2",
			"## Career Fair",
			"![Image](file:///tmp/fair.png)",
			"- **When**: 2024-05-01 10:00-14:00",
			"- **Where**: Gym, 101, 1 College Ave, 12345",
			"- **Participants**: up to 200",
			"## Study Group",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
		if strings.Count(output, "Participants") != 1 {
			t.Error("events without a limit should not list participants")
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleEvents())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Events: 2") {
			t.Errorf("text missing count, got: %s", output)
		}
		if !strings.Contains(output, "2. Career Fair - 2024-05-01 10:00-14:00 @ Gym, 101, 1 College Ave, 12345 [career]") {
			t.Errorf("text missing first event line, got: %s", output)
		}
		if !strings.Contains(output, "1. Study Group - 2024-04-01 @ Library [academic]") {
			t.Errorf("text missing second event line, got: %s", output)
		}
	})

	t.Run("EventDetail", func(t *testing.T) {
		output := string(EventDetail(sampleEvents()[1]))
		if !strings.Contains(output, "Title:") || !strings.Contains(output, "Study Group") {
			t.Errorf("detail missing title, got: %s", output)
		}
		if strings.Contains(output, "Description:") || strings.Contains(output, "Image:") {
			t.Errorf("detail should skip empty fields, got: %s", output)
		}
	})
}

func TestRender(t *testing.T) {
	tc := []struct {
		format string
		want   string
	}{
		{format: "", want: "Events: 2"},
		{format: FormatText, want: "Events: 2"},
		{format: FormatJSON, want: `"title": "Career Fair"`},
		{format: FormatCSV, want: "ID,Title"},
		{format: FormatMarkdown, want: "# Events"},
		{format: "md", want: "# Events"},
		{format: "JSON", want: `"title"`},
	}

	for _, tt := range tc {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Render(sampleEvents(), tt.format)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("expected output to contain %q, got: %s", tt.want, data)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Render(sampleEvents(), "yaml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("ToWriter", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WriteExport(&buf, sampleEvents(), FormatCSV, ""); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if !strings.HasPrefix(buf.String(), "ID,Title") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("ToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "events.md")
		if err := WriteExport(nil, sampleEvents(), FormatMarkdown, path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.Contains(content, "## Career Fair") {
			t.Errorf("file missing event section, got: %s", content)
		}
	})

	t.Run("WriterError", func(t *testing.T) {
		if err := WriteExport(&th.FWriter{}, sampleEvents(), FormatText, ""); err == nil {
			t.Error("expected write error")
		}
	})

	t.Run("BadDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "events.csv")
		if err := WriteExport(nil, sampleEvents(), FormatCSV, path); err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}
