package shared

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestSchema(t *testing.T) {
	t.Run("loadSchema", func(t *testing.T) {
		files, err := loadSchema()
		if err != nil {
			t.Fatalf("failed to load schema: %v", err)
		}

		if len(files) == 0 {
			t.Fatal("expected at least one schema file")
		}

		for i := 1; i < len(files); i++ {
			if files[i].Name <= files[i-1].Name {
				t.Errorf("schema files not sorted: %s comes after %s", files[i].Name, files[i-1].Name)
			}
		}

		for _, f := range files {
			if len(f.Statements) == 0 {
				t.Errorf("schema file %s has no statements", f.Name)
			}
		}
	})

	t.Run("EnsureSchema creates tables", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := EnsureSchema(context.Background(), db); err != nil {
			t.Fatalf("failed to ensure schema: %v", err)
		}

		for _, table := range []string{"users", "events"} {
			if _, err := db.Exec("SELECT 1 FROM " + table + " LIMIT 1"); err != nil {
				t.Errorf("%s table should exist: %v", table, err)
			}
		}

		var limit int
		if _, err := db.Exec(`INSERT INTO events (title, location, date, category) VALUES ('t', 'l', '2024-01-01', 'c')`); err != nil {
			t.Fatalf("failed to insert event: %v", err)
		}
		if err := db.Get(&limit, "SELECT participantLimit FROM events LIMIT 1"); err != nil {
			t.Fatalf("failed to read participantLimit: %v", err)
		}
		if limit != 0 {
			t.Errorf("expected participantLimit default 0, got %d", limit)
		}
	})

	t.Run("EnsureSchema is idempotent", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		if err := ConfigureDatabase(db); err != nil {
			t.Fatalf("failed to configure database: %v", err)
		}

		ctx := context.Background()
		var wg sync.WaitGroup
		errs := make(chan error, 4)
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- EnsureSchema(ctx, db)
			}()
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			if err != nil {
				t.Errorf("repeated schema setup should not fail: %v", err)
			}
		}
	})

	t.Run("splitStatements", func(t *testing.T) {
		script := "-- header\nCREATE TABLE a (id INTEGER); -- trailing\n\n;CREATE TABLE b (id INTEGER);"
		stmts := splitStatements(script)
		if len(stmts) != 2 {
			t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
		}
		if stmts[0] != "CREATE TABLE a (id INTEGER)" {
			t.Errorf("unexpected first statement: %q", stmts[0])
		}
	})

	t.Run("splitStatements ignores semicolons in comments", func(t *testing.T) {
		script := "-- keys; never updated\nCREATE TABLE a (\n  id INTEGER -- pk; auto\n);\nCREATE TABLE b (id INTEGER);"
		stmts := splitStatements(script)
		if len(stmts) != 2 {
			t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
		}
		if stmts[0] != "CREATE TABLE a (\nid INTEGER\n)" {
			t.Errorf("unexpected first statement: %q", stmts[0])
		}
		if stmts[1] != "CREATE TABLE b (id INTEGER)" {
			t.Errorf("unexpected second statement: %q", stmts[1])
		}
	})

	t.Run("embedded scripts contain no comment text", func(t *testing.T) {
		files, err := loadSchema()
		if err != nil {
			t.Fatalf("failed to load schema: %v", err)
		}
		for _, f := range files {
			for _, stmt := range f.Statements {
				if !strings.HasPrefix(stmt, "CREATE") {
					t.Errorf("%s: statement does not start with CREATE: %q", f.Name, stmt)
				}
			}
		}
	})
}

func TestIsMemoryPath(t *testing.T) {
	tc := []struct {
		path string
		want bool
	}{
		{path: ":memory:", want: true},
		{path: "file::memory:?cache=shared", want: true},
		{path: "file:events?mode=memory&cache=shared", want: true},
		{path: "file:events.db?mode=rwc", want: false},
		{path: "/tmp/events.db", want: false},
		{path: "memory.db", want: false},
	}

	for _, tt := range tc {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsMemoryPath(tt.path); got != tt.want {
				t.Errorf("IsMemoryPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
