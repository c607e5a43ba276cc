package shared

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// SchemaFile is one embedded schema script. Scripts are additive and idempotent
// (CREATE ... IF NOT EXISTS), so they are re-run on every initialization.
type SchemaFile struct {
	Name       string
	Statements []string
}

// loadSchema reads all schema files from the embedded filesystem, sorted by file name.
func loadSchema() ([]SchemaFile, error) {
	entries, err := schemaFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	var files []SchemaFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		content, err := schemaFiles.ReadFile(path.Join("sql", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file %s: %w", name, err)
		}

		files = append(files, SchemaFile{Name: name, Statements: splitStatements(string(content))})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// EnsureSchema creates every table and index that does not exist yet, within one transaction.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	files, err := loadSchema()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, file := range files {
		for _, stmt := range file.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%s: failed to execute statement: %w\nStatement: %s", file.Name, err, stmt)
			}
		}
	}

	return tx.Commit()
}

// splitStatements strips comments from script, then splits it on semicolons,
// dropping empty statements.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(removeComments(script), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// removeComments removes -- line comments from a script.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
