package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ApplyMigrations runs all *.up.sql files from migrationsPath in name order.
// Migrations use IF NOT EXISTS, so every suite may apply them again.
func ApplyMigrations(db *sql.DB, migrationsPath string) error {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	return execFiles(db, migrationsPath, files, "migration")
}

// execFiles executes each SQL file as a single multi-statement batch
func execFiles(db *sql.DB, dir string, files []string, kind string) error {
	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return fmt.Errorf("read %s %s: %w", kind, file, err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("apply %s %s: %w", kind, file, err)
		}
	}
	return nil
}
