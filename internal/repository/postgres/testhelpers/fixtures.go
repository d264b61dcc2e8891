package testhelpers

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadFixtures executes fixture files from fixturesPath in the given order
func LoadFixtures(db *sql.DB, fixturesPath string, files []string) error {
	return execFiles(db, fixturesPath, files, "fixture")
}

// GetIDByCode returns the id of the first row in table with the given code (case-insensitive)
func GetIDByCode(db *sql.DB, table, code string) (int64, error) {
	var id int64
	err := db.QueryRowContext(context.Background(),
		fmt.Sprintf("SELECT id FROM %s WHERE upper(code) = upper($1) ORDER BY id LIMIT 1", table), code).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("get %s id by code %s: %w", table, code, err)
	}
	return id, nil
}
