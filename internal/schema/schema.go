package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// validIdentifier guards names that end up interpolated into SQL
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Domain names of the seedable databases
const (
	Shop    = "shop"
	Library = "library"
	Cinema  = "cinema"
	Clinic  = "clinic"
)

// Domains lists every seedable domain in the order "all" runs them
var Domains = []string{Shop, Library, Cinema, Clinic}

// DatabaseName trims and validates a database name
func DatabaseName(database string) (string, error) {
	db := strings.TrimSpace(database)
	if db == "" {
		return "", fmt.Errorf("database must be non-empty")
	}
	if !validIdentifier.MatchString(db) {
		return "", fmt.Errorf("invalid database name: %s", db)
	}
	return db, nil
}

func createDatabase(db string) string {
	return fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s
  DEFAULT CHARACTER SET utf8mb4
  DEFAULT COLLATE utf8mb4_0900_ai_ci`, db)
}

// ddl validates the database name and expands the %[1]s placeholder of each
// table statement with it
func ddl(database string, tables ...string) ([]string, error) {
	db, err := DatabaseName(database)
	if err != nil {
		return nil, err
	}
	stmts := []string{createDatabase(db)}
	for _, t := range tables {
		stmts = append(stmts, fmt.Sprintf(t, db))
	}
	return stmts, nil
}
