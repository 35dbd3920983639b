package sqlite

import (
	"context"
	"fmt"
)

var schemaStatements = []struct {
	table string
	stmt  string
}{
	{
		table: "Users",
		stmt: `CREATE TABLE IF NOT EXISTS Users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE
		);`,
	},
	{
		table: "Games",
		stmt: `CREATE TABLE IF NOT EXISTS Games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			genre TEXT NOT NULL
		);`,
	},
	{
		table: "Users_Games",
		stmt: `CREATE TABLE IF NOT EXISTS Users_Games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			game_id INTEGER,
			purchase_date TEXT,
			price REAL,
			FOREIGN KEY(user_id) REFERENCES Users(id),
			FOREIGN KEY(game_id) REFERENCES Games(id)
		);`,
	},
}

// CreateSchema issues the create-if-absent statements in order and stops at
// the first failure. Tables created before the failure are kept.
func (s *SQLiteStore) CreateSchema(ctx context.Context) error {
	for _, item := range schemaStatements {
		if _, err := s.Exec(ctx, "create table "+item.table, item.stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
