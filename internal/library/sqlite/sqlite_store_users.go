package sqlite

import (
	"context"

	"user-game/internal/library"
)

func (s *SQLiteStore) InsertUser(ctx context.Context, user library.NewUser) (int64, error) {
	result, err := s.Exec(
		ctx,
		"insert user",
		`INSERT INTO Users (name, email) VALUES (?, ?)`,
		user.Name,
		user.Email,
	)
	if err != nil {
		return 0, insertError(err, library.ErrEmailTaken)
	}
	return insertedID("insert user", result)
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]library.User, error) {
	rows, err := s.Query(ctx, "list users", `SELECT id, name, email FROM Users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]library.User, 0)
	for rows.Next() {
		var user library.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, newStatementError("list users", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError("list users", err)
	}

	return users, nil
}
