package sqlite

import (
	"context"

	"user-game/internal/library"
)

func (s *SQLiteStore) InsertGame(ctx context.Context, game library.NewGame) (int64, error) {
	result, err := s.Exec(
		ctx,
		"insert game",
		`INSERT INTO Games (title, genre) VALUES (?, ?)`,
		game.Title,
		game.Genre,
	)
	if err != nil {
		return 0, insertError(err, library.ErrTitleTaken)
	}
	return insertedID("insert game", result)
}

func (s *SQLiteStore) ListGames(ctx context.Context) ([]library.Game, error) {
	rows, err := s.Query(ctx, "list games", `SELECT id, title, genre FROM Games ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]library.Game, 0)
	for rows.Next() {
		var game library.Game
		if err := rows.Scan(&game.ID, &game.Title, &game.Genre); err != nil {
			return nil, newStatementError("list games", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError("list games", err)
	}

	return games, nil
}
