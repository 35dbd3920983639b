package sqlite

import (
	"context"
	"database/sql"

	"user-game/internal/library"
)

const purchaseSelect = `SELECT Users.name, Games.title, Users_Games.purchase_date, Users_Games.price
	FROM Users
	JOIN Users_Games ON Users.id = Users_Games.user_id
	JOIN Games ON Users_Games.game_id = Games.id`

// AssociateUserGame records an ownership row. Whether unknown user or game ids
// are rejected depends on the foreign_keys pragma chosen at Open.
func (s *SQLiteStore) AssociateUserGame(ctx context.Context, ownership library.NewOwnership) (int64, error) {
	result, err := s.Exec(
		ctx,
		"associate user with game",
		`INSERT INTO Users_Games (user_id, game_id, purchase_date, price) VALUES (?, ?, ?, ?)`,
		ownership.UserID,
		ownership.GameID,
		ownership.PurchaseDate,
		ownership.Price,
	)
	if err != nil {
		return 0, insertError(err, nil)
	}
	return insertedID("associate user with game", result)
}

func (s *SQLiteStore) ListUserGames(ctx context.Context, userID int64) ([]library.Purchase, error) {
	return s.listPurchases(
		ctx,
		"list games of user",
		purchaseSelect+` WHERE Users.id = ? ORDER BY Users_Games.id ASC`,
		userID,
	)
}

func (s *SQLiteStore) ListGameUsers(ctx context.Context, gameID int64) ([]library.Purchase, error) {
	return s.listPurchases(
		ctx,
		"list users of game",
		purchaseSelect+` WHERE Games.id = ? ORDER BY Users_Games.id ASC`,
		gameID,
	)
}

func (s *SQLiteStore) listPurchases(ctx context.Context, op, stmt string, id int64) ([]library.Purchase, error) {
	rows, err := s.Query(ctx, op, stmt, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := make([]library.Purchase, 0)
	for rows.Next() {
		var (
			purchase     library.Purchase
			purchaseDate sql.NullString
			price        sql.NullFloat64
		)
		if err := rows.Scan(&purchase.UserName, &purchase.GameTitle, &purchaseDate, &price); err != nil {
			return nil, newStatementError(op, err)
		}
		if purchaseDate.Valid {
			purchase.PurchaseDate = &purchaseDate.String
		}
		if price.Valid {
			purchase.Price = &price.Float64
		}
		purchases = append(purchases, purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, newStatementError(op, err)
	}

	return purchases, nil
}
