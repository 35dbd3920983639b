package library

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrTitleTaken       = errors.New("game title already exists")
	ErrUnknownReference = errors.New("user or game does not exist")
	ErrInvalidInput     = errors.New("invalid input")
)

type User struct {
	ID    int64
	Name  string
	Email string
}

type Game struct {
	ID    int64
	Title string
	Genre string
}

// Purchase is one joined Users_Games row as shown to the operator.
// PurchaseDate and Price are nil when the ownership row left them NULL.
type Purchase struct {
	UserName     string
	GameTitle    string
	PurchaseDate *string
	Price        *float64
}

type NewUser struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

type NewGame struct {
	Title string `validate:"required"`
	Genre string `validate:"required"`
}

type NewOwnership struct {
	UserID       int64    `validate:"gte=1"`
	GameID       int64    `validate:"gte=1"`
	PurchaseDate *string  `validate:"omitempty,datetime=2006-01-02"`
	Price        *float64 `validate:"omitempty,finite,gte=0"`
}

type UserRepository interface {
	InsertUser(ctx context.Context, user NewUser) (int64, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type GameRepository interface {
	InsertGame(ctx context.Context, game NewGame) (int64, error)
	ListGames(ctx context.Context) ([]Game, error)
}

type OwnershipRepository interface {
	AssociateUserGame(ctx context.Context, ownership NewOwnership) (int64, error)
	ListUserGames(ctx context.Context, userID int64) ([]Purchase, error)
	ListGameUsers(ctx context.Context, gameID int64) ([]Purchase, error)
}

type Repository interface {
	UserRepository
	GameRepository
	OwnershipRepository
}
