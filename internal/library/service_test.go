package library

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

type fakeRepo struct {
	users         []User
	games         []Game
	userPurchases map[int64][]Purchase
	gamePurchases map[int64][]Purchase

	insertUserCalls int
	insertGameCalls int
	associateCalls  int

	lastUser      NewUser
	lastGame      NewGame
	lastOwnership NewOwnership

	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		userPurchases: make(map[int64][]Purchase),
		gamePurchases: make(map[int64][]Purchase),
	}
}

func (f *fakeRepo) InsertUser(_ context.Context, user NewUser) (int64, error) {
	f.insertUserCalls++
	f.lastUser = user
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.users = append(f.users, User{ID: int64(len(f.users) + 1), Name: user.Name, Email: user.Email})
	return int64(len(f.users)), nil
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]User, error) {
	return f.users, nil
}

func (f *fakeRepo) InsertGame(_ context.Context, game NewGame) (int64, error) {
	f.insertGameCalls++
	f.lastGame = game
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.games = append(f.games, Game{ID: int64(len(f.games) + 1), Title: game.Title, Genre: game.Genre})
	return int64(len(f.games)), nil
}

func (f *fakeRepo) ListGames(_ context.Context) ([]Game, error) {
	return f.games, nil
}

func (f *fakeRepo) AssociateUserGame(_ context.Context, ownership NewOwnership) (int64, error) {
	f.associateCalls++
	f.lastOwnership = ownership
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	return int64(f.associateCalls), nil
}

func (f *fakeRepo) ListUserGames(_ context.Context, userID int64) ([]Purchase, error) {
	return f.userPurchases[userID], nil
}

func (f *fakeRepo) ListGameUsers(_ context.Context, gameID int64) ([]Purchase, error) {
	return f.gamePurchases[gameID], nil
}

func TestServiceAddUserTrimsAndValidates(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	id, err := service.AddUser(context.Background(), NewUser{Name: "  Alice ", Email: " alice@example.com\t"})
	if err != nil {
		t.Fatalf("AddUser failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if repo.lastUser.Name != "Alice" || repo.lastUser.Email != "alice@example.com" {
		t.Fatalf("input not trimmed before repository call: %+v", repo.lastUser)
	}
}

func TestServiceAddUserRejectsInvalidInput(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	_, err := service.AddUser(context.Background(), NewUser{Name: "   ", Email: "not-an-email"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "name is required") || !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("expected field messages, got %q", err.Error())
	}
	if repo.insertUserCalls != 0 {
		t.Fatalf("repository should not be called for invalid input")
	}
}

func TestServiceAddGameRequiresTitleAndGenre(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)

	_, err := service.AddGame(context.Background(), NewGame{Title: "Chess"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "genre is required") {
		t.Fatalf("expected genre message, got %q", err.Error())
	}

	if _, err := service.AddGame(context.Background(), NewGame{Title: " Chess ", Genre: "Board"}); err != nil {
		t.Fatalf("AddGame failed: %v", err)
	}
	if repo.lastGame.Title != "Chess" {
		t.Fatalf("title not trimmed: %q", repo.lastGame.Title)
	}
}

func TestServiceAddGamePropagatesRepositoryError(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = ErrTitleTaken
	service := NewService(repo)

	_, err := service.AddGame(context.Background(), NewGame{Title: "Chess", Genre: "Board"})
	if !errors.Is(err, ErrTitleTaken) {
		t.Fatalf("expected ErrTitleTaken, got %v", err)
	}
}

func TestServiceAssociateUserGameOptionalFields(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	blank := "  "
	if _, err := service.AssociateUserGame(ctx, NewOwnership{UserID: 1, GameID: 2, PurchaseDate: &blank}); err != nil {
		t.Fatalf("AssociateUserGame failed: %v", err)
	}
	if repo.lastOwnership.PurchaseDate != nil {
		t.Fatalf("blank purchase date should be stored as NULL, got %q", *repo.lastOwnership.PurchaseDate)
	}

	date := "2024-03-01"
	price := 0.0
	if _, err := service.AssociateUserGame(ctx, NewOwnership{UserID: 1, GameID: 2, PurchaseDate: &date, Price: &price}); err != nil {
		t.Fatalf("AssociateUserGame with details failed: %v", err)
	}
	if repo.lastOwnership.Price == nil || *repo.lastOwnership.Price != 0 {
		t.Fatalf("zero price should be kept, got %+v", repo.lastOwnership.Price)
	}
}

func TestServiceAssociateUserGameRejectsBadFields(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	badDate := "03/01/2024"
	negative := -1.0
	_, err := service.AssociateUserGame(ctx, NewOwnership{UserID: 0, GameID: 1, PurchaseDate: &badDate, Price: &negative})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	for _, want := range []string{"user id must be greater than or equal to 1", "purchase date must use the format YYYY-MM-DD", "price must be greater than or equal to 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
	if repo.associateCalls != 0 {
		t.Fatalf("repository should not be called for invalid ownership")
	}
}

func TestServiceAssociateUserGameRejectsNonFinitePrice(t *testing.T) {
	repo := newFakeRepo()
	service := NewService(repo)
	ctx := context.Background()

	for _, price := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		value := price
		_, err := service.AssociateUserGame(ctx, NewOwnership{UserID: 1, GameID: 1, Price: &value})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("price %v: expected ErrInvalidInput, got %v", price, err)
		}
		if !strings.Contains(err.Error(), "price must be a finite number") {
			t.Fatalf("price %v: expected finite message, got %q", price, err.Error())
		}
	}
	if repo.associateCalls != 0 {
		t.Fatalf("repository should not be called for non-finite prices, got %d calls", repo.associateCalls)
	}
}
