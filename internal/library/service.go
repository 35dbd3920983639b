package library

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service normalizes and validates operator input before it reaches the
// repository. Reads pass straight through.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	validate := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("finite", isFinite)

	return &Service{
		repo:     repo,
		validate: validate,
	}
}

func isFinite(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

func (s *Service) AddUser(ctx context.Context, user NewUser) (int64, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if err := s.check(user); err != nil {
		return 0, err
	}
	return s.repo.InsertUser(ctx, user)
}

func (s *Service) AddGame(ctx context.Context, game NewGame) (int64, error) {
	game.Title = strings.TrimSpace(game.Title)
	game.Genre = strings.TrimSpace(game.Genre)
	if err := s.check(game); err != nil {
		return 0, err
	}
	return s.repo.InsertGame(ctx, game)
}

func (s *Service) AssociateUserGame(ctx context.Context, ownership NewOwnership) (int64, error) {
	if ownership.PurchaseDate != nil {
		date := strings.TrimSpace(*ownership.PurchaseDate)
		if date == "" {
			ownership.PurchaseDate = nil
		} else {
			ownership.PurchaseDate = &date
		}
	}
	if err := s.check(ownership); err != nil {
		return 0, err
	}
	return s.repo.AssociateUserGame(ctx, ownership)
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) ListGames(ctx context.Context) ([]Game, error) {
	return s.repo.ListGames(ctx)
}

func (s *Service) ListUserGames(ctx context.Context, userID int64) ([]Purchase, error) {
	return s.repo.ListUserGames(ctx, userID)
}

func (s *Service) ListGameUsers(ctx context.Context, gameID int64) ([]Purchase, error) {
	return s.repo.ListGameUsers(ctx, gameID)
}

func (s *Service) check(input any) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, describeFieldError(fieldErr))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(messages, "; "))
}

func describeFieldError(e validator.FieldError) string {
	field := fieldLabel(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "datetime":
		return field + " must use the format YYYY-MM-DD"
	case "finite":
		return field + " must be a finite number"
	case "gte":
		return field + " must be greater than or equal to " + e.Param()
	default:
		return field + " is invalid"
	}
}

func fieldLabel(field string) string {
	switch field {
	case "UserID":
		return "user id"
	case "GameID":
		return "game id"
	case "PurchaseDate":
		return "purchase date"
	default:
		return strings.ToLower(field)
	}
}
