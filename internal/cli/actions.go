package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"user-game/internal/library"
)

// handleInputErr turns an abandoned prompt into a menu message. Read errors
// pass through so Run can stop.
func (a *app) handleInputErr(err error) error {
	if errors.Is(err, errTooManyAttempts) {
		fmt.Fprintln(a.out, "Invalid input. Returning to menu.")
		return nil
	}
	return err
}

func (a *app) addUser(ctx context.Context) error {
	name, err := promptLine(ctx, a.reader, a.out, "Enter name: ")
	if err != nil {
		return err
	}
	email, err := promptLine(ctx, a.reader, a.out, "Enter email: ")
	if err != nil {
		return err
	}

	id, err := a.lib.AddUser(ctx, library.NewUser{Name: name, Email: email})
	if err != nil {
		a.reportFailure("adding user", err)
		return nil
	}
	a.log.WithField("user_id", id).Info("user added")
	fmt.Fprintf(a.out, "User added successfully. (ID: %d)\n", id)
	return nil
}

func (a *app) addGame(ctx context.Context) error {
	title, err := promptLine(ctx, a.reader, a.out, "Enter title: ")
	if err != nil {
		return err
	}
	genre, err := promptLine(ctx, a.reader, a.out, "Enter genre: ")
	if err != nil {
		return err
	}

	id, err := a.lib.AddGame(ctx, library.NewGame{Title: title, Genre: genre})
	if err != nil {
		a.reportFailure("adding game", err)
		return nil
	}
	a.log.WithField("game_id", id).Info("game added")
	fmt.Fprintf(a.out, "Game added successfully. (ID: %d)\n", id)
	return nil
}

func (a *app) associateUserGame(ctx context.Context) error {
	userID, err := promptID(ctx, a.reader, a.out, "Enter User ID: ")
	if err != nil {
		return a.handleInputErr(err)
	}
	gameID, err := promptID(ctx, a.reader, a.out, "Enter Game ID: ")
	if err != nil {
		return a.handleInputErr(err)
	}
	purchaseDate, err := promptLine(ctx, a.reader, a.out, "Enter purchase date (YYYY-MM-DD, blank to skip): ")
	if err != nil {
		return err
	}
	price, err := promptOptionalPrice(ctx, a.reader, a.out, "Enter price (blank to skip): ")
	if err != nil {
		return a.handleInputErr(err)
	}

	id, err := a.lib.AssociateUserGame(ctx, library.NewOwnership{
		UserID:       userID,
		GameID:       gameID,
		PurchaseDate: &purchaseDate,
		Price:        price,
	})
	if err != nil {
		a.reportFailure("associating user with game", err)
		return nil
	}
	a.log.WithFields(logrus.Fields{
		"ownership_id": id,
		"user_id":      userID,
		"game_id":      gameID,
	}).Info("user associated with game")
	fmt.Fprintf(a.out, "User associated with game successfully. (ID: %d)\n", id)
	return nil
}

func (a *app) listUsers(ctx context.Context) {
	users, err := a.lib.ListUsers(ctx)
	if err != nil {
		a.reportFailure("listing users", err)
		return
	}

	fmt.Fprintln(a.out, "Users:")
	for _, user := range users {
		fmt.Fprintf(a.out, "ID: %d, Name: %s, Email: %s\n", user.ID, user.Name, user.Email)
	}
	fmt.Fprintln(a.out)
}

func (a *app) listGames(ctx context.Context) {
	games, err := a.lib.ListGames(ctx)
	if err != nil {
		a.reportFailure("listing games", err)
		return
	}

	fmt.Fprintln(a.out, "Games:")
	for _, game := range games {
		fmt.Fprintf(a.out, "ID: %d, Title: %s, Genre: %s\n", game.ID, game.Title, game.Genre)
	}
	fmt.Fprintln(a.out)
}

func (a *app) listUserGames(ctx context.Context) error {
	userID, err := promptID(ctx, a.reader, a.out, "Enter User ID: ")
	if err != nil {
		return a.handleInputErr(err)
	}

	purchases, err := a.lib.ListUserGames(ctx, userID)
	if err != nil {
		a.reportFailure("listing user's games", err)
		return nil
	}

	fmt.Fprintf(a.out, "Games associated with User ID %d:\n", userID)
	a.printPurchases(purchases)
	return nil
}

func (a *app) listGameUsers(ctx context.Context) error {
	gameID, err := promptID(ctx, a.reader, a.out, "Enter Game ID: ")
	if err != nil {
		return a.handleInputErr(err)
	}

	purchases, err := a.lib.ListGameUsers(ctx, gameID)
	if err != nil {
		a.reportFailure("listing game's users", err)
		return nil
	}

	fmt.Fprintf(a.out, "Users who have purchased Game ID %d:\n", gameID)
	a.printPurchases(purchases)
	return nil
}

func (a *app) printPurchases(purchases []library.Purchase) {
	for _, purchase := range purchases {
		fmt.Fprintf(
			a.out,
			"User: %s, Game: %s, Purchase Date: %s, Price: %s\n",
			purchase.UserName,
			purchase.GameTitle,
			formatDate(purchase.PurchaseDate),
			formatPrice(purchase.Price),
		)
	}
	fmt.Fprintln(a.out)
}
