package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"user-game/internal/library"
)

// Library is the set of record operations the menu dispatches to.
type Library interface {
	AddUser(ctx context.Context, user library.NewUser) (int64, error)
	AddGame(ctx context.Context, game library.NewGame) (int64, error)
	AssociateUserGame(ctx context.Context, ownership library.NewOwnership) (int64, error)
	ListUsers(ctx context.Context) ([]library.User, error)
	ListGames(ctx context.Context) ([]library.Game, error)
	ListUserGames(ctx context.Context, userID int64) ([]library.Purchase, error)
	ListGameUsers(ctx context.Context, gameID int64) ([]library.Purchase, error)
}

const (
	optionExit = iota
	optionAddUser
	optionAddGame
	optionAssociate
	optionListUsers
	optionListGames
	optionListUserGames
	optionListGameUsers
)

type app struct {
	lib    Library
	log    logrus.FieldLogger
	reader *lineReader
	out    io.Writer
}

// Run drives the menu until the operator picks 0, input ends, or ctx is
// cancelled. Record operation failures are printed and logged; only I/O
// errors are returned.
func Run(ctx context.Context, in io.Reader, out io.Writer, lib Library, log logrus.FieldLogger) error {
	if lib == nil {
		return errors.New("library is required")
	}
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	a := &app{
		lib:    lib,
		log:    log,
		reader: newLineReader(in),
		out:    out,
	}
	defer a.reader.Close()

	for {
		printMenu(out)

		line, err := a.reader.ReadLine(ctx)
		if err != nil {
			return a.stop(err)
		}

		choice, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(out, "Invalid input. Please enter a number.")
			continue
		}

		if choice == optionExit {
			fmt.Fprintln(out, "Exiting...")
			return nil
		}

		if err := a.dispatch(ctx, choice); err != nil {
			return a.stop(err)
		}
	}
}

// stop ends the session. End of input and cancellation are clean exits.
func (a *app) stop(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		fmt.Fprintln(a.out)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Exiting...")
		return nil
	}
	return err
}

func (a *app) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case optionAddUser:
		return a.addUser(ctx)
	case optionAddGame:
		return a.addGame(ctx)
	case optionAssociate:
		return a.associateUserGame(ctx)
	case optionListUsers:
		a.listUsers(ctx)
	case optionListGames:
		a.listGames(ctx)
	case optionListUserGames:
		return a.listUserGames(ctx)
	case optionListGameUsers:
		return a.listGameUsers(ctx)
	default:
		fmt.Fprintln(a.out, "Invalid option. Please try again.")
	}
	return nil
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out, "Menu:")
	fmt.Fprintln(out, "1. Add User")
	fmt.Fprintln(out, "2. Add Game")
	fmt.Fprintln(out, "3. Associate User with Game")
	fmt.Fprintln(out, "4. List Users")
	fmt.Fprintln(out, "5. List Games")
	fmt.Fprintln(out, "6. List Games of a User")
	fmt.Fprintln(out, "7. List Users of a Game")
	fmt.Fprintln(out, "0. Exit")
	fmt.Fprint(out, "Choose an option: ")
}

// reportFailure logs the full error chain and shows the operator one line.
func (a *app) reportFailure(action string, err error) {
	a.log.WithError(err).WithField("action", action).Error("operation failed")
	fmt.Fprintf(a.out, "Error %s: %v\n", action, err)
}
