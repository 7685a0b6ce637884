package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/epicquest/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	name, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return name, password, nil
}

// Register creates a local account and signs it in.
func (a *App) Register(ctx context.Context) error {
	name, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	u, err := a.users.Register(ctx, name, string(password), email).Await(ctx)
	if err != nil {
		return err
	}

	a.setUserName(u.Username)
	a.printf("Welcome, %s! You have %d draws today.\n", u.Username, u.DailyOpportunities)
	return nil
}

// Login signs in a registered player.
func (a *App) Login(ctx context.Context) error {
	name, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.users.Login(ctx, name, string(password)).Await(ctx)
	if err != nil {
		a.logger.Info(ctx, "login failed", "user", name)
		return err
	}

	a.setUserName(u.Username)
	a.printf("Logged in as %s. Cards: %d, draws left today: %d\n",
		u.Username, len(u.Collection), u.DailyOpportunities)
	return nil
}

// Logout ends the local session. Cloud sign-in is dropped as well.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.users.Logout(ctx).Await(ctx); err != nil {
		return err
	}
	if err := a.cloud.SignOut(ctx); err != nil {
		a.logger.Warn(ctx, "cloud sign out", "error", err)
	}
	a.setUserName("")
	a.println("Logged out.")
	return nil
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return fmt.Errorf("%w: log in first", common.ErrNoActiveSession)
	}
	return nil
}
