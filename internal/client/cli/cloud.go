package cli

import (
	"context"

	"github.com/dmitrijs2005/epicquest/internal/common"
)

func (a *App) readCloudCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter cloud email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) CloudSignUp(ctx context.Context) error {
	email, password, err := a.readCloudCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.cloud.SignUp(ctx, email, password); err != nil {
		return err
	}
	a.setMode(ctx, ModeOnline)
	a.printf("Cloud account %s created.\n", email)
	return nil
}

func (a *App) CloudLogin(ctx context.Context) error {
	email, password, err := a.readCloudCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.cloud.SignIn(ctx, email, password); err != nil {
		return err
	}
	a.setMode(ctx, ModeOnline)
	a.printf("Signed in to the cloud as %s.\n", email)
	return nil
}

func (a *App) Backup(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	n, err := a.backup.Backup(ctx)
	if err != nil {
		return err
	}
	a.printf("Backed up %d cards.\n", n)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	n, err := a.backup.Restore(ctx)
	if err != nil {
		return err
	}
	a.printf("Restored %d cards.\n", n)
	return nil
}
