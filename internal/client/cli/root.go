package cli

import (
	"context"
	"fmt"
)

const welcomeText = `Welcome to EpicQuest!
Register or log in, then use 'draw' to pull a hero card.
You get a limited number of draws per day with a pause between them.
Type 'help' to list the commands.`

func (a *App) getStatus() string {
	s := ""
	a.mu.RLock()
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode)
	a.mu.RUnlock()

	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up the player left signed in by a previous run.
func (a *App) restoreSession(ctx context.Context) {
	u, err := a.users.CurrentUser(ctx).Await(ctx)
	if err != nil || u == nil {
		return
	}
	a.setUserName(u.Username)
	a.printf("Welcome back, %s!\n", u.Username)
}

// Root runs the interactive session until the user exits or input ends.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("EpicQuest CLI (type 'help' for commands)")

	if a.session.IsFirstTime(ctx) {
		a.println(welcomeText)
		if err := a.session.SetFirstTimeCompleted(ctx); err != nil {
			a.logger.Warn(ctx, "first run flag not saved", "error", err)
		}
	}

	a.restoreSession(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
