package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for REPL output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Draw(ctx context.Context) error
	Collection(ctx context.Context) error
	Stats(ctx context.Context) error
	Cooldown(ctx context.Context) error
	Reset(ctx context.Context) error
	Share(ctx context.Context) error
	CloudSignUp(ctx context.Context) error
	CloudLogin(ctx context.Context) error
	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: draw, (c)ollection, stats, cooldown, reset, share, " +
		"cloud-signup, cloud-login, backup, restore, logout, exit"
)

// runREPL reads commands line by line from r and dispatches them to a.
// Handler errors are reported and the loop goes on; it ends on EOF,
// "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("eq %s> ", statusFn()))

		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		handler, ok := dispatch(a, cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if handler == nil {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}
		if err := handler(ctx); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}

// dispatch resolves cmd to a handler. A nil handler with ok=true means help.
func dispatch(a execIface, cmd string) (func(context.Context) error, bool) {
	switch cmd {
	case "help", "?":
		return nil, true
	case "register":
		return a.Register, true
	case "login":
		return a.Login, true
	case "logout":
		return a.Logout, true
	case "draw":
		return a.Draw, true
	case "c", "collection":
		return a.Collection, true
	case "stats":
		return a.Stats, true
	case "cooldown":
		return a.Cooldown, true
	case "reset":
		return a.Reset, true
	case "share":
		return a.Share, true
	case "cloud-signup":
		return a.CloudSignUp, true
	case "cloud-login":
		return a.CloudLogin, true
	case "backup":
		return a.Backup, true
	case "restore":
		return a.Restore, true
	default:
		return nil, false
	}
}
