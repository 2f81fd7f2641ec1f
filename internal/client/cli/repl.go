package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Navigate(path string)
	Render(ctx context.Context) error
	Logout(ctx context.Context) error
	Status() string
}

// pageCommands maps navigation commands to client paths.
var pageCommands = map[string]string{
	"home":     common.PathHome,
	"profile":  common.PathProfile,
	"login":    common.PathLoginPage,
	"register": common.PathRegisterPage,
	"forgot":   common.PathForgotPassPage,
}

// runREPL starts a simple read–eval–print loop for the gophauth CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help            show available commands
//	  - home            home page
//	  - login           sign in
//	  - register        create and verify an account
//	  - forgot          reset a forgotten password
//	  - profile         account page (redirects to login)
//	  - status          show auth state
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - help, home, profile, status, exit | quit
//	  - logout          sign out
//
// Navigation commands go through the route guards, so "login" while signed in
// lands on the home page. Errors returned by handlers other than I/O are
// reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gophauth %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if path, ok := pageCommands[cmd]; ok {
			a.Navigate(path)
			if err := a.Render(ctx); err != nil {
				return
			}
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, profile, status, logout, exit")
			} else {
				printlnFn("Available commands: home, login, register, forgot, profile, status, exit")
			}

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			printlnFn(a.Status())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
