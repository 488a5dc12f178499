package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	inAuthArea() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Feed(ctx context.Context) error
	Post(ctx context.Context) error
	Mine(ctx context.Context) error
	Delete(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the bookwarm CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn). The available commands
// follow the active navigation area:
//
//	Auth area (signed out):
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Main area (signed in):
//	  - help           — show available commands
//	  - feed | f       — browse all recommendations
//	  - post           — share a book recommendation
//	  - mine           — list your own recommendations
//	  - delete         — remove one of your recommendations
//	  - whoami         — show the signed-in user
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("bw> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if a.inAuthArea() {
			switch cmd {
			case "help":
				printlnFn("Available commands: register, login, exit")

			case "register":
				_ = a.Register(ctx)

			case "login":
				_ = a.Login(ctx)

			case "exit", "quit":
				printlnFn("Bye!")
				return

			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: (f)eed, post, mine, delete, whoami, logout, exit")

		case "f", "feed":
			_ = a.Feed(ctx)

		case "post":
			_ = a.Post(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
