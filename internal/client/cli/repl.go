package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Clients(ctx context.Context) error
	AddClient(ctx context.Context) error
	Jobs(ctx context.Context) error
	AddJob(ctx context.Context) error
	Pay(ctx context.Context, jobID string) error
	Summary(ctx context.Context, jobID string) error
	Report(ctx context.Context) error
	Receivables(ctx context.Context) error
	Ask(ctx context.Context, query string) error
	Settings(ctx context.Context) error
	Logo(ctx context.Context, path string) error
	Export(ctx context.Context, path string) error
	Backup(ctx context.Context, path string) error
}

const (
	helpLoggedOut = "Available commands: register, login, help, exit"
	helpLoggedIn  = "Available commands: clients, addclient, jobs, addjob, pay <job>, summary <job>, " +
		"report, receivables, ask <question>, settings, logo <file>, export [file], backup [file], logout, help, exit"
)

// protected lists the commands that need a session.
var protected = map[string]bool{
	"logout": true, "clients": true, "addclient": true, "jobs": true, "addjob": true,
	"pay": true, "summary": true, "report": true, "receivables": true, "ask": true,
	"settings": true, "logo": true, "export": true, "backup": true,
}

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF, "exit" or "quit". Command errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gigbook %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first.")
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "clients":
			err = a.Clients(ctx)

		case "addclient":
			err = a.AddClient(ctx)

		case "jobs":
			err = a.Jobs(ctx)

		case "addjob":
			err = a.AddJob(ctx)

		case "pay", "summary":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <job id>", cmd))
				continue
			}
			if cmd == "pay" {
				err = a.Pay(ctx, args[0])
			} else {
				err = a.Summary(ctx, args[0])
			}

		case "report":
			err = a.Report(ctx)

		case "receivables":
			err = a.Receivables(ctx)

		case "ask":
			if len(args) == 0 {
				printlnFn("Usage: ask <question>")
				continue
			}
			err = a.Ask(ctx, strings.Join(args, " "))

		case "settings":
			err = a.Settings(ctx)

		case "logo":
			if len(args) != 1 {
				printlnFn("Usage: logo <image file>")
				continue
			}
			err = a.Logo(ctx, args[0])

		case "export":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			err = a.Export(ctx, path)

		case "backup":
			path := "gigbook-backup.json"
			if len(args) > 0 {
				path = args[0]
			}
			err = a.Backup(ctx, path)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}
