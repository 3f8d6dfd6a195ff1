package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type access int

const (
	accessGuest access = iota
	accessAdmin
	accessStandard
)

// commands lists what each kind of session may run, in help order.
var commands = map[access][]string{
	accessGuest: {"login", "help", "exit"},
	accessAdmin: {
		"list", "add", "delete", "edit", "toggle", "sort", "filter", "search",
		"stats", "history", "logout", "help", "exit",
	},
	accessStandard: {"order", "orders", "logout", "help", "exit"},
}

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	access() access
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Exit(ctx context.Context) error

	List(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Toggle(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error

	Order(ctx context.Context) error
	Orders(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// Commands not available to the current session are reported as unknown.
// Handler errors are printed and the loop goes on. The loop ends on "exit"
// ("quit") or end of input; both call a.Exit so an open session is closed.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ud %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if err := a.Exit(ctx); err != nil {
				printlnFn("Error:", err)
			}
			return
		}
		err = nil

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		if cmd == "quit" {
			cmd = "exit"
		}

		if !slices.Contains(commands[a.access()], cmd) {
			printlnFn("Unknown command:", cmd)
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: " + strings.Join(commands[a.access()], ", "))
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "list":
			err = a.List(ctx)
		case "add":
			err = a.Add(ctx)
		case "delete":
			err = a.Delete(ctx, args)
		case "edit":
			err = a.Edit(ctx, args)
		case "toggle":
			err = a.Toggle(ctx, args)
		case "sort":
			err = a.Sort(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "stats":
			err = a.Stats(ctx, args)
		case "history":
			err = a.History(ctx, args)
		case "order":
			err = a.Order(ctx)
		case "orders":
			err = a.Orders(ctx)
		case "exit":
			if err := a.Exit(ctx); err != nil {
				printlnFn("Error:", err)
			}
			printlnFn("Bye!")
			return
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
