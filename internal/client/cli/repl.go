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
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	ChangeDir(ctx context.Context, args []string) error
	Mkdir(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Info(ctx context.Context, args []string) error
}

type command func(execIface, context.Context, []string) error

var (
	publicCommands = map[string]command{
		"register": execIface.Register,
		"login":    execIface.Login,
		"status":   execIface.Status,
		"stats":    execIface.Stats,
	}
	sessionCommands = map[string]command{
		"logout": execIface.Logout,
		"whoami": execIface.Whoami,
		"ls":     execIface.List,
		"cd":     execIface.ChangeDir,
		"mkdir":  execIface.Mkdir,
		"upload": execIface.Upload,
		"info":   execIface.Info,
	}
)

// runREPL reads commands line by line and dispatches them to a.
//
//	Not logged in:  help, register, login, status, stats, exit
//	Logged in:      help, ls [page], cd <id>|..|/, mkdir <name> [public],
//	                upload <path> [public], info <id>, whoami, status, stats,
//	                logout, exit
//
// A failing command prints its error and the loop goes on. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: ls, cd, mkdir, upload, info, whoami, status, stats, logout, exit")
			} else {
				printlnFn("Available commands: register, login, status, stats, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		f, ok := publicCommands[cmd]
		if !ok {
			f, ok = sessionCommands[cmd]
			if ok && !a.isLoggedIn() {
				printlnFn("Please log in first")
				continue
			}
		}
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err := f(a, ctx, args); err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}
