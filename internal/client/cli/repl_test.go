package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Register(ctx context.Context, args []string) error {
	return f.record("register", args)
}
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(ctx context.Context, args []string) error {
	f.loggedIn = false
	return f.record("logout", args)
}
func (f *fakeExec) Whoami(ctx context.Context, args []string) error { return f.record("whoami", args) }
func (f *fakeExec) Status(ctx context.Context, args []string) error { return f.record("status", args) }
func (f *fakeExec) Stats(ctx context.Context, args []string) error  { return f.record("stats", args) }
func (f *fakeExec) List(ctx context.Context, args []string) error   { return f.record("ls", args) }
func (f *fakeExec) ChangeDir(ctx context.Context, args []string) error {
	return f.record("cd", args)
}
func (f *fakeExec) Mkdir(ctx context.Context, args []string) error  { return f.record("mkdir", args) }
func (f *fakeExec) Upload(ctx context.Context, args []string) error { return f.record("upload", args) }
func (f *fakeExec) Info(ctx context.Context, args []string) error   { return f.record("info", args) }

func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"ls",
		"login",
		"help",
		"mkdir Photos public",
		"cd 3",
		"upload ./a.png",
		"ls 2",
		"info 4",
		"",
		"foobar",
		"logout",
		"exit",
		"status",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"login", "mkdir", "cd", "upload", "ls", "info", "logout"}, exec.calls)
	assert.Equal(t, []string{"Photos", "public"}, exec.args[1])
	assert.Equal(t, []string{"2"}, exec.args[4])

	assert.Contains(t, *out, "Available commands: register, login, status, stats, exit")
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_PrintsErrors(t *testing.T) {
	out := capturePrint(t)

	exec := &fakeExec{loggedIn: true, err: fmt.Errorf("%w: ls [page]", errUsage)}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("ls x\nquit\n")))

	assert.Equal(t, []string{"ls"}, exec.calls)
	assert.Contains(t, *out, "Error: usage: ls [page]")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrint(t)

	exec := &fakeExec{err: errors.New("x")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("status")))

	assert.Equal(t, []string{"status"}, exec.calls)
}
