package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/filesmanager/internal/client/client"
	"github.com/dmitrijs2005/filesmanager/internal/client/models"
	"github.com/dmitrijs2005/filesmanager/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errUsage = errors.New("usage")

// describe turns err into a short line for the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, client.ErrNotLoggedIn):
		return "please log in first"
	default:
		return err.Error()
	}
}

func (a *App) readCredentials() (string, []byte, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d)\n", u.Email, u.ID)
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}

	a.setUser(email)
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.setUser("")
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context, _ []string) error {
	u, err := a.authService.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", u.Email, u.ID)
	return nil
}

func (a *App) Status(ctx context.Context, _ []string) error {
	if err := a.authService.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Server is healthy")
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	st, err := a.fileService.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "users: %d, files: %d\n", st.Users, st.Files)
	return nil
}

// List prints the current folder. An optional argument selects the page.
func (a *App) List(ctx context.Context, args []string) error {
	page := 0
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: ls [page]", errUsage)
		}
		page = p
	}

	entries, err := a.fileService.List(ctx, a.currentFolder(), page)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, models.Table(entries))
	return nil
}

// ChangeDir moves into a folder by id, or up with "..", or to the root with "/".
func (a *App) ChangeDir(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: cd <id>|..|/", errUsage)
	}

	switch args[0] {
	case "/":
		a.mu.Lock()
		a.path = nil
		a.mu.Unlock()
		return nil
	case "..":
		a.mu.Lock()
		if len(a.path) > 0 {
			a.path = a.path[:len(a.path)-1]
		}
		a.mu.Unlock()
		return nil
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: cd <id>|..|/", errUsage)
	}

	e, err := a.fileService.Get(ctx, id)
	if err != nil {
		return err
	}
	if e.Type != models.TypeFolder {
		return fmt.Errorf("%s is not a folder", e.Name)
	}

	a.mu.Lock()
	a.path = append(a.path, folder{id: e.ID, name: e.Name})
	a.mu.Unlock()
	return nil
}

func (a *App) Mkdir(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: mkdir <name> [public]", errUsage)
	}

	e, err := a.fileService.Mkdir(ctx, args[0], a.currentFolder(), isPublicArg(args[1:]))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, e.String())
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: upload <path> [public]", errUsage)
	}

	e, err := a.fileService.Upload(ctx, args[0], a.currentFolder(), isPublicArg(args[1:]))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, e.String())
	return nil
}

func (a *App) Info(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: info <id>", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: info <id>", errUsage)
	}

	e, err := a.fileService.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n  owner: %d\n  parent: %d\n", e.String(), e.UserID, e.ParentID)
	return nil
}

func isPublicArg(args []string) bool {
	return len(args) > 0 && args[0] == "public"
}
