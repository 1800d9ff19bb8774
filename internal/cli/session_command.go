package cli

import (
	"context"
	"fmt"
	"strings"
)

// LoginCommand handles the login command
type LoginCommand struct {
	app *App
}

// NewLoginCommand creates a new login command handler
func NewLoginCommand(app *App) *LoginCommand {
	return &LoginCommand{app: app}
}

// Execute logs in as args[0] with the rest of args as the display name
func (c *LoginCommand) Execute(ctx context.Context, args []string) error {
	email, name := "", ""
	if len(args) > 0 {
		email = args[0]
		name = strings.Join(args[1:], " ")
	}
	user, err := c.app.session.Login(email, name)
	if err != nil {
		return c.app.errorHandler.Handle("log in", err)
	}
	fmt.Fprintf(c.app.out, "Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

// LogoutCommand handles the logout command
type LogoutCommand struct {
	app *App
}

// NewLogoutCommand creates a new logout command handler
func NewLogoutCommand(app *App) *LogoutCommand {
	return &LogoutCommand{app: app}
}

// Execute clears the session. Logging out twice is fine.
func (c *LogoutCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.session.Logout(); err != nil {
		return c.app.errorHandler.Handle("log out", err)
	}
	fmt.Fprintln(c.app.out, "Logged out")
	return nil
}

// WhoamiCommand handles the whoami command
type WhoamiCommand struct {
	app *App
}

// NewWhoamiCommand creates a new whoami command handler
func NewWhoamiCommand(app *App) *WhoamiCommand {
	return &WhoamiCommand{app: app}
}

// Execute prints the logged in user
func (c *WhoamiCommand) Execute(ctx context.Context, args []string) error {
	user, ok := c.app.session.User()
	if !ok {
		fmt.Fprintln(c.app.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(c.app.out, "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
	return nil
}
