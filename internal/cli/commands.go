package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/entrypoint"
)

// ServeCmd starts the HTTP server.
type ServeCmd struct{}

func (cmd *ServeCmd) Run(ctx *Context) error {
	return entrypoint.Run(ctx.Config, ctx.Version, ctx.Logger)
}

// ReconcileCmd rebuilds every aggregate from its recordings and reports what
// changed.
type ReconcileCmd struct{}

func (cmd *ReconcileCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := entrypoint.Reconcile(runCtx, ctx.Config, ctx.Logger)
	fmt.Printf("checked %d aggregates, %d repaired, %d failed\n", summary.Checked, summary.Changed, summary.Failed)
	return err
}

// UserCreateCmd registers an API user and prints its bearer token.
type UserCreateCmd struct {
	Username string `required:"" help:"Unique user name."`
	Email    string `help:"Contact email. Defaults to <username>@localhost."`
}

func (cmd *UserCreateCmd) Run(ctx *Context) error {
	// Emails are unique, so an empty one would only fit a single user.
	email := cmd.Email
	if email == "" {
		email = cmd.Username + "@localhost"
	}
	user, err := entrypoint.CreateUser(context.Background(), ctx.Config, ctx.Logger, cmd.Username, email)
	if err != nil {
		return err
	}
	ctx.Logger.Info("user created", zap.Uint("id", user.ID), zap.String("username", user.Username))
	fmt.Println(user.Token)
	return nil
}
