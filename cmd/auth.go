package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// AuthLogin logs in with email and password, storing the session cookie on
// the runner's HTTP client.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	email := cmd.String("email")

	r.logger.Debug("logging in", "email", email)

	if err := r.api.Login(ctx, email, cmd.String("password")); err != nil {
		return err
	}

	return r.writePlain("✓ Logged in\n")
}

// AuthRegister creates a new account. The backend logs the new user in as
// part of registration.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.api.Register(ctx, cmd.String("username"), cmd.String("email"), cmd.String("password")); err != nil {
		return err
	}

	return r.writePlain("✓ Account created\n")
}

// AuthLogout ends the current session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.api.Logout(ctx); err != nil {
		r.logger.Warn("logout request failed", "err", err)
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus checks the current authentication state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	status, err := r.api.AuthStatusCheck(ctx)
	if err != nil {
		return err
	}

	if status.LoggedIn {
		return r.writePlain("✓ Logged in as %s\n", status.Username)
	}
	return r.writePlain("Not logged in\n")
}
