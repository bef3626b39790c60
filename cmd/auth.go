package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/sportshub/internal/forms"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/urfave/cli/v3"
)

// AuthSignup creates an account. Missing fields are prompted for.
func (r *Runner) AuthSignup(ctx context.Context, cmd *cli.Command) error {
	var form forms.SignupForm
	var err error

	for _, f := range []struct {
		flag, label string
		dst         *string
	}{
		{"username", "Username", &form.Username},
		{"email", "Email", &form.Email},
		{"first-name", "First name", &form.FirstName},
		{"last-name", "Last name", &form.LastName},
	} {
		if *f.dst, err = r.stringOrPrompt(cmd, f.flag, f.label); err != nil {
			return err
		}
	}

	if form.Password = cmd.String("password"); form.Password != "" {
		form.ConfirmPassword = form.Password
	} else {
		if form.Password, err = r.readPassword("Password: "); err != nil {
			return err
		}
		if form.ConfirmPassword, err = r.readPassword("Confirm password: "); err != nil {
			return err
		}
	}

	if err := forms.Validate(ctx, form); err != nil {
		return err
	}

	r.logger.Info("creating account", "username", form.Username)
	if err := r.client.Accounts.Signup(ctx, form.Request()); err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}

	return r.writePlain("✓ Account created successfully! You can now log in.\n")
}

// AuthLogin exchanges credentials for a session and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	var form forms.LoginForm
	var err error

	if form.Email, err = r.stringOrPrompt(cmd, "email", "Email"); err != nil {
		return err
	}
	if form.Password, err = r.passwordOrPrompt(cmd, "password", "Password"); err != nil {
		return err
	}
	if err := forms.Validate(ctx, form); err != nil {
		return err
	}

	s, err := r.session.Login(ctx, form.Email, form.Password)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Logged in as %s\n", s.User.Username)
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	user := r.currentUser()
	if user == nil {
		return r.writePlain("Not logged in\n")
	}

	if err := r.session.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Logged out %s\n", user.Username)
}

// AuthStatus prints the stored identity and, when the token is a JWT, its expiry.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	current := r.session.Current()
	if !current.Authenticated() {
		return r.writePlain("Not logged in\n")
	}

	r.writePlain("Logged in as %s", current.User.Username)
	if current.User.Email != "" {
		r.writePlain(" <%s>", current.User.Email)
	}
	r.writePlain("\n")

	info, err := session.InspectToken(current.Token)
	if err != nil {
		r.logger.Debug("token is opaque", "error", err)
		return r.writePlain("Token: opaque\n")
	}

	switch {
	case info.ExpiresAt.IsZero():
		return r.writePlain("Token: no expiry\n")
	case info.Expired(time.Now()):
		return r.writePlain("Token: expired at %s, log in again\n", info.ExpiresAt.Format(time.RFC1123))
	default:
		return r.writePlain("Token: expires %s\n", info.ExpiresAt.Format(time.RFC1123))
	}
}
