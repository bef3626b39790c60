package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/sportshub/internal/forms"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the logged-in user with their favorites count.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	user := r.currentUser()

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	favs, err := r.favorites.Load(ctx, token)
	if err != nil {
		r.logger.Warn("failed to load favorites", "error", err)
	}

	r.writePlainHeader(user.Username)
	if name := user.FullName(); name != "" {
		r.writePlain("Name:      %s\n", name)
	}
	r.writePlain("Email:     %s\n", user.Email)
	if err != nil {
		return r.writePlain("Favorites: unavailable\n")
	}
	return r.writePlain("Favorites: %d\n", len(favs))
}

// ProfileUpdate sends the changed fields and refreshes the stored user.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	user := r.currentUser()

	form := forms.ProfileForm{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	changed := false
	for _, f := range []struct {
		flag string
		dst  *string
	}{
		{"username", &form.Username},
		{"email", &form.Email},
		{"first-name", &form.FirstName},
		{"last-name", &form.LastName},
		{"password", &form.Password},
	} {
		if cmd.IsSet(f.flag) {
			*f.dst = cmd.String(f.flag)
			changed = true
		}
	}
	if !changed {
		return fmt.Errorf("%w: pass at least one field to change", shared.ErrMissingArgument)
	}
	form.ConfirmPassword = form.Password

	if err := forms.Validate(ctx, form); err != nil {
		return err
	}

	updated, err := r.client.Accounts.UpdateProfile(ctx, token, form.Update())
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if err := r.session.UpdateUser(ctx, *updated); err != nil {
		return err
	}

	return r.writePlain("✓ Profile updated\n")
}

// ProfileDelete deletes the account after confirmation and logs out.
func (r *Runner) ProfileDelete(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	user := r.currentUser()

	ok, err := r.confirm(ctx, fmt.Sprintf("Delete account %s? This cannot be undone.", user.Username))
	if err != nil {
		return err
	}
	if !ok {
		return r.writePlain("Cancelled\n")
	}

	if err := r.client.Accounts.DeleteAccount(ctx, token); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if err := r.session.Logout(ctx); err != nil {
		return err
	}

	return r.writePlain("✓ Account deleted\n")
}
