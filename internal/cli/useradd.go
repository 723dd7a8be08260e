package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/server/auth"
	"github.com/globalos/accounts/internal/server/models"
)

// UserAdd creates one user. It fails when the name is taken or the password
// is empty.
func (a *App) UserAdd(ctx context.Context, global, args []string) error {
	fs := flag.NewFlagSet("useradd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("u", "", "user name")
	role := fs.String("r", models.RoleUser, "role")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: useradd: %v", errUsage, err)
	}
	if *role == "" {
		*role = models.RoleUser
	}
	if *username == "" {
		return fmt.Errorf("%w: useradd -u NAME [-r ROLE]", errUsage)
	}
	if err := auth.ValidateFields(*username, *role); err != nil {
		return fmt.Errorf("useradd: %w", err)
	}

	pw, err := GetPassword(a.stdin, a.stderr)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	accounts, closeStore, err := a.openStore(ctx, global)
	if err != nil {
		return err
	}
	defer closeStore()

	created, err := accounts.CreateUser(ctx, *username, string(pw), *role)
	if err != nil {
		return err
	}
	if !created {
		return fmt.Errorf("user %q not created: name taken or empty password", *username)
	}
	fmt.Fprintf(a.stdout, "user %s created with role %s\n", *username, *role)
	return nil
}
