package cli

import (
	"context"
	"fmt"
)

// Users prints "name<TAB>role" lines in creation order.
func (a *App) Users(ctx context.Context, global, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: users takes no arguments", errUsage)
	}

	accounts, closeStore, err := a.openStore(ctx, global)
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := accounts.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range list {
		fmt.Fprintf(a.stdout, "%s\t%s\n", u.UserName, u.Role)
	}
	return nil
}
