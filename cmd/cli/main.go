// Command accountsctl administers the account store.
package main

import "github.com/globalos/accounts/internal/cli"

func main() {
	cli.Main()
}
