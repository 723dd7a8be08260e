package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/filex"
	"github.com/globalos/accounts/internal/server/auth"
)

const defaultSecretBytes = 64

// GenSecret writes a fresh random signing secret with mode 0600. It never
// overwrites an existing file.
func (a *App) GenSecret(args []string) error {
	fs := flag.NewFlagSet("gensecret", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	out := fs.String("o", "", "output file")
	n := fs.Int("n", defaultSecretBytes, "secret size in bytes")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: gensecret: %v", errUsage, err)
	}
	if *out == "" {
		return fmt.Errorf("%w: gensecret -o PATH [-n BYTES]", errUsage)
	}
	if *n < auth.MinSecretLength {
		return fmt.Errorf("%w: %d bytes, need at least %d", common.ErrSecretTooShort, *n, auth.MinSecretLength)
	}

	secret := common.GenerateRandByteArray(*n)
	defer common.WipeByteArray(secret)

	if err := filex.WriteSecretFile(*out, secret); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "wrote %d-byte secret to %s\n", *n, *out)
	return nil
}
