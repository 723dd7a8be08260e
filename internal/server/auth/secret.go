package auth

import (
	"fmt"
	"os"

	"github.com/globalos/accounts/internal/common"
)

// LoadSecret reads the token signing key from path. The whole file content is
// the key; it must be at least MinSecretLength bytes.
func LoadSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	if len(data) < MinSecretLength {
		return nil, fmt.Errorf("%s: %w (%d bytes, need %d)", path, common.ErrSecretTooShort, len(data), MinSecretLength)
	}
	return data, nil
}
