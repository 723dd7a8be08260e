package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetPassword reads a password. On a terminal it prompts on w and reads
// without echo; otherwise it reads one line from in, so the tool can be
// scripted. The caller should wipe the returned slice.
func GetPassword(in io.Reader, w io.Writer) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	if !isTerminal(fd) {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return nil, fmt.Errorf("read password: %w", err)
		}
		return []byte(strings.TrimRight(line, "\r\n")), nil
	}

	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
