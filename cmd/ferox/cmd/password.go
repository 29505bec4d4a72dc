package cmd

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword prompts on the controlling terminal with echo disabled. It
// is the CLI's only source of password bytes; the ferox package never
// prompts for input itself (spec §1, "explicitly out of scope").
func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return pw, nil
}
