package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var errEmptyPassword = errors.New("password is required")

// passwordFromFlagOrPrompt returns the --password value when given, otherwise
// asks on the command's input. Echo is disabled when the input is a terminal.
func passwordFromFlagOrPrompt(cmd *cobra.Command, flagValue string, label string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), label)
	input := cmd.InOrStdin()
	if file, ok := input.(*os.File); ok {
		if restore, err := disableEcho(file); err == nil {
			defer fmt.Fprintln(cmd.ErrOrStderr())
			defer restore()
		}
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errEmptyPassword
	}
	return password, nil
}
