package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword
var readPassword = term.ReadPassword

// promptString reads one trimmed line. A partial line before EOF is
// returned; a bare EOF yields the error.
func (a *App) promptString(prompt string) (string, error) {
	a.printf("%s: ", prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptRequired re-prompts until a non-empty value is entered
func (a *App) promptRequired(prompt string) (string, error) {
	for {
		value, err := a.promptString(prompt)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		a.println("A value is required.")
	}
}

// promptPassword reads a password from the terminal without echo
func (a *App) promptPassword(prompt string) (string, error) {
	a.printf("%s: ", prompt)
	raw, err := readPassword(int(os.Stdin.Fd()))
	a.println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// promptDecimal parses a decimal amount, re-prompting on bad input. An empty
// line keeps the fallback value.
func (a *App) promptDecimal(prompt string, fallback decimal.Decimal) (decimal.Decimal, error) {
	for {
		value, err := a.promptString(fmt.Sprintf("%s [%s]", prompt, fallback.String()))
		if err != nil {
			return decimal.Zero, err
		}
		if value == "" {
			return fallback, nil
		}
		parsed, err := decimal.NewFromString(value)
		if err != nil {
			a.println("Not a number, try again.")
			continue
		}
		return parsed, nil
	}
}

// promptUint parses a positive integer id, re-prompting on bad input
func (a *App) promptUint(prompt string) (uint, error) {
	for {
		value, err := a.promptString(prompt)
		if err != nil {
			return 0, err
		}
		parsed, err := strconv.ParseUint(value, 10, 32)
		if err != nil || parsed == 0 {
			a.println("Enter a positive number.")
			continue
		}
		return uint(parsed), nil
	}
}

// confirm asks a yes/no question. Only an explicit "y"/"yes" confirms;
// anything else, including EOF, declines.
func (a *App) confirm(prompt string) bool {
	a.printf("%s [y/N]: ", prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && len(line) == 0 {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
