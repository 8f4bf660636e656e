// Command hashpw prints a bcrypt hash for a password that satisfies the
// account password policy. It is used to seed users directly in the database.
//
// Usage:
//
//	hashpw [-cost 10]
//
// The password is read from the terminal without echo, or from the first
// line of stdin when it is not a terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/taskman-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hashpw: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hashpw", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", 10, "bcrypt cost factor (4-31)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *cost < bcrypt.MinCost || *cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	password, err := readInput(stdin, stderr)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	hash, err := hashPassword(password, *cost)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(stdout, hash)
	return err
}

func readInput(stdin *os.File, prompt io.Writer) (string, error) {
	fd := int(stdin.Fd())
	if isTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		pw, err := readPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	return readLine(stdin)
}

// readLine returns the first line of r without its line terminator.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// hashPassword checks password against the policy and hashes it.
func hashPassword(password string, cost int) (string, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
