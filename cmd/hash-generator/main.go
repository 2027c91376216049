// Command hash-generator prints bcrypt hashes for seeding user accounts.
//
// Passwords are taken from the arguments, or read from the terminal without
// echo when none are given:
//
//	hash-generator -cost 12 pw123 another-secret
//	hash-generator
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/phrazzld/vsconnect-api/internal/domain"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	flag.Parse()

	if err := run(os.Stdout, *cost, flag.Args()); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, cost int, passwords []string) error {
	if len(passwords) == 0 {
		pw, err := promptPassword(w)
		if err != nil {
			return err
		}
		passwords = []string{pw}
	}

	hasher := auth.NewBcryptVerifier(cost)
	label := color.New(color.FgCyan)
	failed := 0

	for _, password := range passwords {
		if err := checkLength(password); err != nil {
			color.New(color.FgYellow).Fprintf(w, "skipped: %v\n\n", err)
			failed++
			continue
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		label.Fprint(w, "Hash: ")
		fmt.Fprintf(w, "%s\n\n", hash)
	}

	if failed > 0 {
		return fmt.Errorf("%d password(s) rejected", failed)
	}
	return nil
}

func checkLength(password string) error {
	switch {
	case len(password) < domain.MinPasswordLength:
		return domain.ErrPasswordTooShort
	case len(password) > domain.MaxPasswordLength:
		return domain.ErrPasswordTooLong
	}
	return nil
}

// promptPassword reads a password twice from the terminal without echo.
func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())

	fmt.Fprint(w, "Password: ")
	first, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprint(w, "Confirm password: ")
	second, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
