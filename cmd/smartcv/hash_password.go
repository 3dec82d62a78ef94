package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maelle/smartcv/internal/config"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash a passphrase for the server login gate",
	Long: "Hash a passphrase with bcrypt and print the hash. Set APP_PASSWORD_HASH to\n" +
		"the printed value to configure the passphrase the serve command accepts on\n" +
		"login. Honors BCRYPT_COST and PASSWORD_PEPPER from the environment.",
	RunE: runHashPassword,
}

var hashPasswordValue string

func init() {
	hashPasswordCmd.Flags().StringVar(&hashPasswordValue, "password", "", "Passphrase to hash (default: read one line from stdin)")

	rootCmd.AddCommand(hashPasswordCmd)
}

func runHashPassword(_ *cobra.Command, _ []string) error {
	passphrase := hashPasswordValue
	if passphrase == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Passphrase: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read passphrase: %w", err)
			}
			return fmt.Errorf("no passphrase provided")
		}
		passphrase = strings.TrimSpace(scanner.Text())
	}
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return fmt.Errorf("failed to create password config: %w", err)
	}

	hash, err := passwordConfig.HashPassword(passphrase)
	if err != nil {
		return fmt.Errorf("failed to hash passphrase: %w", err)
	}

	// The hash alone goes to stdout so it can be piped into an env file.
	_, _ = fmt.Fprintf(os.Stdout, "%s\n", hash)
	_, _ = fmt.Fprintf(os.Stderr, "Set APP_PASSWORD_HASH to this value to enable server login.\n")

	return nil
}
