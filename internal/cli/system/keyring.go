package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/keyring"
	"github.com/julianstephens/chorewheel/internal/storage/postgres"
)

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the OS keyring."`
}

// Run stores the string as given. Unlike database.path, the keyring may hold
// a password.
func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	err := postgres.ValidateConnString(cmd.ConnectionString)
	switch {
	case errors.Is(err, postgres.ErrEmbeddedCredentials):
		ctx.Println("⚠️  Connection string contains a password; it is stored as-is in the OS keyring.")
	case err != nil:
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Printf("✓ Stored in OS keyring: %s\n", postgres.Redact(cmd.ConnectionString))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	connStr, err := keyring.GetConnectionString()
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		ctx.Println("ℹ No connection string stored in keyring")
	case err != nil:
		return err
	default:
		ctx.Printf("✓ Stored connection string: %s\n", postgres.Redact(connStr))
	}
	return nil
}
