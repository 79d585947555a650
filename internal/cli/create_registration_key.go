package cli

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gutenberg-app/gutenberg/internal/config"
	"github.com/gutenberg-app/gutenberg/internal/database"
	"github.com/gutenberg-app/gutenberg/internal/database/regkeys"
)

// CreateRegistrationKeyCommand mints single-use registration keys.
// Registration is invitation-only, so this is the only way keys enter
// the store.
type CreateRegistrationKeyCommand struct {
	DatabasePath string
	Key          string
	Count        int
}

func NewCreateRegistrationKeyCommand() *CreateRegistrationKeyCommand {
	return &CreateRegistrationKeyCommand{}
}

func (cmd *CreateRegistrationKeyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-registration-key", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Key, "key", "", "Explicit key value (random when omitted)")
	fs.IntVar(&cmd.Count, "count", 1, "Number of random keys to create")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-registration-key [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create single-use registration keys for new accounts.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-registration-key\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-registration-key -count 5\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-registration-key -key welcome-2026\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Key != "" && cmd.Count != 1 {
		return fmt.Errorf("-key and -count cannot be combined")
	}
	if cmd.Count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	return nil
}

func (cmd *CreateRegistrationKeyCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := regkeys.NewRepository(db.DB)

	if cmd.Key != "" {
		if err := repo.Create(cmd.Key); err != nil {
			return fmt.Errorf("failed to create registration key: %w", err)
		}
		fmt.Println(cmd.Key)
		return nil
	}

	for i := 0; i < cmd.Count; i++ {
		key, err := randomKey()
		if err != nil {
			return err
		}
		if err := repo.Create(key); err != nil {
			return fmt.Errorf("failed to create registration key: %w", err)
		}
		fmt.Println(key)
	}

	return nil
}

func randomKey() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
