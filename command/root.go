package command

// root.go defines the base command of the librarydesk admin console and
// the shared helpers every subcommand uses to open the library.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"librarydesk/config"
	"librarydesk/library"
)

var dbPath string // --db flag, overrides LIBRARYDESK_DB

var rootCmd = &cobra.Command{
	Use:   "librarydesk",
	Short: "librarydesk - library management admin console",
	Long: `librarydesk manages a local library catalog: books, users,
borrowings, fines, reservations and notifications, all persisted in a
single SQLite file. Empty collections are seeded with starter data on
first use so everything is demonstrable without any setup.

Use "librarydesk <command> -h" to see the flags of each command.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides LIBRARYDESK_DB)")
}

// openLibrary loads configuration, opens the store, seeds empty
// collections when auto-seed is on, and restores the audit actor from the
// persisted session.
func openLibrary() (*library.Library, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	lib, err := library.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.AutoSeed {
		if err := lib.SeedAll(); err != nil {
			lib.Close()
			return nil, nil, fmt.Errorf("seed: %w", err)
		}
	}
	if sess, err := lib.CurrentSession(); err == nil {
		lib.SetActor(sess.Name)
	}
	return lib, cfg, nil
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return s[:maxLength]
	}
	return s[:maxLength-3] + "..."
}
