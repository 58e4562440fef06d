package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarydesk/config"
	"librarydesk/library"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed empty collections with starter data",
	Long: `seed fills every empty collection with starter data: books, users,
borrowings, fines, reservations, notifications, settings and profiles.
Collections that already hold rows are left untouched, so running seed
repeatedly, or after deleting individual rows, never duplicates data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		// Open directly so seeding happens exactly once, regardless of
		// the auto-seed setting.
		lib, err := library.Open(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.SeedAll(); err != nil {
			return err
		}

		store := lib.Store()
		for _, line := range []struct {
			name  string
			count func() (int, error)
		}{
			{"books", store.Books.Count},
			{"users", store.Users.Count},
			{"borrowings", store.Borrowings.Count},
			{"fines", store.Fines.Count},
			{"reservations", store.Reservations.Count},
			{"notifications", store.Notifications.Count},
		} {
			n, err := line.count()
			if err != nil {
				return err
			}
			fmt.Printf("%-14s %d\n", line.name, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
