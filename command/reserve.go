package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	reserveTab   string
	reserveNotes string
)

var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Manage reservations",
}

var reserveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reservations by tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		all, err := lib.ListReservations()
		if err != nil {
			return err
		}

		tab := func(r library.Reservation) string { return string(r.Status) }
		counts := library.TabCounts(all, tab)
		fmt.Printf("Tabs: pending (%d) | active (%d) | completed (%d) | cancelled (%d)\n\n",
			counts[string(library.ReservationPending)],
			counts[string(library.ReservationActive)],
			counts[string(library.ReservationCompleted)],
			counts[string(library.ReservationCancelled)])

		rows := library.PartitionTab(all, tab, reserveTab)
		rows = library.SortBy(rows, library.Desc, func(a, b library.Reservation) int {
			return library.CompareTimes(a.ReservationDate, b.ReservationDate)
		})

		if len(rows) == 0 {
			fmt.Println("No reservations match.")
			return nil
		}
		fmt.Printf("%-20s %-35s %-22s %-12s %s\n", "ID", "Book", "User", "Reserved", "Status")
		fmt.Println(strings.Repeat("-", 105))
		for _, r := range rows {
			fmt.Printf("%-20s %-35s %-22s %-12s %s\n",
				r.ID,
				truncateString(lib.BookLabel(r.BookID), 35),
				truncateString(lib.UserLabel(r.UserID), 22),
				r.ReservationDate.Format("2006-01-02"),
				r.Status)
		}
		return nil
	},
}

var reserveAddCmd = &cobra.Command{
	Use:   "add <book-id> <user-id>",
	Short: "Place a reservation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		r, err := lib.AddReservation(library.Reservation{
			BookID: args[0],
			UserID: args[1],
			Notes:  reserveNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Reservation %s: %q for %s\n", r.ID, lib.BookLabel(r.BookID), lib.UserLabel(r.UserID))
		return nil
	},
}

var reserveCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel a reservation (kept for history)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.CancelReservation(args[0]); err != nil {
			return err
		}
		fmt.Printf("Reservation %s cancelled\n", args[0])
		return nil
	},
}

var reserveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a reservation record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteReservation(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted reservation %s\n", args[0])
		return nil
	},
}

func init() {
	reserveListCmd.Flags().StringVar(&reserveTab, "tab", library.FilterAll, "tab: pending|active|completed|cancelled|all")
	reserveAddCmd.Flags().StringVar(&reserveNotes, "notes", "", "optional notes")

	reserveCmd.AddCommand(reserveListCmd, reserveAddCmd, reserveCancelCmd, reserveDeleteCmd)
	rootCmd.AddCommand(reserveCmd)
}
