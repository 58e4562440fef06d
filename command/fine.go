package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	fineTab    string
	fineAmount float64
	fineReason string
	fineUser   string
)

var fineCmd = &cobra.Command{
	Use:   "fine",
	Short: "Manage fines",
}

var fineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fines by tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		all, err := lib.ListFines()
		if err != nil {
			return err
		}

		tab := func(f library.Fine) string { return string(f.Status) }
		counts := library.TabCounts(all, tab)
		fmt.Printf("Tabs: unpaid (%d) | paid (%d)\n\n",
			counts[string(library.FineUnpaid)], counts[string(library.FinePaid)])

		rows := library.PartitionTab(all, tab, fineTab)
		rows = library.SortBy(rows, library.Desc, func(a, b library.Fine) int {
			return library.CompareFloats(a.Amount, b.Amount)
		})

		if len(rows) == 0 {
			fmt.Println("No fines match.")
			return nil
		}
		fmt.Printf("%-20s %-35s %-22s %-8s %-12s %s\n", "ID", "Borrowing", "User", "Amount", "Status", "Reason")
		fmt.Println(strings.Repeat("-", 115))
		for _, f := range rows {
			fmt.Printf("%-20s %-35s %-22s %7.2f %-12s %s\n",
				f.ID,
				truncateString(lib.BorrowingLabel(f.BorrowingID), 35),
				truncateString(lib.UserLabel(f.UserID), 22),
				f.Amount, f.Status, f.Reason)
		}
		return nil
	},
}

var fineAddCmd = &cobra.Command{
	Use:   "add <borrowing-id>",
	Short: "Add a fine for a borrowing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		userID := fineUser
		if userID == "" {
			// Derive the debtor from the borrowing when possible.
			if b, err := lib.Store().Borrowings.Get(args[0]); err == nil {
				userID = b.UserID
			}
		}
		f, err := lib.AddFine(library.Fine{
			BorrowingID: args[0],
			UserID:      userID,
			Amount:      fineAmount,
			Reason:      fineReason,
			DueDate:     time.Now().AddDate(0, 0, 7),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Fine %s: %.2f for %s\n", f.ID, f.Amount, lib.UserLabel(f.UserID))
		return nil
	},
}

var finePayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Mark a fine paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.PayFine(args[0]); err != nil {
			return err
		}
		fmt.Printf("Fine %s paid\n", args[0])
		return nil
	},
}

var fineDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a fine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteFine(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted fine %s\n", args[0])
		return nil
	},
}

func init() {
	fineListCmd.Flags().StringVar(&fineTab, "tab", library.FilterAll, "tab: unpaid|paid|all")
	fineAddCmd.Flags().Float64Var(&fineAmount, "amount", 0, "fine amount")
	fineAddCmd.Flags().StringVar(&fineReason, "reason", "Overdue return", "reason")
	fineAddCmd.Flags().StringVar(&fineUser, "user", "", "user ID (default: borrowing's user)")

	fineCmd.AddCommand(fineListCmd, fineAddCmd, finePayCmd, fineDeleteCmd)
	rootCmd.AddCommand(fineCmd)
}
