package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	borrowTab   string
	borrowQuery string
	borrowDue   string
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "Manage borrowings",
}

var borrowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List borrowings by tab with search",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		all, err := lib.ListBorrowings()
		if err != nil {
			return err
		}

		// Tab badges count the whole collection, not the searched view.
		tab := func(b library.Borrowing) string { return string(b.Status) }
		counts := library.TabCounts(all, tab)
		fmt.Printf("Tabs: active (%d) | overdue (%d) | returned (%d)\n\n",
			counts[string(library.BorrowingActive)],
			counts[string(library.BorrowingOverdue)],
			counts[string(library.BorrowingReturned)])

		rows := library.PartitionTab(all, tab, borrowTab)
		rows = library.Search(rows, borrowQuery, func(b library.Borrowing) []string {
			return []string{lib.BookLabel(b.BookID), lib.UserLabel(b.UserID)}
		})
		rows = library.SortBy(rows, library.Desc, func(a, b library.Borrowing) int {
			return library.CompareTimes(a.BorrowDate, b.BorrowDate)
		})

		if len(rows) == 0 {
			fmt.Println("No borrowings match.")
			return nil
		}
		fmt.Printf("%-20s %-35s %-22s %-12s %-12s %s\n", "ID", "Book", "User", "Borrowed", "Due", "Status")
		fmt.Println(strings.Repeat("-", 115))
		for _, b := range rows {
			fmt.Printf("%-20s %-35s %-22s %-12s %-12s %s\n",
				b.ID,
				truncateString(lib.BookLabel(b.BookID), 35),
				truncateString(lib.UserLabel(b.UserID), 22),
				b.BorrowDate.Format("2006-01-02"),
				b.DueDate.Format("2006-01-02"),
				b.Status)
		}
		return nil
	},
}

var borrowAddCmd = &cobra.Command{
	Use:   "add <book-id> <user-id>",
	Short: "Record a checkout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		due, err := parseDueDate(lib, borrowDue)
		if err != nil {
			return err
		}
		b, err := lib.BorrowBook(args[0], args[1], due)
		if err != nil {
			return err
		}
		fmt.Printf("Borrowing %s: %q to %s, due %s\n",
			b.ID, lib.BookLabel(b.BookID), lib.UserLabel(b.UserID), due.Format("2006-01-02"))
		return nil
	},
}

// parseDueDate resolves the --due flag; when absent the loan period from
// settings applies.
func parseDueDate(lib *library.Library, value string) (time.Time, error) {
	if value == "" {
		settings, err := lib.Settings()
		if err != nil {
			return time.Time{}, err
		}
		return time.Now().AddDate(0, 0, settings.BorrowingRules.LoanPeriodDays), nil
	}
	due, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q (want YYYY-MM-DD): %w", value, err)
	}
	return due, nil
}

var borrowReturnCmd = &cobra.Command{
	Use:   "return <id>",
	Short: "Mark a borrowing returned",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.ReturnBorrowing(args[0]); err != nil {
			return err
		}
		fmt.Printf("Borrowing %s returned\n", args[0])
		return nil
	},
}

var borrowDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a borrowing record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteBorrowing(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted borrowing %s\n", args[0])
		return nil
	},
}

func init() {
	borrowListCmd.Flags().StringVar(&borrowTab, "tab", library.FilterAll, "tab: active|overdue|returned|all")
	borrowListCmd.Flags().StringVar(&borrowQuery, "query", "", "substring search over book/user names")
	borrowAddCmd.Flags().StringVar(&borrowDue, "due", "", "due date YYYY-MM-DD (default: loan period from settings)")

	borrowCmd.AddCommand(borrowListCmd, borrowAddCmd, borrowReturnCmd, borrowDeleteCmd)
	rootCmd.AddCommand(borrowCmd)
}
