package command

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	activityAll    bool
	activityFollow bool
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show the audit trail",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, cfg, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if activityFollow {
			return followActivity(lib)
		}

		entries, err := lib.ListActivity()
		if err != nil {
			return err
		}
		if !activityAll && len(entries) > cfg.FeedSize {
			entries = entries[:cfg.FeedSize]
		}
		printActivity(entries)
		return nil
	},
}

// followActivity re-prints the recent feed after every append until
// interrupted.
func followActivity(lib *library.Library) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	cancel := lib.WatchActivity(func(entries []library.Activity) {
		fmt.Print("\033[H\033[2J") // clear screen between snapshots
		printActivity(entries)
		fmt.Println("\nWatching for activity... (Ctrl-C to stop)")
	})
	defer cancel()

	<-sig
	return nil
}

func printActivity(entries []library.Activity) {
	if len(entries) == 0 {
		fmt.Println("No activity recorded yet.")
		return
	}
	fmt.Printf("%-20s %-12s %-22s %-35s %-10s %s\n", "ID", "Type", "User", "Book", "Status", "Time")
	fmt.Println(strings.Repeat("-", 125))
	for _, a := range entries {
		fmt.Printf("%-20s %-12s %-22s %-35s %-10s %s\n",
			a.ID, a.Type, truncateString(a.User, 22), truncateString(a.Book, 35),
			a.Status, a.Time)
	}
}

func init() {
	activityCmd.Flags().BoolVar(&activityAll, "all", false, "show the full trail, not just the recent feed")
	activityCmd.Flags().BoolVar(&activityFollow, "follow", false, "keep watching and re-print after every append")

	rootCmd.AddCommand(activityCmd)
}
