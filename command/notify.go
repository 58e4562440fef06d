package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	notifyTab      string
	notifyQuery    string
	notifyAll      bool
	newNotify      library.Notification
	notifyActLabel string
	notifyActURL   string
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage notifications",
}

var notifyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications by type tab",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		all, err := lib.ListNotifications()
		if err != nil {
			return err
		}

		tab := func(n library.Notification) string { return string(n.Type) }
		counts := library.TabCounts(all, tab)
		fmt.Printf("Tabs: system (%d) | alert (%d) | user (%d)\n\n",
			counts[string(library.NotificationSystem)],
			counts[string(library.NotificationAlert)],
			counts[string(library.NotificationUser)])

		rows := library.PartitionTab(all, tab, notifyTab)
		rows = library.Search(rows, notifyQuery, library.Notification.SearchFields)
		rows = library.SortBy(rows, library.Desc, func(a, b library.Notification) int {
			return library.CompareTimes(a.Timestamp, b.Timestamp)
		})

		if len(rows) == 0 {
			fmt.Println("No notifications match.")
			return nil
		}
		fmt.Printf("%-20s %-8s %-30s %-8s %-6s %s\n", "ID", "Type", "Title", "Priority", "Read", "Message")
		fmt.Println(strings.Repeat("-", 115))
		for _, n := range rows {
			read := " "
			if n.Read {
				read = "yes"
			}
			fmt.Printf("%-20s %-8s %-30s %-8s %-6s %s\n",
				n.ID, n.Type, truncateString(n.Title, 30), n.Priority, read,
				truncateString(n.Message, 40))
		}
		return nil
	},
}

var notifyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if notifyActLabel != "" || notifyActURL != "" {
			newNotify.Action = &library.NotificationAction{Label: notifyActLabel, URL: notifyActURL}
		}
		n, err := lib.AddNotification(newNotify)
		if err != nil {
			return err
		}
		fmt.Printf("Notification %s: %q\n", n.ID, n.Title)
		return nil
	},
}

var notifyReadCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark a notification read (--all for every unread one)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if notifyAll {
			if err := lib.MarkAllNotificationsRead(); err != nil {
				return err
			}
			fmt.Println("All notifications marked read")
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("notification id required (or use --all)")
		}
		if err := lib.MarkNotificationRead(args[0]); err != nil {
			return err
		}
		fmt.Printf("Notification %s marked read\n", args[0])
		return nil
	},
}

var notifyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteNotification(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted notification %s\n", args[0])
		return nil
	},
}

func init() {
	notifyListCmd.Flags().StringVar(&notifyTab, "tab", library.FilterAll, "tab: system|alert|user|all")
	notifyListCmd.Flags().StringVar(&notifyQuery, "query", "", "substring search over title/message")

	notifyAddCmd.Flags().StringVar(&newNotify.Title, "title", "", "title (required)")
	notifyAddCmd.Flags().StringVar(&newNotify.Message, "message", "", "message body")
	notifyAddCmd.Flags().StringVar((*string)(&newNotify.Type), "type", "system", "type: system|alert|user")
	notifyAddCmd.Flags().StringVar((*string)(&newNotify.Priority), "priority", "medium", "priority: low|medium|high")
	notifyAddCmd.Flags().StringVar(&notifyActLabel, "action-label", "", "optional call-to-action label")
	notifyAddCmd.Flags().StringVar(&notifyActURL, "action-url", "", "optional call-to-action URL")

	notifyReadCmd.Flags().BoolVar(&notifyAll, "all", false, "mark every unread notification read")

	notifyCmd.AddCommand(notifyListCmd, notifyAddCmd, notifyReadCmd, notifyDeleteCmd)
	rootCmd.AddCommand(notifyCmd)
}
