package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"librarydesk/library"
)

var (
	userQuery  string
	userRole   string
	userStatus string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage library users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users with search and filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		users, err := lib.ListUsers()
		if err != nil {
			return err
		}

		users = library.Search(users, userQuery, library.User.SearchFields)
		users = library.Filter(users,
			func(u library.User) bool { return library.MatchFilter(userRole, string(u.Role)) },
			func(u library.User) bool { return library.MatchFilter(userStatus, string(u.Status)) },
		)
		users = library.SortBy(users, library.Asc, func(a, b library.User) int {
			return library.CompareStrings(a.Name, b.Name)
		})

		if len(users) == 0 {
			fmt.Println("No users match.")
			return nil
		}
		fmt.Printf("%-20s %-25s %-32s %-10s %-10s %s\n", "ID", "Name", "Email", "Role", "Status", "Joined")
		fmt.Println(strings.Repeat("-", 110))
		for _, u := range users {
			fmt.Printf("%-20s %-25s %-32s %-10s %-10s %s\n",
				u.ID, truncateString(u.Name, 25), truncateString(u.Email, 32),
				u.Role, u.Status, u.JoinDate.Format("2006-01-02"))
		}
		return nil
	},
}

var newUser library.User

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		added, err := lib.AddUser(newUser)
		if err != nil {
			return err
		}
		fmt.Printf("Added user %q (ID %s)\n", added.Name, added.ID)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user (their borrowings and fines are kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.DeleteUser(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted user %s\n", args[0])
		return nil
	},
}

func init() {
	userListCmd.Flags().StringVar(&userQuery, "query", "", "substring search over name/email")
	userListCmd.Flags().StringVar(&userRole, "role", library.FilterAll, "role filter: admin|teacher|student")
	userListCmd.Flags().StringVar(&userStatus, "status", library.FilterAll, "status filter: active|inactive")

	userAddCmd.Flags().StringVar(&newUser.Name, "name", "", "display name (required)")
	userAddCmd.Flags().StringVar(&newUser.Email, "email", "", "email (required)")
	userAddCmd.Flags().StringVar((*string)(&newUser.Role), "role", "student", "role: admin|teacher|student")

	userCmd.AddCommand(userListCmd, userAddCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}
