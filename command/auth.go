package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"librarydesk/library"
)

var (
	registerName string
	registerRole string
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and persist the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		sess, err := lib.Authenticate(args[0], password)
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s)\n", sess.Name, sess.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Register a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		id, err := lib.Register(args[0], password, registerName, library.Role(registerRole))
		if err != nil {
			return err
		}
		fmt.Printf("Registered %s (user ID %s)\n", args[0], id)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		if err := lib.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		sess, err := lib.CurrentSession()
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> (%s), logged in %s\n",
			sess.Name, sess.Email, sess.Role, sess.IssuedAt.Format("Jan 2, 2006 3:04 PM"))
		return nil
	},
}

// readPassword prompts without echo when stdin is a terminal, falling back
// to a plain line read when it is not (piped input, tests).
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "display name (required)")
	registerCmd.Flags().StringVar(&registerRole, "role", "student", "role: admin|teacher|student")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
