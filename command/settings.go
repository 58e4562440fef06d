package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change library settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		s, err := lib.Settings()
		if err != nil {
			return err
		}
		fmt.Printf("Library:            %s (%s)\n", s.System.LibraryName, s.System.Language)
		fmt.Printf("Loan period:        %d days\n", s.BorrowingRules.LoanPeriodDays)
		fmt.Printf("Max books per user: %d\n", s.BorrowingRules.MaxBooksPerUser)
		fmt.Printf("Renewal limit:      %d\n", s.BorrowingRules.RenewalLimit)
		fmt.Printf("Fine daily rate:    %.2f (max %.2f, %d grace days)\n",
			s.FineSettings.DailyRate, s.FineSettings.MaxFine, s.FineSettings.GraceDays)
		fmt.Printf("Email enabled:      %t\n", s.Notifications.EmailEnabled)
		fmt.Printf("Due-soon reminder:  %t\n", s.Notifications.DueSoonReminder)
		fmt.Printf("Overdue alerts:     %t\n", s.Notifications.OverdueAlerts)
		fmt.Printf("Session timeout:    %d minutes\n", s.Security.SessionTimeoutMinutes)
		fmt.Printf("Strong passwords:   %t\n", s.Security.RequireStrongPasswords)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings fields (unset flags keep their current value)",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, _, err := openLibrary()
		if err != nil {
			return err
		}
		defer lib.Close()

		s, err := lib.Settings()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("library-name") {
			s.System.LibraryName, _ = flags.GetString("library-name")
		}
		if flags.Changed("language") {
			s.System.Language, _ = flags.GetString("language")
		}
		if flags.Changed("loan-days") {
			s.BorrowingRules.LoanPeriodDays, _ = flags.GetInt("loan-days")
		}
		if flags.Changed("max-books") {
			s.BorrowingRules.MaxBooksPerUser, _ = flags.GetInt("max-books")
		}
		if flags.Changed("renewal-limit") {
			s.BorrowingRules.RenewalLimit, _ = flags.GetInt("renewal-limit")
		}
		if flags.Changed("daily-rate") {
			s.FineSettings.DailyRate, _ = flags.GetFloat64("daily-rate")
		}
		if flags.Changed("max-fine") {
			s.FineSettings.MaxFine, _ = flags.GetFloat64("max-fine")
		}
		if flags.Changed("grace-days") {
			s.FineSettings.GraceDays, _ = flags.GetInt("grace-days")
		}
		if flags.Changed("email") {
			s.Notifications.EmailEnabled, _ = flags.GetBool("email")
		}
		if flags.Changed("due-soon") {
			s.Notifications.DueSoonReminder, _ = flags.GetBool("due-soon")
		}
		if flags.Changed("overdue-alerts") {
			s.Notifications.OverdueAlerts, _ = flags.GetBool("overdue-alerts")
		}
		if flags.Changed("session-timeout") {
			s.Security.SessionTimeoutMinutes, _ = flags.GetInt("session-timeout")
		}
		if flags.Changed("strong-passwords") {
			s.Security.RequireStrongPasswords, _ = flags.GetBool("strong-passwords")
		}

		if err := lib.SaveSettings(s); err != nil {
			return err
		}
		fmt.Println("Settings saved")
		return nil
	},
}

func init() {
	f := settingsSetCmd.Flags()
	f.String("library-name", "", "library display name")
	f.String("language", "", "interface language code")
	f.Int("loan-days", 0, "loan period in days")
	f.Int("max-books", 0, "maximum concurrent borrowings per user")
	f.Int("renewal-limit", 0, "maximum renewals per borrowing")
	f.Float64("daily-rate", 0, "fine accrued per overdue day")
	f.Float64("max-fine", 0, "fine cap per borrowing")
	f.Int("grace-days", 0, "days past due before fines accrue")
	f.Bool("email", false, "enable email notifications")
	f.Bool("due-soon", false, "enable due-soon reminders")
	f.Bool("overdue-alerts", false, "enable overdue alerts")
	f.Int("session-timeout", 0, "session timeout in minutes")
	f.Bool("strong-passwords", false, "require strong passwords")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
