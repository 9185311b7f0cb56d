package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change device settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("room:          %s\n", s.settings.RoomID)
		fmt.Printf("user:          %s\n", s.settings.UserID)
		fmt.Printf("partner-name:  %s\n", s.settings.PartnerName)
		fmt.Printf("notifications: %t\n", s.settings.Notifications)
		fmt.Printf("theme:         %s\n", s.settings.Theme)
		fmt.Printf("auto-save:     %t\n", s.settings.AutoSave)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting (room, user, partner-name, notifications, theme, auto-save)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		key, value := args[0], args[1]
		settings := s.settings

		switch key {
		case "room":
			settings.RoomID = value
		case "user":
			settings.UserID = value
		case "partner-name":
			settings.PartnerName = value
		case "theme":
			settings.Theme = value
		case "notifications":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("notifications wants true/false, got %q", value)
			}
			settings.Notifications = b
		case "auto-save":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("auto-save wants true/false, got %q", value)
			}
			settings.AutoSave = b
		default:
			return fmt.Errorf("unknown setting %q", key)
		}

		if err := s.store.SaveSettings(settings); err != nil {
			return err
		}
		fmt.Println("⚙️  Settings saved.")
		return nil
	},
}
