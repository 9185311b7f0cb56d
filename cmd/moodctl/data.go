package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanyicong/moodlink/backend/internal/export"
	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

var assumeYes bool

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)

	importCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
	clearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip the confirmation prompt")
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export history, settings, and stats as one JSON snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		path := export.DefaultFilename(time.Now())
		if len(args) == 1 {
			path = args[0]
		}

		snap := mood.Snapshot{
			History:    s.engine.History(),
			Settings:   s.settings,
			Stats:      s.engine.Stats(),
			ExportDate: time.Now().UTC(),
		}
		if err := export.Write(path, snap); err != nil {
			return err
		}

		fmt.Printf("📥 Exported %d events to %s\n", len(snap.History), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Replace all local state with a previously exported snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := export.Read(args[0])
		if err != nil {
			return err
		}

		if !confirm("Importing will overwrite all current data. Continue?") {
			fmt.Println("Import cancelled.")
			return nil
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		s.engine.Replace(snap.History)
		if err := s.store.SaveSettings(snap.Settings); err != nil {
			return err
		}

		fmt.Printf("📤 Imported %d events from %s\n", len(snap.History), args[0])
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the local timeline and reset stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Clear all history? This cannot be undone.") {
			fmt.Println("Clear cancelled.")
			return nil
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		s.engine.Clear()
		fmt.Println("🗑️  History cleared.")
		return nil
	},
}

func confirm(prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
