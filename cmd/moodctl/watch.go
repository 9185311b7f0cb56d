package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the room and print partner activity as it arrives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		seen := make(map[string]struct{})
		for _, e := range s.engine.History() {
			seen[e.DedupKey()] = struct{}{}
		}

		fmt.Printf("Watching room %s as %s (Ctrl-C to stop)\n", s.settings.RoomID, s.settings.UserID)
		if partner := s.engine.PartnerMood(); partner != nil {
			fmt.Printf("%s is feeling %s %s\n", s.settings.PartnerName, partner.Emoji, partner.Label)
		}

		go s.engine.Run(ctx)

		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				fmt.Println()
				return nil
			case <-ticker.C:
				s.printNewEvents(seen)
			}
		}
	},
}

// printNewEvents walks the merged log oldest-first and reports entries not
// seen before. The dedup key makes this stable across overlapping pulls.
func (s *session) printNewEvents(seen map[string]struct{}) {
	events := s.engine.History()
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		key := e.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		if e.Sender == s.settings.UserID {
			continue
		}
		if s.settings.Notifications {
			fmt.Print("🔔 ")
		}
		printEvent(e, s.settings)
	}
}
