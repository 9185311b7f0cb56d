package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lanyicong/moodlink/backend/internal/gate"
	"github.com/lanyicong/moodlink/backend/internal/model/mood"
	"github.com/lanyicong/moodlink/backend/internal/syncer"
)

var sendMessage string

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(hugCmd)
	rootCmd.AddCommand(kissCmd)

	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "", "optional message to send along")
}

var sendCmd = &cobra.Command{
	Use:   "send <mood>",
	Short: "Send a mood to your partner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, ok := mood.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown mood %q (choose one of: %s)", args[0], catalogIDs())
		}

		event := mood.Event{
			Mood:    def.ID,
			Emoji:   def.Emoji,
			Label:   def.Label,
			Message: sendMessage,
			Type:    mood.KindMood,
		}
		return deliver(cmd.Context(), "send mood", event)
	},
}

var hugCmd = &cobra.Command{
	Use:   "hug",
	Short: "Send a warm hug",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		event := mood.Event{
			Type:         mood.KindResponse,
			ResponseType: mood.ResponseHug,
			Emoji:        "🤗",
			Message:      "发送了一个温暖的拥抱",
		}
		return deliver(cmd.Context(), "send hug", event)
	},
}

var kissCmd = &cobra.Command{
	Use:   "kiss",
	Short: "Send a sweet kiss",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		event := mood.Event{
			Type:         mood.KindResponse,
			ResponseType: mood.ResponseKiss,
			Emoji:        "💋",
			Message:      "发送了一个甜蜜的亲亲",
		}
		return deliver(cmd.Context(), "send kiss", event)
	},
}

// deliver pushes one event through the action gate. Gate rejections drop the
// action quietly; the next valid attempt still works.
func deliver(ctx context.Context, action string, event mood.Event) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var result syncer.PushResult
	err = sendGate.Do(ctx, action, func(ctx context.Context) error {
		var pushErr error
		result, pushErr = s.engine.Push(ctx, event)
		return pushErr
	})
	switch {
	case errors.Is(err, gate.ErrDebounced), errors.Is(err, gate.ErrBusy), errors.Is(err, gate.ErrInFlight):
		fmt.Println("⏳ Hold on — the previous send is still settling.")
		return nil
	case err != nil:
		return err
	}

	if result.Synced {
		fmt.Printf("💕 %s Sent to %s!\n", result.Event.Emoji, s.settings.PartnerName)
	} else {
		fmt.Printf("📡 %s Saved locally — not synced yet, will stay in your timeline.\n", result.Event.Emoji)
	}
	return nil
}

func catalogIDs() string {
	defs := mood.Catalog()
	ids := make([]string, len(defs))
	for i, def := range defs {
		ids[i] = def.ID
	}
	return strings.Join(ids, ", ")
}
