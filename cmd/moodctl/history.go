package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lanyicong/moodlink/backend/internal/analysis/stats"
	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

var (
	historyLimit int
	statsPeriod  string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "max entries to show")
	statsCmd.Flags().StringVar(&statsPeriod, "period", "all", "stats window: all, today, week, month")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the merged mood timeline, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		// Best effort: offline still shows the local timeline.
		if err := s.engine.Pull(cmd.Context()); err != nil {
			fmt.Println("(offline — showing local timeline)")
		}

		events := s.engine.History()
		if len(events) == 0 {
			fmt.Println("还没有情绪记录，开始分享你的心情吧！")
			return nil
		}

		limit := historyLimit
		if limit <= 0 || limit > len(events) {
			limit = len(events)
		}
		for _, e := range events[:limit] {
			printEvent(e, s.settings)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate counters and the mood histogram",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.engine.Pull(cmd.Context()); err != nil {
			fmt.Println("(offline — stats from local timeline)")
		}

		window := stats.Window(statsPeriod)
		events := stats.Filter(s.engine.History(), window, time.Now())
		projected := stats.Project(events)

		fmt.Printf("💌 messages: %d   🤗 hugs: %d   💋 kisses: %d\n",
			projected.Messages, projected.Hugs, projected.Kisses)

		if len(projected.MoodCounts) == 0 {
			return nil
		}
		fmt.Println("moods:")
		for _, def := range mood.Catalog() {
			if count := projected.MoodCounts[def.ID]; count > 0 {
				fmt.Printf("  %s %s: %d\n", def.Emoji, def.Label, count)
			}
		}
		// Moods outside the catalog (e.g. imported data) still show up.
		for id, count := range projected.MoodCounts {
			if _, known := mood.Lookup(id); !known {
				fmt.Printf("  %s: %d\n", id, count)
			}
		}
		return nil
	},
}

func printEvent(e mood.Event, settings mood.Settings) {
	name := "我"
	if e.Sender != settings.UserID {
		name = settings.PartnerName
	}

	when := e.Timestamp.Local().Format("01-02 15:04")
	switch {
	case e.Type == mood.KindResponse:
		fmt.Printf("%s  %s  %s %s\n", when, name, e.Emoji, e.Message)
	case e.Message != "":
		fmt.Printf("%s  %s  %s %s — %s\n", when, name, e.Emoji, e.Label, e.Message)
	default:
		fmt.Printf("%s  %s  %s %s\n", when, name, e.Emoji, e.Label)
	}
}
