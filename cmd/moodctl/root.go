package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lanyicong/moodlink/backend/internal/config"
	"github.com/lanyicong/moodlink/backend/internal/gate"
	"github.com/lanyicong/moodlink/backend/internal/localstore"
	"github.com/lanyicong/moodlink/backend/internal/model/mood"
	"github.com/lanyicong/moodlink/backend/internal/syncer"
)

var (
	flagAPI     string
	flagRoom    string
	flagUser    string
	flagDataDir string
)

// sendGate guards every user-triggered send with the default debounce and
// cool-down windows.
var sendGate = gate.New(0, 0)

var rootCmd = &cobra.Command{
	Use:   "moodctl",
	Short: "LDR mood dashboard companion — share moods with your partner from the terminal",
	Long: `moodctl keeps a local mood timeline in sync with the shared room your
partner polls. Send a mood, a hug, or a kiss; watch the merged timeline;
export or import the whole state as JSON.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "API base URL (overrides MOOD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagRoom, "room", "", "room id (overrides stored settings)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "user id (overrides stored settings)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "local data directory (overrides MOOD_DATA_DIR)")
}

// session bundles everything a command needs: env config, the local store,
// device settings, and a sync engine bound to the configured room.
type session struct {
	cfg      config.ClientConfig
	store    *localstore.Store
	settings mood.Settings
	engine   *syncer.Engine
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := cfg.Client

	if flagAPI != "" {
		client.APIBaseURL = flagAPI
	}
	if flagDataDir != "" {
		client.DataDir = flagDataDir
	}

	store, err := localstore.Open(client.DataDir)
	if err != nil {
		return nil, err
	}

	settings, err := store.LoadSettings()
	if err != nil {
		store.Close()
		return nil, err
	}
	if flagRoom != "" {
		settings.RoomID = flagRoom
	}
	if flagUser != "" {
		settings.UserID = flagUser
	}

	engine := syncer.New(syncer.Config{
		BaseURL:      client.APIBaseURL,
		RoomID:       settings.RoomID,
		UserID:       settings.UserID,
		PollInterval: client.PollInterval,
		AutoSave:     settings.AutoSave,
	}, store)

	return &session{cfg: client, store: store, settings: settings, engine: engine}, nil
}

func (s *session) Close() {
	_ = s.store.Close()
}
