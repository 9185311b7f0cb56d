package localstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanyicong/moodlink/backend/internal/model/mood"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHistoryRoundTrip(t *testing.T) {
	s := openTestStore(t)

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []mood.Event{
		{ID: "a", Mood: "happy", Emoji: "😊", Label: "开心", Type: mood.KindMood, Sender: "user1", Timestamp: ts},
		{ID: "b", ResponseType: mood.ResponseHug, Type: mood.KindResponse, Sender: "user2", Timestamp: ts.Add(time.Minute)},
	}
	require.NoError(t, s.SaveHistory(history))

	got, err := s.LoadHistory()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "happy", got[0].Mood)
	assert.Equal(t, history[0].DedupKey(), got[0].DedupKey())
	assert.Equal(t, mood.ResponseHug, got[1].ResponseType)
}

func TestLoadHistoryMissingIsEmpty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadHistoryCorruptFallsBackEmpty(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.put(keyHistory, []byte("{not json")))

	got, err := s.LoadHistory()
	require.NoError(t, err, "corrupt state is recovered, not surfaced")
	assert.Empty(t, got)
}

func TestSettingsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	settings := mood.DefaultSettings()
	settings.RoomID = "room-42"
	settings.PartnerName = "小王"
	settings.Theme = "dark"
	settings.Notifications = false
	require.NoError(t, s.SaveSettings(settings))

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "room-42", got.RoomID)
	assert.Equal(t, "小王", got.PartnerName)
	assert.Equal(t, "dark", got.Theme)
	assert.False(t, got.Notifications)
}

func TestLoadSettingsMissingUsesDefaults(t *testing.T) {
	s := openTestStore(t)

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, mood.DefaultSettings(), got)
}

func TestLoadSettingsCorruptUsesDefaults(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.put(keySettings, []byte("]]")))

	got, err := s.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, mood.DefaultSettings(), got)
}

func TestStatsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	stats := mood.NewStats()
	stats.Messages = 3
	stats.Hugs = 1
	stats.MoodCounts["happy"] = 2
	stats.MoodCounts["miss"] = 1
	require.NoError(t, s.SaveStats(stats))

	got, err := s.LoadStats()
	require.NoError(t, err)
	assert.Equal(t, 3, got.Messages)
	assert.Equal(t, 1, got.Hugs)
	assert.Equal(t, 2, got.MoodCounts["happy"])
}

func TestOpenIsIdempotentPerDirectory(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveHistory([]mood.Event{{Mood: "calm", Sender: "user1"}}))
	require.NoError(t, s.Close())

	// Reopening the same directory sees the persisted state.
	s2, err := Open(dir)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.LoadHistory()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "calm", got[0].Mood)
}
