package mood

import (
	"testing"
	"time"
)

func TestValidateRequiresMoodOrResponse(t *testing.T) {
	e := Event{Sender: "user1"}
	if err := e.Validate(); err == nil {
		t.Fatal("expected validation error for empty mood and responseType")
	}

	e.Mood = "happy"
	if err := e.Validate(); err != nil {
		t.Fatalf("mood event should validate: %v", err)
	}

	e = Event{ResponseType: ResponseHug, Sender: "user1"}
	if err := e.Validate(); err != nil {
		t.Fatalf("response event should validate: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	e := Event{Mood: "happy"}
	e.ApplyDefaults()

	if e.Emoji != "😊" {
		t.Fatalf("unexpected default emoji: %s", e.Emoji)
	}
	if e.Label != "情绪" {
		t.Fatalf("unexpected default label: %s", e.Label)
	}
	if e.Type != KindMood {
		t.Fatalf("unexpected default kind: %s", e.Type)
	}
}

func TestDedupKeyCombinesTimestampAndSender(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := Event{Timestamp: ts, Sender: "user1"}
	b := Event{Timestamp: ts, Sender: "user2"}
	c := Event{Timestamp: ts.Add(time.Second), Sender: "user1"}

	if a.DedupKey() == b.DedupKey() {
		t.Fatal("different senders must not share a dedup key")
	}
	if a.DedupKey() == c.DedupKey() {
		t.Fatal("different timestamps must not share a dedup key")
	}
	if a.DedupKey() != (Event{Timestamp: ts, Sender: "user1"}).DedupKey() {
		t.Fatal("identical timestamp+sender must share a dedup key")
	}
}

func TestCatalogLookup(t *testing.T) {
	def, ok := Lookup("happy")
	if !ok {
		t.Fatal("expected happy in the catalog")
	}
	if def.Emoji != "😊" || def.Label != "开心" {
		t.Fatalf("unexpected definition: %+v", def)
	}

	if _, ok := Lookup("grumpy"); ok {
		t.Fatal("did not expect grumpy in the catalog")
	}
}
