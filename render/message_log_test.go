package render

import (
	"log"
	"testing"
)

func TestMessageLogKeepsRecent(t *testing.T) {
	ml := NewMessageLog(3)
	for _, m := range []string{"a", "b", "c", "d"} {
		ml.Add(m)
	}

	if ml.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ml.Len())
	}
	got := ml.RecentMessages(10)
	want := []string{"d", "c", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RecentMessages[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	ml.Clear()
	if ml.Len() != 0 {
		t.Error("Clear must drop every message")
	}
}

func TestMessageLogAsWriter(t *testing.T) {
	ml := NewMessageLog(10)
	logger := log.New(ml, "", 0)
	logger.Printf("Generation phase %s", "growing")
	logger.Printf("two\nlines")

	got := ml.RecentMessages(3)
	if len(got) != 3 || got[0] != "lines" || got[1] != "two" || got[2] != "Generation phase growing" {
		t.Errorf("RecentMessages = %q", got)
	}

	// Fragments wait for their newline
	ml.Write([]byte("par"))
	if ml.Len() != 3 {
		t.Fatalf("Fragment stored early, Len = %d", ml.Len())
	}
	ml.Write([]byte("tial\n"))
	if got := ml.RecentMessages(1); got[0] != "partial" {
		t.Errorf("Joined fragment = %q", got[0])
	}
}
