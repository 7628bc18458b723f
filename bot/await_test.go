package bot

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestAwaiterDeliversMatchingReply(t *testing.T) {
	a := newAwaiter()

	go func() {
		time.Sleep(5 * time.Millisecond)
		// Wrong author, then wrong channel, then the real reply.
		a.feed(&discordgo.Message{ChannelID: "c1", Author: &discordgo.User{ID: "other"}, Content: "no"})
		a.feed(&discordgo.Message{ChannelID: "c2", Author: &discordgo.User{ID: "u1"}, Content: "no"})
		a.feed(&discordgo.Message{ChannelID: "c1", Author: &discordgo.User{ID: "u1"}, Content: "1 2"})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	m, err := a.wait(ctx, "c1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if m.Content != "1 2" {
		t.Errorf("got %q, want %q", m.Content, "1 2")
	}
}

func TestAwaiterWaitIsBounded(t *testing.T) {
	a := newAwaiter()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := a.wait(ctx, "c1", "u1"); err == nil {
		t.Fatal("wait returned without a reply or deadline")
	}

	// The expired waiter must not leak.
	a.mu.Lock()
	n := len(a.waiters)
	a.mu.Unlock()
	if n != 0 {
		t.Errorf("%d waiters left registered, want 0", n)
	}
}

func TestSplitTargets(t *testing.T) {
	tests := []struct {
		crop string
		ids  []string
		rest string
		ok   bool
	}{
		{"drink water to <#123> <@456>", []string{"123", "456"}, "drink water", true},
		{"talk to the team", nil, "", false},
		{"no separator here", nil, "", false},
	}
	for _, tt := range tests {
		ids, rest, ok := splitTargets(tt.crop, " to ")
		if ok != tt.ok || rest != tt.rest || len(ids) != len(tt.ids) {
			t.Errorf("splitTargets(%q) = %v, %q, %v, want %v, %q, %v",
				tt.crop, ids, rest, ok, tt.ids, tt.rest, tt.ok)
			continue
		}
		for i := range ids {
			if ids[i] != tt.ids[i] {
				t.Errorf("splitTargets(%q) ids = %v, want %v", tt.crop, ids, tt.ids)
			}
		}
	}
}

func TestElapsedFormat(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{3661, "01:01:01"},
		{90000, "25:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := elapsed(tt.seconds); got != tt.want {
			t.Errorf("elapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
