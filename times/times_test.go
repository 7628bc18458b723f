package times

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fixedNow is a Sunday, 10:00 UTC.
var fixedNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func newFixed(token string) *Extractor {
	e := New(token, time.UTC)
	e.Now = func() time.Time { return fixedNow }
	return e
}

func TestExtractExactLayouts(t *testing.T) {
	tests := []struct {
		token string
		want  time.Time
	}{
		{"2026-04-01 15:04", time.Date(2026, 4, 1, 15, 4, 0, 0, time.UTC)},
		{"2026-04-01 15:04:05", time.Date(2026, 4, 1, 15, 4, 5, 0, time.UTC)},
		{"2026-04-01", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"01/04/2026 15:04", time.Date(2026, 4, 1, 15, 4, 0, 0, time.UTC)},
		{"01/04/2026", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := newFixed(tt.token).ExtractExact(context.Background())
		if err != nil {
			t.Fatalf("ExtractExact(%q): %v", tt.token, err)
		}
		if got != tt.want.Unix() {
			t.Errorf("ExtractExact(%q) = %v, want %v", tt.token, got, tt.want.Unix())
		}
	}
}

func TestExtractExactClockRollsToTomorrow(t *testing.T) {
	tests := []struct {
		token string
		want  time.Time
	}{
		// Later today.
		{"15:30", time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)},
		{"15:30:45", time.Date(2026, 3, 1, 15, 30, 45, 0, time.UTC)},
		// Already past, so tomorrow.
		{"09:30", time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := newFixed(tt.token).ExtractExact(context.Background())
		if err != nil {
			t.Fatalf("ExtractExact(%q): %v", tt.token, err)
		}
		if got != tt.want.Unix() {
			t.Errorf("ExtractExact(%q) = %v, want %v", tt.token, got, tt.want.Unix())
		}
	}
}

func TestExtractExactWeekdays(t *testing.T) {
	tests := []struct {
		token string
		want  time.Time
	}{
		{"friday", time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)},
		{"wed 18:00", time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)},
		{"monday-08:15", time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)},
		// Sunday 10:00 now; sunday 09:00 is past, next week.
		{"sunday", time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)},
		// Sunday later today.
		{"sunday 20:00", time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := newFixed(tt.token).ExtractExact(context.Background())
		if err != nil {
			t.Fatalf("ExtractExact(%q): %v", tt.token, err)
		}
		if got != tt.want.Unix() {
			t.Errorf("ExtractExact(%q) = %v, want %v", tt.token, got, tt.want.Unix())
		}
	}
}

func TestExtractExactUnixTimestamp(t *testing.T) {
	got, err := newFixed("1893456000").ExtractExact(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != 1893456000 {
		t.Errorf("got %v, want 1893456000", got)
	}
}

func TestExtractExactQuantity(t *testing.T) {
	tests := []struct {
		token string
		delta int64
	}{
		{"10m", 600},
		{"2 hours", 7200},
		{"1 day 2 hours", 93600},
		{"1h30m", 5400},
		{"1 day, 2 hours and 3 minutes", 93780},
		// Short digit runs are plain seconds.
		{"600", 600},
	}
	for _, tt := range tests {
		got, err := newFixed(tt.token).ExtractExact(context.Background())
		if err != nil {
			t.Fatalf("ExtractExact(%q): %v", tt.token, err)
		}
		if want := fixedNow.Unix() + tt.delta; got != want {
			t.Errorf("ExtractExact(%q) = %v, want %v", tt.token, got, want)
		}
	}
}

func TestExtractExactNaturalFallback(t *testing.T) {
	got, err := newFixed("in 2 hours").ExtractExact(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := fixedNow.Add(2 * time.Hour).Unix()
	if got < want-60 || got > want+60 {
		t.Errorf("ExtractExact(\"in 2 hours\") = %v, want about %v", got, want)
	}
}

func TestExtractExactInvalid(t *testing.T) {
	for _, token := range []string{"", "banana", "10 bananas", "2h xyz"} {
		if _, err := newFixed(token).ExtractExact(context.Background()); !errors.Is(err, ErrInvalidTime) {
			t.Errorf("ExtractExact(%q) err = %v, want ErrInvalidTime", token, err)
		}
	}
}

func TestExtractDisplacement(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"10m", 600},
		{"-10m", -600},
		{"2 hours", 7200},
		{"-1 day", -86400},
		{"800", 800},
	}
	for _, tt := range tests {
		got, err := newFixed(tt.token).ExtractDisplacement(context.Background())
		if err != nil {
			t.Fatalf("ExtractDisplacement(%q): %v", tt.token, err)
		}
		if got != tt.want {
			t.Errorf("ExtractDisplacement(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestFormatDisplacementRoundTrip(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{600, "10m"},
		{93784, "1d 2h 3m 4s"},
		{608400, "1w 1h"},
		{-600, "-10m"},
	}
	for _, tt := range tests {
		got := FormatDisplacement(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDisplacement(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
		if tt.seconds <= 0 {
			continue
		}
		back, err := parseQuantity(got)
		if err != nil || back != tt.seconds {
			t.Errorf("parseQuantity(%q) = %v, %v, want %v", got, back, err, tt.seconds)
		}
	}
}

func TestPoolRunsAndCloses(t *testing.T) {
	p := NewPool(2)

	ran := false
	if err := p.Run(context.Background(), func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	if !ran {
		t.Error("task did not run")
	}

	p.Close()
	if err := p.Run(context.Background(), func() {}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Run after Close = %v, want ErrPoolClosed", err)
	}
}

func TestPoolHonoursContext(t *testing.T) {
	p := NewPool(1)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	go p.Run(context.Background(), func() { <-block })
	time.Sleep(10 * time.Millisecond)

	if err := p.Run(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run with cancelled ctx = %v, want context.Canceled", err)
	}
	close(block)
}
