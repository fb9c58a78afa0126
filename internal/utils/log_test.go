package utils

import (
	"context"
	"testing"
	"time"
)

func TestTruncateForLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		limit  int
		expect string
	}{
		{
			name:   "returns empty when limit non-positive",
			input:  "hello world",
			limit:  0,
			expect: "",
		},
		{
			name:   "shorter than limit",
			input:  "hello",
			limit:  10,
			expect: "hello",
		},
		{
			name:   "truncates and adds ellipsis",
			input:  "hello world",
			limit:  5,
			expect: "hello...",
		},
		{
			name:   "counts runes not bytes",
			input:  "₹4.5L per annum",
			limit:  5,
			expect: "₹4.5L...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateForLog(tt.input, tt.limit); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"plain text":                       "plain text",
		"```\nfenced\n```":                 "fenced",
		"```text\nwith language\n```":      "with language",
		"`inline`":                         "inline",
		"  ```markdown\nA line.\nB.\n```  ": "A line.\nB.",
	}

	for input, expect := range tests {
		if got := StripCodeFence(input); got != expect {
			t.Fatalf("StripCodeFence(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestLimitWords(t *testing.T) {
	t.Parallel()

	if got := LimitWords("  one two   three four ", 3); got != "one two three" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := LimitWords("short one", 15); got != "short one" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestWaitForStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)

	err := WaitFor(ctx, time.Hour, func(time.Duration) { <-block })
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitForUsesSleeper(t *testing.T) {
	t.Parallel()

	var got time.Duration
	if err := WaitFor(context.Background(), time.Second, func(d time.Duration) { got = d }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != time.Second {
		t.Fatalf("expected sleeper to receive 1s, got %v", got)
	}
	if err := WaitFor(context.Background(), 0, nil); err != nil {
		t.Fatalf("unexpected error for zero wait: %v", err)
	}
}
