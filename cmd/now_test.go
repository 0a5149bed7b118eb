package cmd

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "width smaller than ellipsis",
			input:    "Hello",
			width:    2,
			expected: "..",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padToWidth(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestPadToWidth_AlwaysExactWidth(t *testing.T) {
	inputs := []string{
		"Two – Disclosure",
		"♫ SpotBar",
		"⏸ Paused track with a fairly long name",
		"🎵 Music",
	}

	for _, input := range inputs {
		for _, width := range []int{5, 10, 20, 40} {
			got := padToWidth(input, width)
			if w := runewidth.StringWidth(got); w != width {
				t.Errorf("padToWidth(%q, %d) has display width %d", input, width, w)
			}
		}
	}
}
