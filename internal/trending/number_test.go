package trending

import "testing"

// TestParseCount tests display text to integer conversion.
func TestParseCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "thousands with decimal", text: "1.2k", want: 1200},
		{name: "thousands with larger decimal", text: "5.6k", want: 5600},
		{name: "plain integer", text: "1234", want: 1234},
		{name: "empty string", text: "", want: 0},
		{name: "no digits", text: "invalid", want: 0},
		{name: "uppercase thousands marker", text: "3.4K", want: 3400},
		{name: "comma separated", text: "1,234", want: 1234},
		{name: "surrounding whitespace", text: "  2.5k\n", want: 2500},
		{name: "leading label text", text: "star 1.2k", want: 1200},
		{name: "bare decimal without marker", text: "12.5", want: 12},
		{name: "thousands without decimal", text: "42k", want: 42000},
		{name: "only marker", text: "k", want: 0},
		{name: "only dot", text: ".", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseCount(tt.text); got != tt.want {
				t.Errorf("ParseCount(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}
