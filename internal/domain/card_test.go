package domain

import "testing"

func TestBaseColorWireTags(t *testing.T) {
	want := []ColorTag{"red", "blue", "green", "yellow", "orange", "purple", "brown"}
	if len(BaseColors) != len(want) {
		t.Fatalf("Got %d base colors, want %d", len(BaseColors), len(want))
	}
	for i, tag := range want {
		if BaseColors[i] != tag {
			t.Errorf("BaseColors[%d] = %q, want %q", i, BaseColors[i], tag)
		}
	}
}

func TestCardClassification(t *testing.T) {
	tests := []struct {
		color    ColorTag
		scorable bool
		wild     bool
		seed     bool
	}{
		{ColorBrown, true, false, false},
		{ColorRed, true, false, false},
		{ColorCotton, false, false, false},
		{ColorWild, false, true, false},
		{ColorGoldenWild, false, true, false},
		{ColorEndRound, false, false, false},
		{ColorGreenColumn1, false, false, true},
		{ColorBrownColumn, false, false, true},
		{ColorSummaryBrown, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.color), func(t *testing.T) {
			c := Card{Color: tt.color}
			if got := c.IsScorableColor(); got != tt.scorable {
				t.Errorf("IsScorableColor() = %v, want %v", got, tt.scorable)
			}
			if got := c.IsWild(); got != tt.wild {
				t.Errorf("IsWild() = %v, want %v", got, tt.wild)
			}
			if got := c.IsColumnSeed(); got != tt.seed {
				t.Errorf("IsColumnSeed() = %v, want %v", got, tt.seed)
			}
		})
	}
}
