package domain

import (
	"reflect"
	"testing"
)

func cards(colors ...ColorTag) []Card {
	out := make([]Card, 0, len(colors))
	for _, c := range colors {
		out = append(out, Card{Color: c})
	}
	return out
}

func repeat(color ColorTag, n int) []Card {
	out := make([]Card, n)
	for i := range out {
		out[i] = Card{Color: color}
	}
	return out
}

func TestScoreTableValue(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		count      int
		want       int
	}{
		{"Basic 1", DifficultyBasic, 1, 1},
		{"Basic 3", DifficultyBasic, 3, 6},
		{"Basic 6", DifficultyBasic, 6, 21},
		{"Basic above cap", DifficultyBasic, 9, 21},
		{"Expert 3 peak", DifficultyExpert, 3, 8},
		{"Expert 6", DifficultyExpert, 6, 5},
		{"Expert above cap", DifficultyExpert, 8, 5},
		{"Zero", DifficultyBasic, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreTableValue(tt.difficulty, tt.count); got != tt.want {
				t.Errorf("ScoreTableValue(%s, %d) = %d, want %d", tt.difficulty, tt.count, got, tt.want)
			}
		})
	}
}

func TestCalculatePlayerScoreTopThreeOnly(t *testing.T) {
	// Basic: red:4 -> 10, blue:2 -> 3, green:1 -> 1, no excess.
	collection := append(repeat(ColorRed, 4), append(repeat(ColorBlue, 2), repeat(ColorGreen, 1)...)...)
	got := CalculatePlayerScore(collection, nil, DifficultyBasic)
	if got.Total != 14 {
		t.Fatalf("total = %d, want 14", got.Total)
	}
	if got.Penalty != 0 || len(got.ExcessColors) != 0 {
		t.Fatalf("unexpected penalty %d (excess %v)", got.Penalty, got.ExcessColors)
	}
}

func TestCalculatePlayerScoreExcessAndCotton(t *testing.T) {
	// Basic: red:5 -> 15, blue:4 -> 10, green:3 -> 6, yellow:2 -> -2, cotton -> +2.
	collection := append(repeat(ColorRed, 5), repeat(ColorBlue, 4)...)
	collection = append(collection, repeat(ColorGreen, 3)...)
	collection = append(collection, repeat(ColorYellow, 2)...)
	collection = append(collection, Card{Color: ColorCotton})

	got := CalculatePlayerScore(collection, nil, DifficultyBasic)
	if got.Positive != 31 {
		t.Fatalf("positive = %d, want 31", got.Positive)
	}
	if got.Penalty != -2 {
		t.Fatalf("penalty = %d, want -2", got.Penalty)
	}
	if got.CottonBonus != 2 {
		t.Fatalf("cotton bonus = %d, want 2", got.CottonBonus)
	}
	if got.Total != 31 {
		t.Fatalf("total = %d, want 31", got.Total)
	}
}

func TestCalculatePlayerScoreFloorsAtZero(t *testing.T) {
	// Expert: one card of every color -> 1+1+1 positive, four excess
	// singletons -> -4, raw total -1.
	collection := cards(BaseColors...)

	got := CalculatePlayerScore(collection, nil, DifficultyExpert)
	if got.Total < 0 {
		t.Fatalf("total = %d, must never be negative", got.Total)
	}
	if got.Total != 0 {
		t.Fatalf("total = %d, want floored 0 (positive %d, penalty %d)", got.Total, got.Positive, got.Penalty)
	}
}

func TestCalculatePlayerScoreIsPure(t *testing.T) {
	collection := append(repeat(ColorRed, 3), repeat(ColorBlue, 2)...)
	wilds := cards(ColorWild, ColorGoldenWild)
	first := CalculatePlayerScore(collection, wilds, DifficultyExpert)
	for i := 0; i < 5; i++ {
		if again := CalculatePlayerScore(collection, wilds, DifficultyExpert); again.Total != first.Total {
			t.Fatalf("score changed between calls: %d vs %d", again.Total, first.Total)
		}
	}
}

func TestOptimizeWildCards(t *testing.T) {
	tests := []struct {
		name   string
		counts map[ColorTag]int
		wilds  int
		want   map[ColorTag]int
	}{
		{
			name:   "zero wilds is identity",
			counts: map[ColorTag]int{ColorRed: 2, ColorBlue: 1},
			wilds:  0,
			want:   map[ColorTag]int{ColorRed: 2, ColorBlue: 1},
		},
		{
			name:   "two wilds round-robin over two colors",
			counts: map[ColorTag]int{ColorRed: 2, ColorBlue: 2},
			wilds:  2,
			want:   map[ColorTag]int{ColorRed: 3, ColorBlue: 3},
		},
		{
			name:   "wilds pad only the top three",
			counts: map[ColorTag]int{ColorRed: 4, ColorBlue: 3, ColorGreen: 2, ColorYellow: 1},
			wilds:  3,
			want:   map[ColorTag]int{ColorRed: 5, ColorBlue: 4, ColorGreen: 3, ColorYellow: 1},
		},
		{
			name:   "wrap continues on the strongest color",
			counts: map[ColorTag]int{ColorRed: 5, ColorBlue: 1},
			wilds:  3,
			want:   map[ColorTag]int{ColorRed: 7, ColorBlue: 2},
		},
		{
			name:   "no colors leaves wilds unassigned",
			counts: map[ColorTag]int{},
			wilds:  2,
			want:   map[ColorTag]int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OptimizeWildCards(tt.counts, tt.wilds)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("OptimizeWildCards() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptimizeWildCardsDoesNotMutateInput(t *testing.T) {
	counts := map[ColorTag]int{ColorRed: 2}
	OptimizeWildCards(counts, 4)
	if counts[ColorRed] != 2 {
		t.Fatalf("input counts mutated: %v", counts)
	}
}

func TestSortedColorsByCountTieBreak(t *testing.T) {
	counts := map[ColorTag]int{ColorYellow: 2, ColorBlue: 2, ColorRed: 3}
	got := SortedColorsByCount(counts)
	want := []ColorTag{ColorRed, ColorBlue, ColorYellow}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedColorsByCount() = %v, want %v", got, want)
	}
}

func TestDetermineWinners(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]int
		want   []string
	}{
		{"single winner", map[string]int{"ana": 20, "bo": 15}, []string{"ana"}},
		{"tie keeps both", map[string]int{"ana": 20, "bo": 20, "cy": 3}, []string{"ana", "bo"}},
		{"all zero", map[string]int{"ana": 0, "bo": 0}, []string{"ana", "bo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineWinners(tt.scores); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetermineWinners() = %v, want %v", got, tt.want)
			}
		})
	}
}
