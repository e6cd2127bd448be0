package domain

// ColorTag identifies what a card is. Base colors score through the
// difficulty tables; the remaining tags are specials, column seeds and the
// per-player summary indicators.
type ColorTag string

const (
	ColorRed    ColorTag = "red"
	ColorBlue   ColorTag = "blue"
	ColorGreen  ColorTag = "green"
	ColorYellow ColorTag = "yellow"
	ColorOrange ColorTag = "orange"
	ColorPurple ColorTag = "purple"
	ColorBrown  ColorTag = "brown"

	// ColorCotton scores a flat bonus per card instead of a set value.
	ColorCotton ColorTag = "cotton"
	// ColorWild is a chameleon joker assigned to a color at scoring time.
	ColorWild ColorTag = "wild"
	// ColorGoldenWild is a joker that also raises its column's capacity.
	ColorGoldenWild ColorTag = "golden_wild"
	// ColorEndRound is the trigger card that closes the current round.
	ColorEndRound ColorTag = "endRound"

	// Column seed cards. The numbered green seeds belong to the two-player
	// variant and carry their target column; brown seeds fill in draw order.
	ColorGreenColumn0 ColorTag = "green_column_0"
	ColorGreenColumn1 ColorTag = "green_column_1"
	ColorGreenColumn2 ColorTag = "green_column_2"
	ColorBrownColumn  ColorTag = "brown_column"

	// Summary cards are score-table reminders handed to every seat. They
	// are indicators only and never score.
	ColorSummaryBrown  ColorTag = "summary_brown"
	ColorSummaryViolet ColorTag = "summary_violet"
)

// BaseColors are the seven scorable chameleon colors.
var BaseColors = []ColorTag{
	ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorOrange, ColorPurple, ColorBrown,
}

// Card is a single deck card. IsEndRound marks the round trigger;
// IsCompensation marks cards granted outside the normal draw flow.
type Card struct {
	Color          ColorTag `json:"color"`
	IsEndRound     bool     `json:"isEndRound,omitempty"`
	IsCompensation bool     `json:"isCompensation,omitempty"`
}

// IsBaseColor reports whether the tag is one of the seven scorable colors.
func (t ColorTag) IsBaseColor() bool {
	for _, color := range BaseColors {
		if t == color {
			return true
		}
	}
	return false
}

// IsScorableColor reports whether the card counts toward a color set.
// Cotton, wilds, seeds, summary and trigger cards do not.
func (c Card) IsScorableColor() bool {
	return c.Color.IsBaseColor()
}

// IsWild reports whether the card is a chameleon joker of either kind.
func (c Card) IsWild() bool {
	return c.Color == ColorWild || c.Color == ColorGoldenWild
}

// IsColumnSeed reports whether the card seeds a column at round setup.
func (c Card) IsColumnSeed() bool {
	switch c.Color {
	case ColorGreenColumn0, ColorGreenColumn1, ColorGreenColumn2, ColorBrownColumn:
		return true
	}
	return false
}

const (
	// ColumnBaseCapacity is the normal card limit of a column.
	ColumnBaseCapacity = 3
	// ColumnGoldenCapacity applies once a golden wild sits in the column.
	ColumnGoldenCapacity = 4
)

// Column is one open draft pile on the table.
type Column struct {
	Cards []Card `json:"cards"`
}

// HasGoldenWild reports whether the column holds the golden wild.
func (c Column) HasGoldenWild() bool {
	for _, card := range c.Cards {
		if card.Color == ColorGoldenWild {
			return true
		}
	}
	return false
}

// Capacity returns the column's current card limit.
func (c Column) Capacity() int {
	if c.HasGoldenWild() {
		return ColumnGoldenCapacity
	}
	return ColumnBaseCapacity
}

// IsFull reports whether no further card fits in the column.
func (c Column) IsFull() bool {
	return len(c.Cards) >= c.Capacity()
}
