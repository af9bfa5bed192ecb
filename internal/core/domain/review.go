package domain

import "time"

// Score category names as they appear on the wire.
const (
	ScoreAroma       = "aroma"
	ScoreAppearance  = "appearance"
	ScoreTaste       = "taste"
	ScorePalate      = "palate"
	ScoreBottleStyle = "bottle_style"
)

// ScoreRange declares the inclusive bounds for one review sub-score.
type ScoreRange struct {
	Name string
	Min  int
	Max  int
}

// ScoreRanges enumerates the five sub-score categories. Taste carries the
// wider 0-10 scale, the remaining four are scored 0-5.
var ScoreRanges = []ScoreRange{
	{Name: ScoreAroma, Min: 0, Max: 5},
	{Name: ScoreAppearance, Min: 0, Max: 5},
	{Name: ScoreTaste, Min: 0, Max: 10},
	{Name: ScorePalate, Min: 0, Max: 5},
	{Name: ScoreBottleStyle, Min: 0, Max: 5},
}

// Review mirrors the persisted representation in the reviews table.
type Review struct {
	ID          int64
	AuthorID    int64
	BeerID      int64
	Aroma       int
	Appearance  int
	Taste       int
	Palate      int
	BottleStyle int
	CreatedOn   time.Time
}

// Overall is the sum of the five sub-scores. It is computed on demand and
// never stored.
func (r Review) Overall() int {
	return r.Aroma + r.Appearance + r.Taste + r.Palate + r.BottleStyle
}

// Score returns the named sub-score value.
func (r Review) Score(name string) int {
	switch name {
	case ScoreAroma:
		return r.Aroma
	case ScoreAppearance:
		return r.Appearance
	case ScoreTaste:
		return r.Taste
	case ScorePalate:
		return r.Palate
	case ScoreBottleStyle:
		return r.BottleStyle
	}
	return 0
}

// SetScore assigns the named sub-score value. Unknown names are ignored.
func (r *Review) SetScore(name string, value int) {
	switch name {
	case ScoreAroma:
		r.Aroma = value
	case ScoreAppearance:
		r.Appearance = value
	case ScoreTaste:
		r.Taste = value
	case ScorePalate:
		r.Palate = value
	case ScoreBottleStyle:
		r.BottleStyle = value
	}
}
