package domain

// Beer mirrors the persisted representation in the beers table.
//
// GlassID is a weak reference: deleting a glass clears the link on every
// beer that carried it, it never cascades into the beers themselves.
type Beer struct {
	ID           int64
	Name         string
	Brewer       string
	IBU          int
	Calories     int
	ABV          float64
	Style        string
	BrewLocation string
	GlassID      *int64
}

// Glass is a named glassware style referenced by zero or more beers.
type Glass struct {
	ID   int64
	Name string
}
