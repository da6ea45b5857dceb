package flashcard

import (
	"codeberg.org/snonux/speakabc/internal/phonetic"
)

// Position is one entry of the addressable strip
type Position struct {
	Index      int
	Symbol     string
	Bookmarked bool
	Current    bool
}

// Snapshot is everything the GUI needs to render one frame
type Snapshot struct {
	Index      int
	Symbol     string
	Name       string
	Sound      string
	Word       string
	Lowercase  bool
	Filter     bool
	Bookmarked bool

	// Before holds the preceding symbols, nearest first; After the following ones
	Before []string
	After  []string

	Positions []Position
	Ordinal   int // 1-based position within the addressable space
	Total     int

	CanFilter bool // bookmarks-only can be switched on or off
	HasSpeech bool
}

// Snapshot computes the render state
func (c *Controller) Snapshot() Snapshot {
	d := c.deck
	e, _ := phonetic.Lookup(c.current)

	s := Snapshot{
		Index:      c.current,
		Symbol:     d.LetterAt(c.current),
		Name:       e.Name,
		Sound:      e.Sound,
		Word:       e.Word,
		Lowercase:  d.Lowercase(),
		Filter:     d.Filter(),
		Bookmarked: d.IsBookmarked(c.current),
		CanFilter:  d.Filter() || len(d.Bookmarks()) > 0,
		HasSpeech:  c.speaker != nil && c.speaker.Available(),
	}

	for k := 1; k <= c.config.PeekDepth; k++ {
		if prev, err := d.Step(c.current, -k); err == nil {
			s.Before = append(s.Before, d.LetterAt(prev))
		}
		if next, err := d.Step(c.current, k); err == nil {
			s.After = append(s.After, d.LetterAt(next))
		}
	}

	space, err := d.Addressable()
	if err != nil {
		return s
	}
	s.Total = len(space)
	for pos, i := range space {
		s.Positions = append(s.Positions, Position{
			Index:      i,
			Symbol:     d.LetterAt(i),
			Bookmarked: d.IsBookmarked(i),
			Current:    i == c.current,
		})
		if i == c.current {
			s.Ordinal = pos + 1
		}
	}

	return s
}
