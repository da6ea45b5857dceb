package alphabet

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

// Size is the number of letters in the deck
const Size = 26

var (
	// ErrEmptyAddressSpace is returned when the filter leaves nothing to navigate
	ErrEmptyAddressSpace = errors.New("no addressable letters")

	// ErrNotAddressable is returned when an index is outside the addressable space
	ErrNotAddressable = errors.New("letter is not addressable")
)

// Deck holds the letter case, the bookmark set and the bookmarks-only filter.
// It is not safe for concurrent use; the flashcard controller owns it.
type Deck struct {
	lowercase bool
	bookmarks [Size]bool
	marked    int
	filter    bool

	intn func(n int) int
}

// NewDeck creates an uppercase deck with no bookmarks
func NewDeck() *Deck {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Deck{intn: r.Intn}
}

// SetRandom replaces the source used by Random. intn must return a value in [0, n).
func (d *Deck) SetRandom(intn func(n int) int) {
	if intn != nil {
		d.intn = intn
	}
}

// Valid reports whether index is a base letter index
func Valid(index int) bool {
	return index >= 0 && index < Size
}

// LetterAt returns the symbol for a base index in the current case
func (d *Deck) LetterAt(index int) string {
	if !Valid(index) {
		return ""
	}
	letter := string(rune('A' + index))
	if d.lowercase {
		return strings.ToLower(letter)
	}
	return letter
}

// Lowercase reports whether symbols are rendered in lower case
func (d *Deck) Lowercase() bool {
	return d.lowercase
}

// SetLowercase sets the case flag for all symbols
func (d *Deck) SetLowercase(lower bool) {
	d.lowercase = lower
}

// ToggleCase flips the case flag. Indices and bookmarks are untouched.
func (d *Deck) ToggleCase() {
	d.lowercase = !d.lowercase
}

// IsBookmarked reports whether index is in the bookmark set
func (d *Deck) IsBookmarked(index int) bool {
	return Valid(index) && d.bookmarks[index]
}

// Bookmarks returns the bookmarked indices in natural order
func (d *Deck) Bookmarks() []int {
	out := make([]int, 0, d.marked)
	for i, marked := range d.bookmarks {
		if marked {
			out = append(out, i)
		}
	}
	return out
}

// ToggleBookmark flips bookmark membership of index. Removing the last
// bookmark turns the filter off.
func (d *Deck) ToggleBookmark(index int) {
	if !Valid(index) {
		return
	}
	d.bookmarks[index] = !d.bookmarks[index]
	if d.bookmarks[index] {
		d.marked++
	} else {
		d.marked--
	}
	if d.marked == 0 {
		d.filter = false
	}
}

// Filter reports whether navigation is restricted to bookmarks
func (d *Deck) Filter() bool {
	return d.filter
}

// SetFilter switches the bookmarks-only mode. Enabling it with no bookmarks
// fails with ErrEmptyAddressSpace and leaves the mode unchanged.
func (d *Deck) SetFilter(on bool) error {
	if on && d.marked == 0 {
		return ErrEmptyAddressSpace
	}
	d.filter = on
	return nil
}

// Addressable returns the navigable indices in natural order
func (d *Deck) Addressable() ([]int, error) {
	if !d.filter {
		all := make([]int, Size)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if d.marked == 0 {
		return nil, ErrEmptyAddressSpace
	}
	return d.Bookmarks(), nil
}

// Contains reports whether index is currently addressable
func (d *Deck) Contains(index int) bool {
	if !Valid(index) {
		return false
	}
	if !d.filter {
		return true
	}
	return d.bookmarks[index]
}

// Step moves delta positions from current through the addressable space,
// wrapping in both directions. current must itself be addressable.
func (d *Deck) Step(current, delta int) (int, error) {
	space, err := d.Addressable()
	if err != nil {
		return 0, err
	}
	pos := indexOf(space, current)
	if pos < 0 {
		return 0, ErrNotAddressable
	}
	n := len(space)
	return space[((pos+delta)%n+n)%n], nil
}

// Following returns the first addressable index at or after index, wrapping
// past the end of the alphabet.
func (d *Deck) Following(index int) (int, error) {
	space, err := d.Addressable()
	if err != nil {
		return 0, err
	}
	for _, i := range space {
		if i >= index {
			return i, nil
		}
	}
	return space[0], nil
}

// Position returns the zero-based position of index within the addressable space
func (d *Deck) Position(index int) (int, error) {
	space, err := d.Addressable()
	if err != nil {
		return 0, err
	}
	pos := indexOf(space, index)
	if pos < 0 {
		return 0, ErrNotAddressable
	}
	return pos, nil
}

// Random returns a uniformly chosen addressable index
func (d *Deck) Random() (int, error) {
	space, err := d.Addressable()
	if err != nil {
		return 0, err
	}
	return space[d.intn(len(space))], nil
}

func indexOf(space []int, index int) int {
	for pos, i := range space {
		if i == index {
			return pos
		}
	}
	return -1
}
