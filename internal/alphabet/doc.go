// Package alphabet models the 26-letter flashcard deck: the case-derived
// symbols, the session bookmark set and the circular, optionally
// bookmark-filtered index space used for navigation.
package alphabet
