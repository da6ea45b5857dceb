package phonetic

import (
	"fmt"
	"strings"
)

// Entry is the spoken material for one letter
type Entry struct {
	Letter string // Uppercase letter, e.g. "A"
	Name   string // Letter name as spoken, e.g. "ay"
	Sound  string // Phonetic sound as spoken, e.g. "ah"
	Word   string // Example word, e.g. "Apple"
	IPA    string // IPA of the sound, e.g. "æ"
}

// Phrases are spelled out so TTS engines do not read single letters as words
var entries = [26]Entry{
	{"A", "ay", "ah", "Apple", "æ"},
	{"B", "bee", "buh", "Ball", "b"},
	{"C", "see", "kuh", "Cat", "k"},
	{"D", "dee", "duh", "Dog", "d"},
	{"E", "ee", "eh", "Egg", "ɛ"},
	{"F", "eff", "fff", "Fish", "f"},
	{"G", "jee", "guh", "Goat", "ɡ"},
	{"H", "aitch", "hah", "Hat", "h"},
	{"I", "eye", "ih", "Igloo", "ɪ"},
	{"J", "jay", "juh", "Jam", "dʒ"},
	{"K", "kay", "kuh", "Kite", "k"},
	{"L", "ell", "lll", "Lion", "l"},
	{"M", "em", "mmm", "Moon", "m"},
	{"N", "en", "nnn", "Nest", "n"},
	{"O", "oh", "aw", "Octopus", "ɒ"},
	{"P", "pee", "puh", "Pig", "p"},
	{"Q", "cue", "kwuh", "Queen", "kw"},
	{"R", "ar", "rrr", "Rabbit", "ɹ"},
	{"S", "ess", "sss", "Sun", "s"},
	{"T", "tee", "tuh", "Tree", "t"},
	{"U", "you", "uh", "Umbrella", "ʌ"},
	{"V", "vee", "vvv", "Van", "v"},
	{"W", "double you", "wuh", "Whale", "w"},
	{"X", "ex", "ks", "Fox", "ks"},
	{"Y", "why", "yuh", "Yo-yo", "j"},
	{"Z", "zed", "zzz", "Zebra", "z"},
}

// Lookup returns the entry for a base letter index (0 = A)
func Lookup(index int) (Entry, bool) {
	if index < 0 || index >= len(entries) {
		return Entry{}, false
	}
	return entries[index], true
}

// All returns a copy of the whole table in alphabet order
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// ExamplePhrase returns the "is for" phrase, e.g. "A is for Apple"
func (e Entry) ExamplePhrase() string {
	return fmt.Sprintf("%s is for %s", e.Letter, e.Word)
}

// Describe builds an offline explanation used when no API key is configured
func (e Entry) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Letter: %s (say \"%s\")\n", e.Letter, e.Name)
	fmt.Fprintf(&b, "Sound: /%s/ like \"%s\"\n", e.IPA, e.Sound)
	fmt.Fprintf(&b, "%s", e.ExamplePhrase())
	return b.String()
}
