package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"codeberg.org/snonux/speakabc/internal/phonetic"
)

// PrintLetterTable writes the letter table to w
func PrintLetterTable(w io.Writer, lowercase bool) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Letter"), bold.Sprint("Name"), bold.Sprint("Sound"), bold.Sprint("IPA"), bold.Sprint("Example"))
	for _, e := range phonetic.All() {
		letter := e.Letter
		if lowercase {
			letter = strings.ToLower(letter)
		}
		tbl.AddRow(letter, e.Name, e.Sound, faint.Sprintf("/%s/", e.IPA), e.ExamplePhrase())
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

// ListLetters prints the letter table in the case chosen by the flags,
// config file or environment
func ListLetters(w io.Writer) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	PrintLetterTable(w, settings.Card.Lowercase)
	return nil
}

// ParseLetter turns a command line argument into a base index
func ParseLetter(arg string) (int, error) {
	s := strings.TrimSpace(arg)
	if len(s) != 1 {
		return 0, fmt.Errorf("expected a single letter A-Z, got %q", arg)
	}
	r := s[0]
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), nil
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), nil
	}
	return 0, fmt.Errorf("expected a single letter A-Z, got %q", arg)
}
