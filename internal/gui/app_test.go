package gui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/speakabc/internal/flashcard"
	"codeberg.org/snonux/speakabc/internal/testutil"
)

// newKeyTestApp builds just enough of the application for the key path
func newKeyTestApp(t *testing.T) *Application {
	t.Helper()
	test.NewTempApp(t)

	a := &Application{
		controller: flashcard.New(nil, nil, &testutil.MockScheduler{}),
	}
	a.window = test.NewTempWindow(t, nil)
	a.setupKeyboardShortcuts()
	return a
}

func tapCheck(check *widget.Check) {
	test.TapAt(check, fyne.NewPos(5, check.Size().Height/2))
}

func TestCommandCheckReleasesFocus(t *testing.T) {
	a := newKeyTestApp(t)
	check := a.newCommandCheck("lower case", flashcard.ToggleCase)
	a.window.SetContent(check)

	tapCheck(check)

	assert.True(t, a.controller.Deck().Lowercase())
	assert.Nil(t, a.window.Canvas().Focused())

	// Keys reach the controller again after the click
	require.Equal(t, 0, a.controller.Current())
	a.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: fyne.KeyRight})
	assert.Equal(t, 1, a.controller.Current())
}

func TestCommandCheckIgnoredWhileRendering(t *testing.T) {
	a := newKeyTestApp(t)
	check := a.newCommandCheck("lower case", flashcard.ToggleCase)
	a.window.SetContent(check)

	a.updating = true
	check.SetChecked(true)
	a.updating = false

	assert.False(t, a.controller.Deck().Lowercase())
}

func TestEscapeReleasesFocus(t *testing.T) {
	a := newKeyTestApp(t)
	check := widget.NewCheck("bookmarks only", nil)
	a.window.SetContent(check)
	a.window.Canvas().Focus(check)
	require.NotNil(t, a.window.Canvas().Focused())

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyEscape})

	assert.Nil(t, a.window.Canvas().Focused())
}

func TestHandleKeyRoutesToController(t *testing.T) {
	a := newKeyTestApp(t)

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	assert.Equal(t, 25, a.controller.Current())

	a.handleKey(&fyne.KeyEvent{Name: fyne.KeyB})
	assert.True(t, a.controller.Deck().IsBookmarked(25))
}
