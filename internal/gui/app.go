package gui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/speakabc/internal"
	"codeberg.org/snonux/speakabc/internal/flashcard"
	"codeberg.org/snonux/speakabc/internal/gesture"
	"codeberg.org/snonux/speakabc/internal/phonetic"
	"codeberg.org/snonux/speakabc/internal/speech"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	card          *Card
	beforeLabel   *widget.Label
	afterLabel    *widget.Label
	ordinalLabel  *widget.Label
	statusLabel   *widget.Label
	positionStrip *fyne.Container
	phonetic      *widget.Label
	logViewer     *LogViewer
	caseCheck     *widget.Check
	filterCheck   *widget.Check

	// Buttons
	prevButton     *ttwidget.Button
	nextButton     *ttwidget.Button
	randomButton   *ttwidget.Button
	bookmarkButton *ttwidget.Button
	sayButton      *ttwidget.Button
	soundButton    *ttwidget.Button
	stopButton     *ttwidget.Button
	infoButton     *ttwidget.Button
	helpButton     *ttwidget.Button

	// Core
	config     *Config
	sequencer  *speech.Sequencer
	controller *flashcard.Controller
	fetcher    *phonetic.Fetcher

	// True while render pushes state into check widgets, so their
	// OnChanged handlers do not issue commands back
	updating bool

	// Letter the phonetic pane describes; -1 before the first render
	explained int

	// Background processing
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds GUI application configuration
type Config struct {
	Card      *flashcard.Config
	Engine    speech.Engine // nil runs the card without sound
	OpenAIKey string        // enables the online phonetic explanation
}

// DefaultConfig returns default GUI configuration
func DefaultConfig() *Config {
	return &Config{
		Card: flashcard.DefaultConfig(),
	}
}

// New creates a new GUI application
func New(config *Config) *Application {
	if config == nil {
		config = DefaultConfig()
	} else if config.Card == nil {
		config.Card = flashcard.DefaultConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	myApp := app.NewWithID("org.codeberg.snonux.speakabc")
	myApp.SetIcon(GetAppIcon())

	a := &Application{
		app:       myApp,
		config:    config,
		ctx:       ctx,
		cancel:    cancel,
		fetcher:   phonetic.NewFetcher(config.OpenAIKey),
		explained: -1,
	}

	// Speech completions and hold timers land on the UI thread
	a.sequencer = speech.New(config.Engine, speech.WithDispatch(fyne.Do))
	a.controller = flashcard.New(config.Card, a.sequencer, gesture.ClockScheduler{Dispatch: fyne.Do})
	a.controller.SetOnChange(a.render)

	a.setupUI()
	a.render()

	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("speakabc v%s - Talking Alphabet", internal.Version))
	a.window.SetIcon(GetAppIcon())
	a.window.Resize(fyne.NewSize(720, 760))

	a.card = NewCard(a.controller)

	// Neighbour peeks either side of the card
	a.beforeLabel = widget.NewLabel("")
	a.beforeLabel.Alignment = fyne.TextAlignTrailing
	a.beforeLabel.TextStyle = fyne.TextStyle{Monospace: true}
	a.afterLabel = widget.NewLabel("")
	a.afterLabel.TextStyle = fyne.TextStyle{Monospace: true}

	a.prevButton = ttwidget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		a.controller.Do(flashcard.Previous)
	})
	a.nextButton = ttwidget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		a.controller.Do(flashcard.Next)
	})

	cardRow := container.NewBorder(
		nil, nil,
		container.NewHBox(a.prevButton, a.beforeLabel),
		container.NewHBox(a.afterLabel, a.nextButton),
		a.card,
	)

	// Action buttons
	a.sayButton = ttwidget.NewButtonWithIcon("Name", theme.MediaPlayIcon(), func() {
		a.controller.Do(flashcard.SayName)
	})
	a.soundButton = ttwidget.NewButtonWithIcon("Sound", theme.VolumeUpIcon(), func() {
		a.controller.Do(flashcard.SaySound)
	})
	a.stopButton = ttwidget.NewButtonWithIcon("", theme.MediaStopIcon(), func() {
		a.controller.Do(flashcard.Stop)
	})
	a.randomButton = ttwidget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		a.controller.Do(flashcard.Random)
	})
	a.bookmarkButton = ttwidget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		a.controller.Do(flashcard.ToggleBookmark)
	})
	a.infoButton = ttwidget.NewButtonWithIcon("", theme.InfoIcon(), a.onExplain)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	a.caseCheck = a.newCommandCheck("lower case", flashcard.ToggleCase)
	a.filterCheck = a.newCommandCheck("bookmarks only", flashcard.ToggleFilter)

	actions := container.NewHBox(
		a.sayButton,
		a.soundButton,
		a.stopButton,
		widget.NewSeparator(),
		a.randomButton,
		a.bookmarkButton,
		widget.NewSeparator(),
		a.caseCheck,
		a.filterCheck,
		layout.NewSpacer(),
		a.infoButton,
		a.helpButton,
	)

	// Position strip, one button per addressable letter
	a.positionStrip = container.NewHBox()
	a.ordinalLabel = widget.NewLabel("")
	strip := container.NewBorder(nil, nil, nil, a.ordinalLabel,
		container.NewHScroll(a.positionStrip))

	// Phonetic explanation
	a.phonetic = widget.NewLabel("")
	a.phonetic.Wrapping = fyne.TextWrapWord

	a.statusLabel = widget.NewLabel("")

	a.logViewer = NewLogViewer()
	log.SetOutput(io.MultiWriter(os.Stderr, a.logViewer))

	top := container.NewVBox(
		cardRow,
		strip,
		actions,
		widget.NewCard("", "Phonetic", a.phonetic),
	)
	content := container.NewBorder(
		top,
		a.statusLabel,
		nil, nil,
		a.logViewer,
	)

	a.setupTooltips()
	a.setupKeyboardShortcuts()

	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.window.SetOnClosed(a.shutdown)
}

// newCommandCheck creates a check box that runs cmd when the user flips it.
// Tapping a check focuses it, which would swallow the hotkeys, so focus is
// handed back to the canvas.
func (a *Application) newCommandCheck(label string, cmd flashcard.Command) *widget.Check {
	return widget.NewCheck(label, func(bool) {
		if a.updating {
			return
		}
		a.controller.Do(cmd)
		a.window.Canvas().Unfocus()
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// render pushes the controller snapshot into the widgets
func (a *Application) render() {
	s := a.controller.Snapshot()

	a.card.Show(s, a.controller.GestureState())

	a.beforeLabel.SetText(peek(s.Before, true))
	a.afterLabel.SetText(peek(s.After, false))
	a.ordinalLabel.SetText(fmt.Sprintf("%d / %d", s.Ordinal, s.Total))

	a.updating = true
	a.caseCheck.SetChecked(s.Lowercase)
	a.filterCheck.SetChecked(s.Filter)
	a.updating = false

	if s.CanFilter {
		a.filterCheck.Enable()
	} else {
		a.filterCheck.Disable()
	}

	if s.Bookmarked {
		a.bookmarkButton.SetIcon(theme.ContentRemoveIcon())
		a.bookmarkButton.SetToolTip("Remove bookmark (b)")
	} else {
		a.bookmarkButton.SetIcon(theme.ContentAddIcon())
		a.bookmarkButton.SetToolTip("Bookmark this letter (b)")
	}

	if s.HasSpeech {
		a.sayButton.Enable()
		a.soundButton.Enable()
		a.stopButton.Enable()
	} else {
		a.sayButton.Disable()
		a.soundButton.Disable()
		a.stopButton.Disable()
	}

	a.renderPositions(s.Positions)

	if s.Index != a.explained {
		e, _ := phonetic.Lookup(s.Index)
		a.phonetic.SetText(e.Describe())
		a.explained = s.Index
	}

	a.updateStatus(status(s))
}

func (a *Application) renderPositions(positions []flashcard.Position) {
	objects := make([]fyne.CanvasObject, 0, len(positions))
	for _, p := range positions {
		index := p.Index
		label := p.Symbol
		if p.Bookmarked {
			label += "★"
		}
		btn := widget.NewButton(label, func() {
			a.controller.GoTo(index)
		})
		if p.Current {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.LowImportance
		}
		objects = append(objects, btn)
	}
	a.positionStrip.Objects = objects
	a.positionStrip.Refresh()
}

// peek formats neighbour letters, nearest next to the card
func peek(letters []string, before bool) string {
	if !before {
		return strings.Join(letters, " ")
	}
	reversed := make([]string, len(letters))
	for i, l := range letters {
		reversed[len(letters)-1-i] = l
	}
	return strings.Join(reversed, " ")
}

func status(s flashcard.Snapshot) string {
	var parts []string
	if s.Filter {
		parts = append(parts, "Bookmarks only")
	}
	if !s.HasSpeech {
		parts = append(parts, "Speech unavailable")
	}
	if len(parts) == 0 {
		return "Tap to hear the name, hold for the sound, swipe to change letter"
	}
	return strings.Join(parts, " | ")
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}

// onExplain fetches the online explanation for the current letter
func (a *Application) onExplain() {
	index := a.controller.Current()
	e, ok := phonetic.Lookup(index)
	if !ok {
		return
	}
	if !a.fetcher.Enabled() {
		a.phonetic.SetText(e.Describe())
		a.updateStatus("Set OPENAI_API_KEY for detailed explanations")
		return
	}

	a.updateStatus(fmt.Sprintf("Fetching explanation for %s...", e.Letter))
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		text, err := a.fetcher.Explain(a.ctx, e)
		fyne.Do(func() {
			if err != nil {
				log.Printf("Failed to fetch explanation for %s: %v", e.Letter, err)
				a.updateStatus(fmt.Sprintf("Explanation failed: %v", err))
				return
			}
			// The user may have moved on while the request was running
			if a.controller.Current() != index {
				return
			}
			a.phonetic.SetText(text)
			a.updateStatus(fmt.Sprintf("Explanation for %s", e.Letter))
		})
	}()
}

func (a *Application) setupTooltips() {
	a.prevButton.SetToolTip("Previous letter (←)")
	a.nextButton.SetToolTip("Next letter (→)")
	a.sayButton.SetToolTip("Say the letter name (space)")
	a.soundButton.SetToolTip("Say the letter sound (p)")
	a.stopButton.SetToolTip("Stop speaking (esc)")
	a.randomButton.SetToolTip("Random letter (r)")
	a.bookmarkButton.SetToolTip("Bookmark this letter (b)")
	a.infoButton.SetToolTip("Explain the sound (i)")
	a.helpButton.SetToolTip("Keyboard shortcuts (h)")
}

// setupKeyboardShortcuts routes keys to the controller key table
func (a *Application) setupKeyboardShortcuts() {
	a.window.Canvas().SetOnTypedKey(a.handleKey)
}

// handleKey handles the few keys that only concern the window and passes
// everything else to the controller
func (a *Application) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyI:
		a.onExplain()
	case fyne.KeyH:
		a.onShowHotkeys()
	case fyne.KeyQ:
		a.window.Close()
	case fyne.KeyEscape:
		a.window.Canvas().Unfocus()
		a.controller.HandleKey(string(ev.Name))
	default:
		a.controller.HandleKey(string(ev.Name))
	}
}

// onShowHotkeys shows the keyboard shortcuts dialog
func (a *Application) onShowHotkeys() {
	hotkeys := `[Project Page: https://codeberg.org/snonux/speakabc](https://codeberg.org/snonux/speakabc)

---

## Card
**Tap** Say the letter name
**Hold** Say the letter sound
**Swipe left** Next letter
**Swipe right** Previous letter

## Navigation
**←** Previous letter
**→** Next letter
**r** Random letter

## Speech
**Space** Say the letter name
**p** Say the letter sound
**Esc** Stop speaking
**i** Explain the sound

## Letters
**b** Bookmark letter
**f** Bookmarks only
**c** Upper or lower case

## Help
**h** Show hotkeys
**q** Quit application  `

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 480))

	d := dialog.NewCustom("Keyboard Shortcuts", "Close", scroll, a.window)

	// Keys go to the dialog while it is open
	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape || ev.Name == fyne.KeyH {
			d.Hide()
		}
	})
	d.SetOnClosed(a.setupKeyboardShortcuts)
	d.Show()
}

// shutdown stops speech and background work when the window closes
func (a *Application) shutdown() {
	a.controller.PointerCancel()
	a.sequencer.Cancel()
	a.cancel()
	a.wg.Wait()
	log.SetOutput(os.Stderr)
}
