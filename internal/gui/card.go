package gui

import (
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/speakabc/internal/flashcard"
	"codeberg.org/snonux/speakabc/internal/gesture"
)

// PointerSink receives raw pointer events from the card
type PointerSink interface {
	PointerDown(p gesture.Point, at time.Time)
	PointerMove(p gesture.Point, at time.Time)
	PointerUp(p gesture.Point, at time.Time)
	PointerCancel()
	GestureState() gesture.State
}

// Card is the large letter face. It forwards mouse, drag and touch input to
// the gesture classifier and shows press and hold feedback.
type Card struct {
	widget.BaseWidget

	sink PointerSink
	now  func() time.Time

	container  *fyne.Container
	background *canvas.Rectangle
	symbol     *canvas.Text
	mark       *canvas.Text
	caption    *canvas.Text

	down bool
	last fyne.Position
}

// NewCard creates the card widget
func NewCard(sink PointerSink) *Card {
	c := &Card{sink: sink, now: time.Now}

	c.background = canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	c.background.CornerRadius = 24
	c.background.SetMinSize(fyne.NewSize(320, 320))

	c.symbol = canvas.NewText("A", theme.Color(theme.ColorNameForeground))
	c.symbol.TextSize = 180
	c.symbol.TextStyle = fyne.TextStyle{Bold: true}
	c.symbol.Alignment = fyne.TextAlignCenter

	c.mark = canvas.NewText("", theme.Color(theme.ColorNamePrimary))
	c.mark.TextSize = 32
	c.mark.Alignment = fyne.TextAlignTrailing

	c.caption = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	c.caption.TextSize = 20
	c.caption.Alignment = fyne.TextAlignCenter

	c.container = container.NewStack(
		c.background,
		container.NewPadded(container.NewBorder(
			c.mark,
			c.caption,
			nil, nil,
			container.NewCenter(c.symbol),
		)),
	)

	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget
func (c *Card) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.container)
}

// Show updates the card from a snapshot and the classifier state
func (c *Card) Show(s flashcard.Snapshot, state gesture.State) {
	c.symbol.Text = s.Symbol
	c.caption.Text = s.Word
	if s.Bookmarked {
		c.mark.Text = "★"
	} else {
		c.mark.Text = ""
	}

	c.symbol.Refresh()
	c.caption.Refresh()
	c.mark.Refresh()
	c.paint(state)
}

func (c *Card) paint(state gesture.State) {
	c.background.FillColor = stateColor(state)
	c.background.Refresh()
}

func stateColor(state gesture.State) color.Color {
	switch state {
	case gesture.Pressed:
		return theme.Color(theme.ColorNameHover)
	case gesture.Holding:
		return theme.Color(theme.ColorNameSelection)
	case gesture.Swiping:
		return theme.Color(theme.ColorNamePressed)
	default:
		return theme.Color(theme.ColorNameInputBackground)
	}
}

func point(p fyne.Position) gesture.Point {
	return gesture.Point{X: float64(p.X), Y: float64(p.Y)}
}

// MouseDown implements desktop.Mouseable
func (c *Card) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.press(ev.Position)
}

// MouseUp implements desktop.Mouseable
func (c *Card) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.release(ev.Position)
}

// Dragged implements fyne.Draggable
func (c *Card) Dragged(ev *fyne.DragEvent) {
	if !c.down {
		return
	}
	c.last = ev.Position
	c.sink.PointerMove(point(ev.Position), c.now())
	c.paint(c.sink.GestureState())
}

// DragEnd implements fyne.Draggable. Depending on the driver it arrives
// before or instead of MouseUp, so whichever comes first ends the session.
func (c *Card) DragEnd() {
	c.release(c.last)
}

// TouchDown implements mobile.Touchable
func (c *Card) TouchDown(ev *mobile.TouchEvent) {
	c.press(ev.Position)
}

// TouchUp implements mobile.Touchable
func (c *Card) TouchUp(ev *mobile.TouchEvent) {
	c.release(ev.Position)
}

// TouchCancel implements mobile.Touchable
func (c *Card) TouchCancel(*mobile.TouchEvent) {
	c.Cancel()
}

// Cancel abandons the gesture in progress
func (c *Card) Cancel() {
	if !c.down {
		return
	}
	c.down = false
	c.sink.PointerCancel()
	c.paint(c.sink.GestureState())
}

func (c *Card) press(pos fyne.Position) {
	c.down = true
	c.last = pos
	c.sink.PointerDown(point(pos), c.now())
	c.paint(c.sink.GestureState())
}

func (c *Card) release(pos fyne.Position) {
	if !c.down {
		return
	}
	c.down = false
	c.sink.PointerUp(point(pos), c.now())
	c.paint(c.sink.GestureState())
}
