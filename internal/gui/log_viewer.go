package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogViewer is a widget that displays log messages, newest first. It is an
// io.Writer so it can sit behind log.SetOutput.
type LogViewer struct {
	widget.BaseWidget

	container  *fyne.Container
	logEntry   *widget.Entry
	scrollView *container.Scroll

	mu          sync.Mutex
	messages    []string
	maxMessages int
	partial     string // unterminated tail of the last write
	now         func() time.Time
	dispatch    func(func())
}

// NewLogViewer creates a new log viewer widget
func NewLogViewer() *LogViewer {
	v := &LogViewer{
		maxMessages: 500,
		now:         time.Now,
		dispatch:    fyne.Do,
	}

	// Read-only multiline entry
	v.logEntry = widget.NewMultiLineEntry()
	v.logEntry.Disable()
	v.logEntry.Wrapping = fyne.TextWrapWord

	v.scrollView = container.NewScroll(v.logEntry)
	v.scrollView.SetMinSize(fyne.NewSize(0, 120))

	v.container = container.NewBorder(
		widget.NewLabel("Log messages (newest first):"),
		nil,
		nil,
		nil,
		v.scrollView,
	)

	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer implements fyne.Widget
func (v *LogViewer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.container)
}

// Write implements io.Writer. Every complete line becomes one message.
func (v *LogViewer) Write(p []byte) (int, error) {
	v.mu.Lock()
	text := v.partial + string(p)
	lines := strings.Split(text, "\n")
	v.partial = lines[len(lines)-1]
	v.mu.Unlock()

	for _, line := range lines[:len(lines)-1] {
		if line = strings.TrimRight(line, "\r"); line != "" {
			v.AddMessage(line)
		}
	}
	return len(p), nil
}

// AddMessage adds a message to the log
func (v *LogViewer) AddMessage(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	full := fmt.Sprintf("[%s] %s", v.now().Format("15:04:05"), message)

	// Prepend, dropping the oldest beyond the limit
	v.messages = append([]string{full}, v.messages...)
	if len(v.messages) > v.maxMessages {
		v.messages = v.messages[:v.maxMessages]
	}

	text := strings.Join(v.messages, "\n")
	v.dispatch(func() {
		v.logEntry.SetText(text)
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}

// Messages returns the messages, newest first
func (v *LogViewer) Messages() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]string(nil), v.messages...)
}

// Clear clears all log messages
func (v *LogViewer) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.messages = v.messages[:0]
	v.partial = ""

	v.dispatch(func() {
		v.logEntry.SetText("")
		v.scrollView.Offset = fyne.NewPos(0, 0)
		v.scrollView.Refresh()
	})
}
