package flashcard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/speakabc/internal/gesture"
	"codeberg.org/snonux/speakabc/internal/phonetic"
	"codeberg.org/snonux/speakabc/internal/speech"
	"codeberg.org/snonux/speakabc/internal/testutil"
)

type fixture struct {
	c       *Controller
	engine  *testutil.MockEngine
	sched   *testutil.MockScheduler
	changes int
}

func newFixture(t *testing.T, config *Config) *fixture {
	t.Helper()
	f := &fixture{
		engine: testutil.NewMockEngine(),
		sched:  &testutil.MockScheduler{},
	}
	f.c = New(config, speech.New(f.engine), f.sched)
	f.c.SetOnChange(func() { f.changes++ })
	return f
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestNewStartsOnA(t *testing.T) {
	f := newFixture(t, nil)

	assert.Equal(t, 0, f.c.Current())
	snap := f.c.Snapshot()
	assert.Equal(t, "A", snap.Symbol)
	assert.Equal(t, 1, snap.Ordinal)
	assert.Equal(t, 26, snap.Total)
	assert.False(t, snap.CanFilter)
	assert.True(t, snap.HasSpeech)
}

func TestNavigationWraps(t *testing.T) {
	f := newFixture(t, nil)

	f.c.Do(Previous)
	assert.Equal(t, 25, f.c.Current())
	f.c.Do(Next)
	f.c.Do(Next)
	assert.Equal(t, 1, f.c.Current())
}

func TestKeys(t *testing.T) {
	f := newFixture(t, nil)

	assert.True(t, f.c.HandleKey("Right"))
	assert.Equal(t, 1, f.c.Current())
	assert.True(t, f.c.HandleKey("Left"))
	assert.True(t, f.c.HandleKey("Left"))
	assert.Equal(t, 25, f.c.Current())

	assert.True(t, f.c.HandleKey("C"))
	assert.True(t, f.c.Deck().Lowercase())
	assert.Equal(t, "z", f.c.Snapshot().Symbol)

	assert.False(t, f.c.HandleKey("Q"))
	assert.Equal(t, 25, f.c.Current())
}

func TestCustomKeys(t *testing.T) {
	config := DefaultConfig()
	config.Keys = map[string]Command{"J": Next}
	f := newFixture(t, config)

	assert.False(t, f.c.HandleKey("Right"))
	assert.True(t, f.c.HandleKey("J"))
	assert.Equal(t, 1, f.c.Current())
}

func TestSayNameAndSound(t *testing.T) {
	f := newFixture(t, nil)
	f.c.GoTo(1)
	b, _ := phonetic.Lookup(1)

	f.c.Do(SayName)
	assert.Equal(t, []string{b.Name}, f.engine.Started())

	f.c.Do(SaySound)
	assert.Equal(t, []string{b.Name, b.Sound}, f.engine.Started())
	require.True(t, f.engine.Complete())
	assert.Equal(t, []string{b.Name, b.Sound, "B is for " + b.Word}, f.engine.Started())
}

func TestSoundWithoutChainWord(t *testing.T) {
	config := DefaultConfig()
	config.ChainWord = false
	f := newFixture(t, config)

	f.c.Do(SaySound)
	require.True(t, f.engine.Complete())

	a, _ := phonetic.Lookup(0)
	assert.Equal(t, []string{a.Sound}, f.engine.Started())
}

func TestStopCancelsSpeech(t *testing.T) {
	f := newFixture(t, nil)

	f.c.Do(SaySound)
	f.c.HandleKey("Escape")

	assert.Equal(t, 1, f.engine.Stops())
	assert.False(t, f.engine.Complete())
}

func TestGestures(t *testing.T) {
	f := newFixture(t, nil)
	a, _ := phonetic.Lookup(0)

	// tap says the name
	f.c.PointerDown(gesture.Point{X: 100, Y: 100}, at(0))
	assert.Equal(t, gesture.Pressed, f.c.GestureState())
	f.c.PointerUp(gesture.Point{X: 100, Y: 100}, at(150))
	assert.Equal(t, []string{a.Name}, f.engine.Started())

	// swipe left advances
	f.c.PointerDown(gesture.Point{X: 200}, at(1000))
	f.c.PointerMove(gesture.Point{X: 150}, at(1050))
	f.c.PointerUp(gesture.Point{X: 100}, at(1100))
	assert.Equal(t, 1, f.c.Current())

	// swipe right goes back
	f.c.PointerDown(gesture.Point{X: 100}, at(2000))
	f.c.PointerMove(gesture.Point{X: 140}, at(2050))
	f.c.PointerUp(gesture.Point{X: 200}, at(2100))
	assert.Equal(t, 0, f.c.Current())

	// hold says the sound
	f.c.PointerDown(gesture.Point{X: 100}, at(3000))
	f.sched.Last().Fire()
	assert.Equal(t, gesture.Holding, f.c.GestureState())
	assert.Equal(t, []string{a.Name, a.Sound}, f.engine.Started())
	f.c.PointerUp(gesture.Point{X: 100}, at(3700))
	assert.Equal(t, gesture.Idle, f.c.GestureState())
	assert.Equal(t, 0, f.c.Current(), "holding never navigates")
}

func TestPointerCancelEmitsNothing(t *testing.T) {
	f := newFixture(t, nil)

	f.c.PointerDown(gesture.Point{X: 100}, at(0))
	f.c.PointerMove(gesture.Point{X: 20}, at(40))
	f.c.PointerCancel()
	f.c.PointerUp(gesture.Point{X: 0}, at(80))

	assert.Equal(t, 0, f.c.Current())
	assert.Empty(t, f.engine.Started())
}

func TestToggleFilterRelocates(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Deck().ToggleBookmark(5)
	require.True(t, f.c.GoTo(10))

	f.c.Do(ToggleFilter)

	assert.True(t, f.c.Deck().Filter())
	assert.Equal(t, 5, f.c.Current(), "wraps to the only bookmark")
}

func TestToggleFilterPicksFollowingBookmark(t *testing.T) {
	f := newFixture(t, nil)
	for _, i := range []int{2, 12, 20} {
		f.c.Deck().ToggleBookmark(i)
	}
	f.c.GoTo(7)

	f.c.Do(ToggleFilter)
	assert.Equal(t, 12, f.c.Current())

	f.c.Do(Next)
	assert.Equal(t, 20, f.c.Current())
	f.c.Do(Next)
	assert.Equal(t, 2, f.c.Current())

	f.c.Do(ToggleFilter)
	assert.False(t, f.c.Deck().Filter())
	assert.Equal(t, 2, f.c.Current(), "leaving the filter keeps the position")
}

func TestToggleFilterRefusedWithoutBookmarks(t *testing.T) {
	f := newFixture(t, nil)
	f.c.GoTo(3)

	f.c.Do(ToggleFilter)

	assert.False(t, f.c.Deck().Filter())
	assert.Equal(t, 3, f.c.Current())
}

func TestRemovingBookmarkInFilterMode(t *testing.T) {
	f := newFixture(t, nil)
	f.c.GoTo(4)
	f.c.Do(ToggleBookmark)
	f.c.GoTo(9)
	f.c.Do(ToggleBookmark)
	f.c.Do(ToggleFilter)
	require.Equal(t, 9, f.c.Current())

	f.c.Do(ToggleBookmark)
	assert.True(t, f.c.Deck().Filter())
	assert.Equal(t, 4, f.c.Current(), "wraps to the remaining bookmark")

	f.c.Do(ToggleBookmark)
	assert.False(t, f.c.Deck().Filter(), "removing the last bookmark leaves the filter")
	assert.Equal(t, 4, f.c.Current())

	f.c.Do(Next)
	assert.Equal(t, 5, f.c.Current())
}

func TestRandomWithSingleBookmark(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Deck().ToggleBookmark(17)
	f.c.Do(ToggleFilter)

	for i := 0; i < 5; i++ {
		f.c.Do(Random)
		assert.Equal(t, 17, f.c.Current())
	}
}

func TestRandomUsesDeckSource(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Deck().SetRandom(func(n int) int { return n - 1 })

	f.c.Do(Random)
	assert.Equal(t, 25, f.c.Current())
}

func TestGoToRejectsUnaddressable(t *testing.T) {
	f := newFixture(t, nil)
	f.c.Deck().ToggleBookmark(1)
	f.c.Do(ToggleFilter)

	assert.False(t, f.c.GoTo(2))
	assert.False(t, f.c.GoTo(-1))
	assert.True(t, f.c.GoTo(1))
}

func TestChangeNotifications(t *testing.T) {
	f := newFixture(t, nil)

	f.c.Do(Next)
	f.c.Do(ToggleCase)
	f.c.GoTo(3)

	assert.Equal(t, 3, f.changes)
}

func TestNilSpeaker(t *testing.T) {
	c := New(nil, nil, &testutil.MockScheduler{})

	assert.NotPanics(t, func() {
		c.Do(SayName)
		c.Do(SaySound)
		c.Do(Stop)
	})
	assert.False(t, c.Snapshot().HasSpeech)
}

func TestSnapshotPeeks(t *testing.T) {
	f := newFixture(t, nil)

	snap := f.c.Snapshot()
	assert.Equal(t, []string{"Z", "Y"}, snap.Before)
	assert.Equal(t, []string{"B", "C"}, snap.After)

	for _, i := range []int{3, 8} {
		f.c.Deck().ToggleBookmark(i)
	}
	f.c.Do(ToggleFilter)
	f.c.Do(ToggleCase)

	snap = f.c.Snapshot()
	assert.Equal(t, "d", snap.Symbol)
	assert.True(t, snap.Bookmarked)
	assert.Equal(t, []string{"i", "d"}, snap.Before, "peeks wrap around a small space")
	assert.Equal(t, []string{"i", "d"}, snap.After)
	assert.Equal(t, 1, snap.Ordinal)
	assert.Equal(t, 2, snap.Total)
	require.Len(t, snap.Positions, 2)
	assert.True(t, snap.Positions[0].Current)
	assert.Equal(t, "i", snap.Positions[1].Symbol)
	assert.True(t, snap.CanFilter)
}

func TestSnapshotWithoutPeeks(t *testing.T) {
	config := DefaultConfig()
	config.PeekDepth = 0
	f := newFixture(t, config)

	snap := f.c.Snapshot()
	assert.Empty(t, snap.Before)
	assert.Empty(t, snap.After)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "ToggleFilter", ToggleFilter.String())
	assert.Equal(t, "Unknown", Command(99).String())
}
