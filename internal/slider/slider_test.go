package slider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlides(t *testing.T) {
	slides := DefaultSlides()
	require.Len(t, slides, 4)
	for i, s := range slides {
		assert.Equal(t, i+1, s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.CTALink)
	}
}

func TestFromImages(t *testing.T) {
	urls := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	slides := FromImages(urls)
	require.Len(t, slides, 5)

	assert.Equal(t, DefaultSlides()[0].Title, slides[0].Title)
	assert.Equal(t, "a.jpg", slides[0].Image)
	assert.Equal(t, "Светильники", slides[4].Title)
	assert.Equal(t, "/catalog", slides[4].CTALink)
	assert.Equal(t, 5, slides[4].ID)

	assert.Empty(t, FromImages(nil))
}

func TestNavigationWraps(t *testing.T) {
	r := New(DefaultSlides(), time.Hour, time.Nanosecond)

	assert.True(t, r.Prev())
	assert.Equal(t, 3, r.Current())

	require.Eventually(t, func() bool { return r.Next() }, time.Second, time.Millisecond)
	assert.Equal(t, 0, r.Current())
}

func TestTransitionLock(t *testing.T) {
	r := New(DefaultSlides(), time.Hour, 50*time.Millisecond)

	assert.True(t, r.Next())
	assert.False(t, r.Next(), "second move inside the transition is refused")
	assert.False(t, r.Prev())
	assert.False(t, r.GoTo(3))
	assert.Equal(t, 1, r.Current())

	require.Eventually(t, func() bool { return r.Next() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, r.Current())
}

func TestGoTo(t *testing.T) {
	r := New(DefaultSlides(), time.Hour, time.Nanosecond)

	assert.False(t, r.GoTo(0), "current slide")
	assert.False(t, r.GoTo(-1))
	assert.False(t, r.GoTo(4))
	assert.True(t, r.GoTo(2))
	assert.Equal(t, 2, r.Current())
}

func TestEmptyRotator(t *testing.T) {
	r := New(nil, time.Hour, time.Nanosecond)
	assert.False(t, r.Next())
	assert.False(t, r.Prev())
	assert.False(t, r.GoTo(0))
	r.Start()
	r.Stop()
}

func TestAutoplayAdvances(t *testing.T) {
	r := New(DefaultSlides(), 20*time.Millisecond, time.Millisecond)
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool { return r.Current() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestPauseStopsAutoplay(t *testing.T) {
	r := New(DefaultSlides(), 20*time.Millisecond, time.Millisecond)
	r.Start()
	defer r.Stop()
	r.Pause()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, r.Current())
	assert.True(t, r.State().Paused)

	r.Resume()
	require.Eventually(t, func() bool { return r.Current() > 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestManualMoveRearmsAutoplay(t *testing.T) {
	r := New(DefaultSlides(), 300*time.Millisecond, time.Millisecond)
	r.Start()
	defer r.Stop()

	time.Sleep(200 * time.Millisecond)
	require.True(t, r.GoTo(2))

	// The countdown restarted at the manual move, so the old deadline
	// passes without an automatic advance.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, 2, r.Current())

	require.Eventually(t, func() bool { return r.Current() == 3 }, 2*time.Second, 5*time.Millisecond)
}

func TestSetSlidesClampsPosition(t *testing.T) {
	r := New(DefaultSlides(), time.Hour, time.Nanosecond)
	require.True(t, r.GoTo(3))

	r.SetSlides(FromImages([]string{"a.jpg", "b.jpg"}))
	st := r.State()
	assert.Equal(t, 0, st.Current)
	assert.Len(t, st.Slides, 2)
	assert.Equal(t, int64(time.Hour/time.Millisecond), st.IntervalMs)
}
