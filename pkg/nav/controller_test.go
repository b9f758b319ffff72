package nav

import (
	"testing"
	"time"

	"dfaith/pkg/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockScroller struct {
	mock.Mock
}

func (m *MockScroller) HasAnchor(id section.ID) bool {
	return m.Called(id).Bool(0)
}

func (m *MockScroller) ScrollTo(id section.ID) {
	m.Called(id)
}

func allAnchors() *MockScroller {
	s := new(MockScroller)
	s.On("HasAnchor", mock.Anything).Return(true)
	s.On("ScrollTo", mock.Anything).Return()
	return s
}

func TestScrollToSection_SetsCurrentSynchronously(t *testing.T) {
	s := allAnchors()
	c := New(s, Opts{})
	c.Observe(section.Hero, 1)
	c.OpenMenu()

	ch, ok := c.ScrollToSection(section.Team)
	require.True(t, ok)
	assert.Equal(t, section.Team, c.Current())
	assert.Equal(t, section.Hero, ch.From)
	assert.Equal(t, section.Team, ch.To)
	assert.False(t, c.MenuOpen())
	s.AssertCalled(t, "ScrollTo", section.Team)
}

func TestScrollToSection_MissingAnchorIsNoop(t *testing.T) {
	s := new(MockScroller)
	s.On("HasAnchor", section.Webapp).Return(false)
	c := New(s, Opts{})
	c.OpenMenu()

	ch, ok := c.ScrollToSection(section.Webapp)
	assert.False(t, ok)
	assert.False(t, ch.Changed())
	assert.Equal(t, section.Hero, c.Current())
	assert.True(t, c.MenuOpen())
	s.AssertNotCalled(t, "ScrollTo", mock.Anything)
}

func TestCelebration_FiresOncePerEntry(t *testing.T) {
	c := New(allAnchors(), Opts{})
	c.Observe(section.Process, 1)

	fired := 0
	ch := c.Observe(section.Process, 0)
	assert.Nil(t, ch.Celebration)

	ch = c.Observe(section.Tokenomics, 0.8)
	require.NotNil(t, ch.Celebration)
	fired++
	assert.Equal(t, DefaultCelebrationDuration, ch.Celebration.Duration)
	assert.True(t, c.Celebrating())

	for _, r := range []float64{0.9, 1, 0.7, 0.6} {
		if c.Observe(section.Tokenomics, r).Celebration != nil {
			fired++
		}
	}
	if c.Observe(section.Webapp, 0.9).Celebration != nil {
		fired++
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, section.Tokenomics, c.Current())
}

func TestCelebration_RefiresAfterLeaving(t *testing.T) {
	c := New(allAnchors(), Opts{})
	first := c.Observe(section.Tokenomics, 1).Celebration
	require.NotNil(t, first)

	c.Observe(section.Process, 1)
	c.Observe(section.Tokenomics, 0)
	c.Observe(section.Process, 0)
	assert.Equal(t, section.Process, c.Current())

	again := c.Observe(section.Tokenomics, 1).Celebration
	require.NotNil(t, again)
	assert.NotEqual(t, first.Seq, again.Seq)
}

func TestCelebration_FromScroll(t *testing.T) {
	c := New(allAnchors(), Opts{})
	ch, ok := c.ScrollToSection(section.Tokenomics)
	require.True(t, ok)
	require.NotNil(t, ch.Celebration)

	ch, _ = c.ScrollToSection(section.Tokenomics)
	assert.Nil(t, ch.Celebration)
}

func TestCelebration_JumpFromEarlierSectionFiresOnce(t *testing.T) {
	c := New(allAnchors(), Opts{})
	_, ok := c.ScrollToSection(section.Webapp)
	require.True(t, ok)
	c.Observe(section.Webapp, 1)
	require.Equal(t, section.Webapp, c.Current())

	fired := 0
	ch, ok := c.ScrollToSection(section.Tokenomics)
	require.True(t, ok)
	if ch.Celebration != nil {
		fired++
	}

	for _, id := range section.Order {
		ratio := 0.0
		if id == section.Tokenomics {
			ratio = 1
		}
		ch := c.Observe(id, ratio)
		assert.Equal(t, section.Tokenomics, c.Current(), "after report for %s", id)
		if ch.Celebration != nil {
			fired++
		}
	}
	assert.Equal(t, 1, fired)
}

func TestExpire_NewerCelebrationSupersedes(t *testing.T) {
	c := New(allAnchors(), Opts{CelebrationSection: section.Team, CelebrationDuration: time.Second})
	first := c.Observe(section.Team, 1).Celebration
	require.NotNil(t, first)
	assert.Equal(t, time.Second, first.Duration)

	c.Observe(section.Hero, 1)
	second := c.Observe(section.Hero, 0).Celebration
	require.NotNil(t, second)
	assert.Greater(t, second.Seq, first.Seq)

	assert.False(t, c.Expire(first.Seq), "stale expiry does not end the newer celebration")
	assert.True(t, c.Celebrating())
	assert.False(t, c.Expire(0))
	assert.True(t, c.Expire(second.Seq))
}

func TestExpire_EndsActive(t *testing.T) {
	c := New(allAnchors(), Opts{})
	cel := c.Observe(section.Tokenomics, 1).Celebration
	require.NotNil(t, cel)
	assert.True(t, c.Expire(cel.Seq))
	assert.False(t, c.Celebrating())
	assert.False(t, c.Expire(cel.Seq))
}

func TestMenu_IndependentOfSection(t *testing.T) {
	c := New(allAnchors(), Opts{})
	assert.False(t, c.MenuOpen())
	c.ToggleMenu()
	assert.True(t, c.MenuOpen())

	c.Observe(section.Solution, 1)
	assert.True(t, c.MenuOpen())

	c.ToggleMenu()
	assert.False(t, c.MenuOpen())
	c.OpenMenu()
	c.CloseMenu()
	assert.False(t, c.MenuOpen())
}
