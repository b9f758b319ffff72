// Package nav drives section highlighting, the slide-in menu and the
// one-shot celebration shown when the reader reaches a chosen section.
package nav

import (
	"time"

	"dfaith/pkg/section"

	"go.uber.org/zap"
)

// DefaultCelebrationDuration is how long a celebration stays active.
const DefaultCelebrationDuration = 3 * time.Second

// Scroller moves the document. Implementations animate the scroll themselves.
type Scroller interface {
	HasAnchor(id section.ID) bool
	ScrollTo(id section.ID)
}

// Celebration is a time-bounded effect. Seq identifies it for Expire.
type Celebration struct {
	Seq      uint64
	Section  section.ID
	Duration time.Duration
}

// Change describes what a single signal did to the current section.
type Change struct {
	From        section.ID
	To          section.ID
	Celebration *Celebration
}

// Changed reports whether the current section moved.
func (c Change) Changed() bool { return c.From != c.To }

type Opts struct {
	Threshold           float64
	CelebrationSection  section.ID
	CelebrationDuration time.Duration
	Logger              *zap.Logger
}

// Controller is not safe for concurrent use; it is owned by the UI loop.
type Controller struct {
	agg      *section.Aggregator
	scroller Scroller
	logger   *zap.Logger

	celebrateIn section.ID
	duration    time.Duration
	seq         uint64
	active      uint64

	menuOpen bool
}

func New(scroller Scroller, o Opts) *Controller {
	if o.CelebrationSection == "" {
		o.CelebrationSection = section.Tokenomics
	}
	if o.CelebrationDuration <= 0 {
		o.CelebrationDuration = DefaultCelebrationDuration
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Controller{
		agg:         section.NewAggregator(o.Threshold),
		scroller:    scroller,
		logger:      o.Logger,
		celebrateIn: o.CelebrationSection,
		duration:    o.CelebrationDuration,
	}
}

func (c *Controller) Current() section.ID { return c.agg.Current() }

// Observe feeds one anchor's visible fraction into the aggregator.
func (c *Controller) Observe(id section.ID, ratio float64) Change {
	from := c.agg.Current()
	to := c.agg.Observe(id, ratio)
	return c.transition(from, to)
}

// ScrollToSection scrolls to id and marks it current without waiting for
// visibility reports. It does nothing and returns false when the anchor is
// missing.
func (c *Controller) ScrollToSection(id section.ID) (Change, bool) {
	if c.scroller == nil || !c.scroller.HasAnchor(id) {
		c.logger.Debug("scroll target has no anchor", zap.String("section", string(id)))
		return Change{From: c.Current(), To: c.Current()}, false
	}
	c.scroller.ScrollTo(id)
	from := c.agg.Current()
	c.agg.Override(id)
	c.menuOpen = false
	return c.transition(from, id), true
}

func (c *Controller) transition(from, to section.ID) Change {
	ch := Change{From: from, To: to}
	if from == to || to != c.celebrateIn {
		return ch
	}
	c.seq++
	c.active = c.seq
	ch.Celebration = &Celebration{Seq: c.seq, Section: to, Duration: c.duration}
	c.logger.Debug("celebration started", zap.Uint64("seq", c.seq), zap.String("section", string(to)))
	return ch
}

// Expire ends the celebration with the given seq. Stale seqs are ignored.
func (c *Controller) Expire(seq uint64) bool {
	if seq == 0 || seq != c.active {
		return false
	}
	c.active = 0
	return true
}

func (c *Controller) Celebrating() bool { return c.active != 0 }

func (c *Controller) MenuOpen() bool { return c.menuOpen }
func (c *Controller) OpenMenu()      { c.menuOpen = true }
func (c *Controller) CloseMenu()     { c.menuOpen = false }
func (c *Controller) ToggleMenu()    { c.menuOpen = !c.menuOpen }
