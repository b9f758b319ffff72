package tui

import (
	"strings"

	"dfaith/pkg/content"
	"dfaith/pkg/models"
	"dfaith/pkg/section"

	"github.com/charmbracelet/lipgloss"
)

// anchor is the half-open line range [start, end) a section occupies.
type anchor struct {
	start int
	end   int
}

func (a anchor) height() int { return a.end - a.start }

// document is the rendered whitepaper plus the line ranges of its sections.
// It is shared by pointer with the nav controller, which uses it as its
// Scroller.
type document struct {
	anchors map[section.ID]anchor
	lines   int

	target  int
	pending bool
}

func newDocument() *document {
	return &document{anchors: make(map[section.ID]anchor)}
}

func (d *document) HasAnchor(id section.ID) bool {
	a, ok := d.anchors[id]
	return ok && a.height() > 0
}

// ScrollTo records the anchor as the smooth-scroll target.
func (d *document) ScrollTo(id section.ID) {
	d.target = d.anchors[id].start
	d.pending = true
}

type renderInput struct {
	lang     content.Language
	width    int
	snapshot models.Snapshot
	history  []models.PricePoint
}

// render lays out every section in order and records its anchor.
func (d *document) render(in renderInput) string {
	width := in.width
	if width < 20 {
		width = 20
	}
	para := lipgloss.NewStyle().Width(width)

	anchors := make(map[section.ID]anchor, len(section.Order))
	var out []string
	for _, id := range section.Order {
		var blocks []string
		blocks = append(blocks, headingStyle.Render(in.lang.Title(id)), "")
		for _, p := range in.lang.Body(id) {
			blocks = append(blocks, para.Render(p), "")
		}
		switch id {
		case section.Hero:
			blocks = append(blocks, statsPanel(in.lang, in.snapshot, width), "")
		case section.Tokenomics:
			blocks = append(blocks, supplyPanel(in.lang, in.snapshot, width), "")
			blocks = append(blocks, priceGraph(in.lang, in.history, width), "")
		}

		text := strings.Join(blocks, "\n")
		n := strings.Count(text, "\n") + 1
		start := len(out)
		out = append(out, strings.Split(text, "\n")...)
		anchors[id] = anchor{start: start, end: start + n}
	}

	d.anchors = anchors
	d.lines = len(out)
	return strings.Join(out, "\n")
}

// visibleFraction is the share of a that lies inside [top, top+height).
// Sections taller than the viewport count as fully visible when they fill it.
func visibleFraction(a anchor, top, height int) float64 {
	if a.height() <= 0 || height <= 0 {
		return 0
	}
	lo := a.start
	if top > lo {
		lo = top
	}
	hi := a.end
	if top+height < hi {
		hi = top + height
	}
	if hi <= lo {
		return 0
	}
	denom := a.height()
	if height < denom {
		denom = height
	}
	return float64(hi-lo) / float64(denom)
}

// nextOffset moves cur a third of the way to target, at least one line.
func nextOffset(cur, target int) int {
	d := target - cur
	step := d / 3
	if step == 0 {
		switch {
		case d > 0:
			step = 1
		case d < 0:
			step = -1
		}
	}
	return cur + step
}
