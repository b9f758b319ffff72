package tui

import (
	"fmt"
	"time"

	"dfaith/pkg/metrics"
	"dfaith/pkg/nav"
	"dfaith/pkg/section"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - chromeHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.rerender()
		cmds = append(cmds, m.observeAll()...)

	case metrics.Event:
		cmds = append(cmds, listenForStore(m.sub))
		if msg.Type == metrics.EventRefreshFailed {
			if fields, ok := msg.Data.([]string); ok {
				m.logger.Debug("showing previous values", zap.Strings("fields", fields))
			}
		}
		m.snapshot = m.store.Snapshot()
		m.history = m.store.PriceHistory()
		m.rerender()

	case storeClosedMsg:

	case refreshDoneMsg:
		labels := m.lang.Labels()
		switch {
		case msg.err == nil:
			m.statusMessage = labels.Refreshing + "..."
		case isThrottled(msg.err):
			m.statusMessage = labels.Throttled
		default:
			m.statusMessage = fmt.Sprintf("Refresh failed: %v", msg.err)
		}
		cmds = append(cmds, clearStatusAfter(statusTimeout))

	case clipboardMsg:
		if msg.err != nil {
			m.statusMessage = "Failed to copy to clipboard"
		} else {
			m.statusMessage = m.lang.Labels().Copied
		}
		cmds = append(cmds, clearStatusAfter(statusTimeout))

	case scrollTickMsg:
		if m.doc.pending {
			cmds = append(cmds, m.stepScroll()...)
		}

	case celebrationDoneMsg:
		m.nav.Expire(msg.seq)

	case confettiTickMsg:
		if m.nav.Celebrating() {
			m.frame++
			cmds = append(cmds, tea.Tick(confettiTick, func(time.Time) tea.Msg { return confettiTickMsg{} }))
		} else {
			m.animating = false
		}

	case clearStatusMsg:
		m.statusMessage = ""

	case tea.MouseMsg:
		if m.ready && !m.nav.MenuOpen() && !m.showHelp {
			before := m.viewport.YOffset
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
			if m.viewport.YOffset != before {
				m.doc.pending = false
				cmds = append(cmds, m.observeAll()...)
			}
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.snapshot.Loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.store.Stop()
		return m, tea.Quit
	}

	if m.showHelp {
		switch key {
		case "?", "esc", "q":
			m.showHelp = false
		}
		return m, nil
	}

	if m.nav.MenuOpen() {
		switch key {
		case "up", "k":
			if m.menuIdx > 0 {
				m.menuIdx--
			}
		case "down", "j":
			if m.menuIdx < len(section.Order)-1 {
				m.menuIdx++
			}
		case "enter":
			return m.scrollTo(section.Order[m.menuIdx])
		case "esc", "m":
			m.nav.CloseMenu()
		case "q":
			m.store.Stop()
			return m, tea.Quit
		}
		return m, nil
	}

	var cmds []tea.Cmd
	switch key {
	case "q":
		m.store.Stop()
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "m":
		if i := section.Index(m.nav.Current()); i >= 0 {
			m.menuIdx = i
		}
		m.nav.OpenMenu()
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8":
		return m.scrollTo(section.Order[int(key[0]-'1')])
	case "L":
		current := m.nav.Current()
		m.lang = m.lang.Next()
		m.rerender()
		if a, ok := m.doc.anchors[current]; ok {
			m.viewport.SetYOffset(a.start)
		}
		cmds = append(cmds, m.observeAll()...)
	case "r":
		return m, refreshCmd(m.store)
	case "c":
		return m, copyCmd(sectionLink(m.siteURL, m.nav.Current()))
	case "o":
		if err := openBrowser(sectionLink(m.siteURL, m.nav.Current())); err != nil {
			m.statusMessage = fmt.Sprintf("Failed to open browser: %v", err)
			cmds = append(cmds, clearStatusAfter(statusTimeout))
		}
	case "g", "home":
		m.doc.pending = false
		m.viewport.GotoTop()
		cmds = append(cmds, m.observeAll()...)
	case "G", "end":
		m.doc.pending = false
		m.viewport.GotoBottom()
		cmds = append(cmds, m.observeAll()...)
	default:
		if m.ready {
			before := m.viewport.YOffset
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
			if m.viewport.YOffset != before {
				m.doc.pending = false
				cmds = append(cmds, m.observeAll()...)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// scrollTo marks id current right away and starts the smooth scroll.
func (m model) scrollTo(id section.ID) (tea.Model, tea.Cmd) {
	ch, ok := m.nav.ScrollToSection(id)
	if !ok {
		return m, nil
	}
	var cmds []tea.Cmd
	if cmd := m.applyChange(ch); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, func() tea.Msg { return scrollTickMsg{} })
	return m, tea.Batch(cmds...)
}

func (m *model) rerender() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.doc.render(renderInput{
		lang:     m.lang,
		width:    m.viewport.Width,
		snapshot: m.snapshot,
		history:  m.history,
	}))
}

// observeAll reports every anchor's visible fraction to the controller.
// Reports are held back while a smooth scroll is in flight.
func (m *model) observeAll() []tea.Cmd {
	if m.doc.pending {
		return nil
	}
	var cmds []tea.Cmd
	for _, id := range section.Order {
		a, ok := m.doc.anchors[id]
		if !ok {
			continue
		}
		ratio := visibleFraction(a, m.viewport.YOffset, m.viewport.Height)
		if cmd := m.applyChange(m.nav.Observe(id, ratio)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (m *model) applyChange(ch nav.Change) tea.Cmd {
	if ch.Celebration == nil {
		return nil
	}
	m.celebrating = ch.Celebration.Section
	m.frame = 0
	animate := !m.animating
	m.animating = true
	return celebrationCmd(ch.Celebration, animate)
}

func (m model) maxOffset() int {
	n := m.viewport.TotalLineCount() - m.viewport.Height
	if n < 0 {
		return 0
	}
	return n
}

func (m *model) stepScroll() []tea.Cmd {
	target := m.doc.target
	if limit := m.maxOffset(); target > limit {
		target = limit
	}
	if target < 0 {
		target = 0
	}
	m.viewport.SetYOffset(nextOffset(m.viewport.YOffset, target))
	if m.viewport.YOffset != target {
		return []tea.Cmd{tea.Tick(scrollTick, func(time.Time) tea.Msg { return scrollTickMsg{} })}
	}
	m.doc.pending = false
	return m.observeAll()
}
