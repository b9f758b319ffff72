package tui

import (
	"fmt"
	"strings"

	"dfaith/pkg/content"
	"dfaith/pkg/models"
	"dfaith/pkg/section"
	"dfaith/pkg/utils"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

func (m model) View() string {
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading...", m.spinner.View())
	}
	if m.showHelp {
		return m.viewHelp()
	}

	body := m.viewport.View()
	if m.nav.MenuOpen() {
		body = m.viewMenu()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewHeader(), m.viewBanner(), body, m.viewFooter())
}

func (m model) viewHeader() string {
	title := titleStyle.Render("D.FAITH Whitepaper")
	current := infoStyle.Render(m.lang.Title(m.nav.Current()))
	status := ""
	if m.snapshot.Loading {
		status = m.spinner.View()
	} else if !m.snapshot.LastUpdate.IsZero() {
		status = subtleStyle.Render(fmt.Sprintf("%s %s", m.lang.Labels().LastUpdate, m.snapshot.LastUpdate.Format("15:04:05")))
	}
	lang := subtleStyle.Render(strings.ToUpper(string(m.lang)))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(fmt.Sprintf("%s %s  %s  %s", title, current, lang, status))
}

// viewBanner is the confetti line. It is blank when nothing is celebrated so
// the layout does not jump.
func (m model) viewBanner() string {
	if !m.nav.Celebrating() {
		return ""
	}
	return confetti(m.width, m.frame, "🎉 "+m.lang.Title(m.celebrating)+" 🎉")
}

func confetti(width, frame int, text string) string {
	glyphs := []rune("*+•o✦·")
	textWidth := lipgloss.Width(text)
	side := (width - textWidth - 2) / 2
	if side < 0 {
		side = 0
	}
	piece := func(offset int) string {
		var b strings.Builder
		for i := 0; i < side; i++ {
			k := i + offset + frame
			style := lipgloss.NewStyle().Foreground(confettiColors[k%len(confettiColors)])
			b.WriteString(style.Render(string(glyphs[k%len(glyphs)])))
		}
		return b.String()
	}
	return piece(0) + " " + lipgloss.NewStyle().Bold(true).Render(text) + " " + piece(side)
}

func (m model) viewFooter() string {
	if m.statusMessage != "" {
		return infoStyle.Render(m.statusMessage)
	}
	keys := "m: " + m.lang.Labels().OpenNav + " • ?: help • q: quit"
	return subtleStyle.Render(keys)
}

func (m model) viewMenu() string {
	labels := m.lang.Labels()
	var rows []string
	for i, id := range section.Order {
		label := fmt.Sprintf("%d. %s", i+1, m.lang.Title(id))
		switch {
		case i == m.menuIdx:
			rows = append(rows, menuCursorStyle.Render("> "+label))
		case id == m.nav.Current():
			rows = append(rows, menuCurrentStyle.Render("• "+label))
		default:
			rows = append(rows, menuItemStyle.Render("  "+label))
		}
	}
	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(labels.Navigation),
		"",
		strings.Join(rows, "\n"),
		"",
		subtleStyle.Render("enter • esc: "+labels.CloseNav),
	))
	return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Right, lipgloss.Top, box)
}

func (m model) viewHelp() string {
	shortcuts := []string{
		"↑/k ↓/j: Scroll",
		"pgup/pgdown: Page",
		"g/home G/end: Top / Bottom",
		"1-8: Jump to section",
		"m: Toggle navigation",
		"L: Cycle language",
		"r: Refresh live data",
		"c: Copy section link",
		"o: Open section in browser",
		"?: Close help",
		"q: Quit",
	}
	content := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Help"),
		"",
		strings.Join(shortcuts, "\n"),
		"",
		subtleStyle.Render(m.lang.Labels().Help),
		subtleStyle.Render("Version: "+Version),
	))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func statBox(label, value string) string {
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		statLabelStyle.Render(label),
		statValueStyle.Render(value),
	))
}

// statsPanel shows the live numbers. Absent values render as placeholders.
func statsPanel(lang content.Language, snap models.Snapshot, width int) string {
	labels := lang.Labels()
	seps := lang.Separators()
	dinvest := snap.Prices.DInvestPriceEUR
	boxes := []string{
		statBox(labels.ActiveUsers, utils.FormatCount(snap.ActiveUsers, snap.Loading, seps)),
		statBox(labels.DFaithPrice, utils.FormatEUR(snap.Prices.DFaithPriceEUR, 3, snap.Loading, seps)),
		statBox(labels.DInvestPrice, utils.FormatEUR(&dinvest, 2, false, seps)),
		statBox(labels.Supply, utils.FormatCompact(snap.Supply, snap.Loading)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if lipgloss.Width(row) > width {
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	return row
}

func supplyPanel(lang content.Language, snap models.Snapshot, width int) string {
	labels := lang.Labels()
	seps := lang.Separators()
	boxes := []string{
		statBox(labels.Supply, utils.FormatCompact(snap.Supply, snap.Loading)),
		statBox(labels.DFaithPrice, utils.FormatEUR(snap.Prices.DFaithPriceEUR, 3, snap.Loading, seps)),
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	if lipgloss.Width(row) > width {
		return lipgloss.JoinVertical(lipgloss.Left, boxes...)
	}
	return row
}

func priceGraph(lang content.Language, history []models.PricePoint, width int) string {
	caption := lang.Labels().PriceHistory
	if len(history) < 2 {
		return subtleStyle.Render(caption + ": " + utils.Unknown)
	}
	values := make([]float64, len(history))
	for i, p := range history {
		values[i] = p.Value
	}
	graphWidth := width - 12
	if graphWidth < 10 {
		graphWidth = 10
	}
	return asciigraph.Plot(values,
		asciigraph.Height(8),
		asciigraph.Width(graphWidth),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	)
}
