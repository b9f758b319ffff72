package tui

import (
	"dfaith/pkg/config"
	"dfaith/pkg/metrics"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Start runs the whitepaper reader until the user quits. The store must
// already be started; it is stopped on quit.
func Start(store *metrics.Store, cfg config.Config, version string, logger *zap.Logger) error {
	Version = version
	m := initialModel(store, cfg, logger)
	defer store.Unsubscribe(m.sub)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
