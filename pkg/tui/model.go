package tui

import (
	"time"

	"dfaith/pkg/config"
	"dfaith/pkg/content"
	"dfaith/pkg/metrics"
	"dfaith/pkg/models"
	"dfaith/pkg/nav"
	"dfaith/pkg/section"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Version is set by Start()
var Version = "dev"

const (
	// header, banner and footer lines around the viewport
	chromeHeight  = 3
	scrollTick    = 30 * time.Millisecond
	confettiTick  = 150 * time.Millisecond
	statusTimeout = 2 * time.Second
)

// --- Messages ---

type clearStatusMsg struct{}
type scrollTickMsg struct{}
type confettiTickMsg struct{}
type storeClosedMsg struct{}

type celebrationDoneMsg struct {
	seq uint64
}

type refreshDoneMsg struct {
	err error
}

type clipboardMsg struct {
	err error
}

// --- Model ---

type model struct {
	store  *metrics.Store
	sub    metrics.Subscriber
	nav    *nav.Controller
	doc    *document
	logger *zap.Logger

	lang    content.Language
	siteURL string

	snapshot models.Snapshot
	history  []models.PricePoint

	viewport      viewport.Model
	spinner       spinner.Model
	width         int
	height        int
	ready         bool
	menuIdx       int
	showHelp      bool
	statusMessage string
	celebrating   section.ID
	animating     bool
	frame         int
}

func initialModel(store *metrics.Store, cfg config.Config, logger *zap.Logger) model {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	celebrate, err := section.ParseID(cfg.CelebrationSection)
	if err != nil {
		celebrate = section.Tokenomics
	}

	doc := newDocument()
	controller := nav.New(doc, nav.Opts{
		Threshold:           cfg.VisibilityThreshold,
		CelebrationSection:  celebrate,
		CelebrationDuration: cfg.CelebrationDuration(),
		Logger:              logger.Named("nav"),
	})

	return model{
		store:    store,
		sub:      store.Subscribe(),
		nav:      controller,
		doc:      doc,
		logger:   logger,
		lang:     content.ParseLanguage(cfg.Language),
		siteURL:  cfg.APIBaseURL,
		snapshot: store.Snapshot(),
		history:  store.PriceHistory(),
		viewport: viewport.New(0, 0),
		spinner:  s,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(listenForStore(m.sub), m.spinner.Tick)
}
