package tui

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"time"

	"dfaith/pkg/metrics"
	"dfaith/pkg/nav"
	"dfaith/pkg/section"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func listenForStore(sub metrics.Subscriber) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-sub
		if !ok {
			return storeClosedMsg{}
		}
		return ev
	}
}

func refreshCmd(store *metrics.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return refreshDoneMsg{err: store.RefreshNow(ctx)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: clipboard.WriteAll(text)}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// celebrationCmd schedules the expiry of c, and starts the confetti
// animation when animate is set.
func celebrationCmd(c *nav.Celebration, animate bool) tea.Cmd {
	seq := c.Seq
	expire := tea.Tick(c.Duration, func(time.Time) tea.Msg { return celebrationDoneMsg{seq: seq} })
	if !animate {
		return expire
	}
	return tea.Batch(expire, tea.Tick(confettiTick, func(time.Time) tea.Msg { return confettiTickMsg{} }))
}

// sectionLink is the public URL of a whitepaper section.
func sectionLink(base string, id section.ID) string {
	return base + "/#" + string(id)
}

func isThrottled(err error) bool {
	return errors.Is(err, metrics.ErrThrottled)
}

// openBrowser opens the specified URL in the default browser.
func openBrowser(url string) error {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start"}
	case "darwin":
		cmd = "open"
	default: // "linux", "freebsd", "openbsd", "netbsd"
		cmd = "xdg-open"
	}
	args = append(args, url)
	return exec.Command(cmd, args...).Start()
}
