// Package visualizer is an optional terminal render surface for a running
// match: a consumer of a mars.ChannelLogger's events that paints the core as
// a scrolling grid. It deliberately does not implement a full interactive
// debugger or input controller (out of scope per spec.md §1) — it is a
// read-only consumer of engine events.
package visualizer

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/mars-emulator/mars"
)

// TUI renders a running match's events in a terminal grid, grounded on
// debugger.TUI's panel layout, reduced to the one view this spec needs.
type TUI struct {
	App       *tview.Application
	CoreView  *tview.TextView
	StatusView *tview.TextView

	layout *tview.Flex

	coreSize   int
	cellOwner  []string // warrior name that last wrote each cell, "" if untouched
	cycle      int
}

// NewTUI builds a TUI sized for a core of coreSize cells.
func NewTUI(coreSize int) *TUI {
	t := &TUI{
		App:       tview.NewApplication(),
		coreSize:  coreSize,
		cellOwner: make([]string, coreSize),
	}

	t.CoreView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	t.CoreView.SetBorder(true).SetTitle(" Core ")

	t.StatusView = tview.NewTextView().SetDynamicColors(true)
	t.StatusView.SetBorder(true).SetTitle(" Status ")

	t.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.CoreView, 0, 4, false).
		AddItem(t.StatusView, 3, 0, false)

	t.App.SetRoot(t.layout, true)
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC {
			t.App.Stop()
			return nil
		}
		return event
	})
	return t
}

// Run drains logger's Events channel on the calling goroutine, updating the
// display after each event, until the channel closes or a SignalClose is
// received on logger.Control. Intended to be started in its own goroutine
// alongside (*mars.Engine).Run on another.
func (t *TUI) Run(logger *mars.ChannelLogger) {
	for {
		select {
		case event, ok := <-logger.Events:
			if !ok {
				return
			}
			t.handleEvent(event)
		case signal := <-logger.Control:
			if signal == mars.SignalClose {
				return
			}
		}
	}
}

func (t *TUI) handleEvent(event mars.GameEvent) {
	switch event.Kind {
	case mars.EventContinue:
		t.cycle++
		if event.Step.DestPC >= 0 && event.Step.DestPC < len(t.cellOwner) {
			t.cellOwner[event.Step.DestPC] = event.Step.WarriorName
		}
		t.redraw(fmt.Sprintf("cycle %d: %s wrote cell %d", t.cycle, event.Step.WarriorName, event.Step.DestPC))
	case mars.EventWarriorKilled:
		t.redraw(fmt.Sprintf("cycle %d: %s died", t.cycle, event.Warrior))
	case mars.EventGameOver:
		t.redraw(fmt.Sprintf("cycle %d: game over — %s", t.cycle, event.Outcome.String()))
	}
}

// redraw repaints both panels. tview.Application.QueueUpdateDraw schedules
// the paint on the UI goroutine regardless of which goroutine called Run.
func (t *TUI) redraw(status string) {
	t.App.QueueUpdateDraw(func() {
		var b strings.Builder
		const perRow = 80
		for i, owner := range t.cellOwner {
			if i > 0 && i%perRow == 0 {
				b.WriteByte('\n')
			}
			if owner == "" {
				b.WriteByte('.')
			} else {
				b.WriteByte(owner[0])
			}
		}
		t.CoreView.SetText(b.String())
		t.StatusView.SetText(status)
	})
}

// Start runs the tview event loop. Call from the main goroutine; it blocks
// until Stop is called or the application exits.
func (t *TUI) Start() error {
	return t.App.SetFocus(t.CoreView).Run()
}

// Stop tears down the terminal UI.
func (t *TUI) Stop() {
	t.App.Stop()
}
