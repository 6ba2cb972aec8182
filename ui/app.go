package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"dfjuke/config"
	"dfjuke/domain"
)

// App projects playback state onto the terminal. It is purely reactive: it
// renders snapshots delivered by the engine and forwards key presses as
// intents; it never touches playback state directly.
type App struct {
	tviewApp *tview.Application
	cfg      *config.Config
	ctx      context.Context
	tracks   []domain.Track
	submit   func(domain.Intent)
	renders  <-chan domain.Snapshot

	rootFlex   *tview.Flex
	trackTable *tview.Table
	statusBar  *tview.TextView
	helpView   *HelpView
	keys       *KeyBindingManager
}

// NewApp creates the TUI over the engine's intent and render channels.
func NewApp(ctx context.Context, cfg *config.Config, tracks []domain.Track, submit func(domain.Intent), renders <-chan domain.Snapshot) *App {
	return &App{
		tviewApp: tview.NewApplication(),
		cfg:      cfg,
		ctx:      ctx,
		tracks:   tracks,
		submit:   submit,
		renders:  renders,
		keys:     NewKeyBindingManager(),
	}
}

// Run starts the application
func (a *App) Run() error {
	a.createLayout()
	go a.consumeRenders()
	return a.tviewApp.Run()
}

// Stop stops the application
func (a *App) Stop() {
	if a.tviewApp != nil {
		a.tviewApp.Stop()
	}
}

// consumeRenders applies engine snapshots to the UI. This is the only way
// the display ever changes: no polling, no direct state reads.
func (a *App) consumeRenders() {
	for {
		select {
		case snap, ok := <-a.renders:
			if !ok {
				return
			}
			a.tviewApp.QueueUpdateDraw(func() {
				a.render(snap)
			})
		case <-a.ctx.Done():
			return
		}
	}
}

func (a *App) render(snap domain.Snapshot) {
	if a.statusBar != nil {
		a.statusBar.SetText(FormatNowPlaying(snap))
	}
	a.highlightRow(snap.Index, snap.Mode)
}

func (a *App) createLayout() {
	a.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false).
		SetWrap(true)
	a.statusBar.SetBorder(false)

	a.trackTable = tview.NewTable().
		SetBorders(false).
		SetSelectable(false, false).
		SetFixed(1, 0)
	a.trackTable.SetBorder(false)

	a.helpView = NewHelpView(a)

	a.setupTableHeaders()
	a.renderTrackTable()
	a.setupKeyBindings()

	leftPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.statusBar, 0, 1, false)

	rightPanel := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.trackTable, 0, 1, true)

	a.rootFlex = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(leftPanel, 0, 1, false).
		AddItem(rightPanel, 0, 2, true)

	a.tviewApp.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if a.keys.HandleKey(event) {
			return nil
		}
		return event
	})

	a.tviewApp.SetRoot(a.rootFlex, true)
	a.statusBar.SetText(CreateWelcomeMessage(len(a.tracks)))
}

func (a *App) setupKeyBindings() {
	a.keys.RegisterKeyBinding(
		KeyAction{name: "toggle", handler: func() { a.submit(domain.IntentTogglePlay) }},
		[]tcell.Key{},
		[]rune{' '},
	)
	a.keys.RegisterKeyBinding(
		KeyAction{name: "next", handler: func() { a.submit(domain.IntentNext) }},
		[]tcell.Key{tcell.KeyRight},
		[]rune{'n', 'N'},
	)
	a.keys.RegisterKeyBinding(
		KeyAction{name: "previous", handler: func() { a.submit(domain.IntentPrevious) }},
		[]tcell.Key{tcell.KeyLeft},
		[]rune{'p', 'P'},
	)
	a.keys.RegisterKeyBinding(
		KeyAction{name: "help", handler: func() { a.helpView.Toggle() }},
		[]tcell.Key{},
		[]rune{'?'},
	)
	a.keys.RegisterKeyBinding(
		KeyAction{name: "quit", handler: a.quitOrCloseHelp},
		[]tcell.Key{tcell.KeyEsc, tcell.KeyCtrlC},
		[]rune{'q', 'Q'},
	)
}

// quitOrCloseHelp closes the help overlay when it is open, otherwise quits.
func (a *App) quitOrCloseHelp() {
	if a.helpView.isActive {
		a.helpView.Hide()
		return
	}
	a.submit(domain.IntentQuit)
}

func (a *App) setupTableHeaders() {
	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Attributes(tcell.AttrBold)
	a.trackTable.SetCell(0, 0, tview.NewTableCell("#").SetStyle(headerStyle).SetAlign(tview.AlignRight))
	a.trackTable.SetCell(0, 1, tview.NewTableCell("Title").SetStyle(headerStyle).SetExpansion(1))
	a.trackTable.SetCell(0, 2, tview.NewTableCell("Source").SetStyle(headerStyle))
}

func (a *App) renderTrackTable() {
	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDefault)

	for i, track := range a.tracks {
		row := i + 1

		indexCell := tview.NewTableCell(fmt.Sprintf("%d:", row)).
			SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
			SetAlign(tview.AlignRight)

		titleCell := tview.NewTableCell(Truncate(track.Label(), a.cfg.UI.MaxColumnWidth)).
			SetStyle(rowStyle.Foreground(tcell.ColorWhite)).
			SetExpansion(1)

		sourceCell := tview.NewTableCell(SourceBadge(track)).
			SetStyle(rowStyle.Foreground(tcell.ColorGray))

		a.trackTable.SetCell(row, 0, indexCell)
		a.trackTable.SetCell(row, 1, titleCell)
		a.trackTable.SetCell(row, 2, sourceCell)
	}
}

// highlightRow marks the engine's current track in the table.
func (a *App) highlightRow(index int, mode domain.Mode) {
	for i := range a.tracks {
		row := i + 1
		titleCell := a.trackTable.GetCell(row, 1)
		if titleCell == nil {
			continue
		}
		switch {
		case i == index && mode == domain.Playing:
			titleCell.SetTextColor(tcell.ColorLightGreen)
		case i == index:
			titleCell.SetTextColor(tcell.ColorYellow)
		default:
			titleCell.SetTextColor(tcell.ColorWhite)
		}
	}
}
