package ui

import (
	"github.com/rivo/tview"
)

// HelpView represents the keyboard shortcuts help interface
type HelpView struct {
	app       *App
	container *tview.Flex
	textView  *tview.TextView
	isActive  bool
}

// NewHelpView creates a new help view
func NewHelpView(app *App) *HelpView {
	hv := &HelpView{
		app: app,
	}

	hv.textView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)

	helpText := `[yellow::b]Keyboard Shortcuts[-:-:-]

[lightgreen]Playback Controls:[-]
  [white]Space[-]       Play/Pause current track
  [white]n / N[-]       Next track
  [white]p / P[-]       Previous track
  [white]→ / ←[-]       Next/Previous track (alternative)

[lightgreen]General:[-]
  [white]?[-]           Show this help panel
  [white]q / ESC[-]     Exit program
  [white]Ctrl+C[-]      Exit program

[gray]Pausing releases the stream; resuming restarts the track
[gray]from the beginning.

[yellow]Press ESC or ? to close this help panel[-]
`

	hv.textView.SetText(helpText)

	hv.container = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(hv.textView, 0, 1, true)

	hv.container.SetBorder(true).
		SetTitle(" Help ").
		SetTitleAlign(tview.AlignCenter)

	return hv
}

// Show displays the help view
func (hv *HelpView) Show() {
	hv.isActive = true
	hv.app.tviewApp.SetRoot(hv.container, true)
}

// Hide returns to the main view
func (hv *HelpView) Hide() {
	hv.isActive = false
	hv.app.tviewApp.SetRoot(hv.app.rootFlex, true)
}

// Toggle flips the help view visibility
func (hv *HelpView) Toggle() {
	if hv.isActive {
		hv.Hide()
	} else {
		hv.Show()
	}
}
