package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tiltcard/input"
)

// HandleEvent applies one terminal event, returns false when the app should quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(a.keys.Lookup(ev))

	case *tcell.EventResize:
		a.screen.Sync()
		a.card.Resize()

	case *tcell.EventMouse:
		x, y := ev.Position()
		transitions := a.mouse.Translate(x, y, ev.Buttons())
		if !a.open {
			return true
		}
		// Stamped at handling so every widget timestamp shares the injected clock
		now := a.clock.Now()
		for _, tr := range transitions {
			a.router.Mouse(tr, now)
		}

	case *tcell.EventFocus:
		if !ev.Focused {
			a.router.FocusLost(a.clock.Now())
			a.mouse.Reset()
		}
	}
	return true
}

// apply executes a key intent
func (a *App) apply(intent input.IntentType) bool {
	switch intent {
	case input.IntentQuit:
		return false
	case input.IntentClose:
		a.Close()
	case input.IntentOpen:
		a.Open()
	case input.IntentReset:
		if a.open {
			a.widget.Reset()
		}
	case input.IntentToggleMute:
		muted := a.player.ToggleMute()
		a.logger.Info("audio mute toggled", "muted", muted)
	case input.IntentToggleStatus:
		a.card.SetShowStatus(!a.card.ShowStatus())
	}
	return true
}
