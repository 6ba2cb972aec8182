package ui

import (
	"github.com/gdamore/tcell/v2"
)

// KeyAction represents an action that can be triggered by keybindings
type KeyAction struct {
	name    string
	handler func()
}

// KeyBindingManager maps key events to actions and dispatches them. Key
// presses are already discrete, so unlike the signal lines they need no
// debouncing.
type KeyBindingManager struct {
	bindings map[tcell.Key]KeyAction // special key -> action mapping
	runeMap  map[rune]KeyAction      // rune -> action mapping
}

// NewKeyBindingManager creates a new key binding manager
func NewKeyBindingManager() *KeyBindingManager {
	return &KeyBindingManager{
		bindings: make(map[tcell.Key]KeyAction),
		runeMap:  make(map[rune]KeyAction),
	}
}

// RegisterKeyBinding registers a single action under any number of special
// keys and runes
func (km *KeyBindingManager) RegisterKeyBinding(action KeyAction, keys []tcell.Key, runes []rune) {
	for _, key := range keys {
		km.bindings[key] = action
	}
	for _, r := range runes {
		km.runeMap[r] = action
	}
}

// HandleKey handles a keyboard event and returns true if it was consumed.
// Unbound keys are ignored, not errors.
func (km *KeyBindingManager) HandleKey(event *tcell.EventKey) bool {
	if event.Key() != tcell.KeyRune {
		if action, ok := km.bindings[event.Key()]; ok {
			action.handler()
			return true
		}
		return false
	}

	if action, ok := km.runeMap[event.Rune()]; ok {
		action.handler()
		return true
	}
	return false
}
