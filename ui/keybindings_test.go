package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyBindingManager(t *testing.T) {
	km := NewKeyBindingManager()

	handledSpace := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "toggle",
			handler: func() { handledSpace = true },
		},
		[]tcell.Key{},
		[]rune{' '},
	)

	event := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
	if !km.HandleKey(event) {
		t.Errorf("Expected space key to be handled")
	}
	if !handledSpace {
		t.Errorf("Expected handler to be called")
	}
}

func TestKeyBindingManagerSpecialKeys(t *testing.T) {
	km := NewKeyBindingManager()

	nextCalled := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "next",
			handler: func() { nextCalled = true },
		},
		[]tcell.Key{tcell.KeyRight},
		[]rune{'n'},
	)

	event := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)
	if !km.HandleKey(event) {
		t.Errorf("Expected right arrow to be handled")
	}
	if !nextCalled {
		t.Errorf("Expected handler to be called")
	}

	nextCalled = false
	event = tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)
	if !km.HandleKey(event) {
		t.Errorf("Expected 'n' to be handled")
	}
	if !nextCalled {
		t.Errorf("Expected handler to be called for 'n'")
	}
}

func TestKeyBindingManagerIgnoresUnbound(t *testing.T) {
	km := NewKeyBindingManager()

	called := false
	km.RegisterKeyBinding(
		KeyAction{
			name:    "toggle",
			handler: func() { called = true },
		},
		[]tcell.Key{},
		[]rune{' '},
	)

	event := tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)
	if km.HandleKey(event) {
		t.Errorf("Expected unbound rune to be ignored")
	}
	event = tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)
	if km.HandleKey(event) {
		t.Errorf("Expected unbound key to be ignored")
	}
	if called {
		t.Errorf("Handler should not have been called")
	}
}
