package common

import "testing"

func TestDefaultKeyMap_HasCriticalBindings(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ToggleHints.Keys()) == 0 || km.ToggleHints.Keys()[0] != "?" {
		t.Fatalf("expected ? key binding for hints")
	}
	if len(km.ForceQuit.Keys()) == 0 || km.ForceQuit.Keys()[0] != "ctrl+c" {
		t.Fatalf("expected ctrl+c force quit binding")
	}
	if km.Focus.Keys()[0] != "enter" || km.Back.Keys()[0] != "esc" {
		t.Fatalf("expected enter/esc for focus mode")
	}
}

func TestHintBindings_HaveHelp(t *testing.T) {
	for _, b := range DefaultKeyMap().HintBindings() {
		if b.Help().Key == "" || b.Help().Desc == "" {
			t.Fatalf("hint binding %v has no help text", b.Keys())
		}
	}
}
