package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", km.Up},
		{"Down", km.Down},
		{"Tab", km.Tab},
		{"Field", km.Field},
		{"Enter", km.Enter},
		{"NewGroup", km.NewGroup},
		{"Delete", km.Delete},
		{"Refresh", km.Refresh},
		{"Preview", km.Preview},
		{"Help", km.Help},
		{"Quit", km.Quit},
		{"Escape", km.Escape},
	}

	for _, b := range bindings {
		if len(b.binding.Keys()) == 0 {
			t.Errorf("%s binding should have keys", b.name)
		}
		if b.binding.Help().Key == "" {
			t.Errorf("%s binding should have help key", b.name)
		}
		if b.binding.Help().Desc == "" {
			t.Errorf("%s binding should have help description", b.name)
		}
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	// printable keys would be swallowed by the query input
	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				if len([]rune(k)) == 1 {
					t.Errorf("binding %q uses printable key %q", b.Help().Desc, k)
				}
			}
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should return bindings")
	}
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()

	if len(groups) == 0 {
		t.Fatal("FullHelp should return binding groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Errorf("FullHelp group %d should not be empty", i)
		}
	}
}
